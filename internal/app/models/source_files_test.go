package models

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Files ending in _test.go are dropped from regular builds, so domain code
// under such a name silently disappears from the service binary.
func TestTestFilesImportTesting(t *testing.T) {
	for _, root := range []string{"../..", "../../../cmd"} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, "_test.go") {
				return nil
			}

			file, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			require.NoError(t, err, path)

			importsTesting := false
			for _, spec := range file.Imports {
				if spec.Path.Value == `"testing"` {
					importsTesting = true
				}
			}
			assert.True(t, importsTesting, "%s is not a test file", path)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestLabTestProcessingHours(t *testing.T) {
	t.Run("Missing Timestamps", func(t *testing.T) {
		labTest := LabTest{}
		_, ok := labTest.ProcessingHours()
		assert.False(t, ok)
	})

	t.Run("Assigned To Completed", func(t *testing.T) {
		assignedAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		completedAt := assignedAt.Add(150 * time.Minute)
		labTest := LabTest{AssignedAt: &assignedAt, CompletedAt: &completedAt}

		hours, ok := labTest.ProcessingHours()
		require.True(t, ok)
		assert.InDelta(t, 2.5, hours, 1e-9)
	})
}
