package renderer

import (
	"context"
	"hospital-lab-service/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONReportRenderer_Render(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	renderer := &jsonReportRenderer{now: func() time.Time { return fixed }}

	t.Run("Renders View", func(t *testing.T) {
		view := &responses.LabReportView{
			Available: true,
			Status:    "Completed",
			Report: &responses.LabReport{
				LabTestID: "65a1f0c2e4b0a1b2c3d4e5f6",
				Result:    "WBC: 7.2, normal range",
			},
			Patient: &responses.PartyRef{Name: "Jane Roe"},
		}

		data, err := renderer.Render(context.Background(), view)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "lab-report", decoded["documentType"])
		assert.Equal(t, "2024-06-01T08:30:00Z", decoded["renderedAt"])
		content := decoded["content"].(map[string]interface{})
		report := content["report"].(map[string]interface{})
		assert.Equal(t, "WBC: 7.2, normal range", report["result"])
	})

	t.Run("Rejects Missing Report", func(t *testing.T) {
		_, err := renderer.Render(context.Background(), &responses.LabReportView{Available: false})
		assert.Error(t, err)
	})

	assert.Equal(t, "application/json", renderer.ContentType())
	assert.Equal(t, ".json", renderer.FileExtension())
}
