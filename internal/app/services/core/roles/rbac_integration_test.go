package roles

import (
	"context"
	"hospital-lab-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBACIntegration(t *testing.T) {
	enforcer, err := NewEnforcer("../../../../../resources/rbac_model.conf", "../../../../../resources/rbac_policy.csv")
	if err != nil {
		t.Skipf("Skipping test due to missing RBAC files: %v", err)
		return
	}
	usecase := NewCasbinRoleUsecase(enforcer)
	ctx := context.Background()

	tests := []struct {
		role    string
		method  string
		path    string
		allowed bool
	}{
		{constvars.RoleDoctor, "POST", "/lab-tests", true},
		{constvars.RoleDoctor, "POST", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/assign", true},
		{constvars.RoleDoctor, "POST", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/complete", false},
		{constvars.RoleDoctor, "GET", "/lab-techs/available", true},
		{constvars.RoleLabTech, "POST", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/start", true},
		{constvars.RoleLabTech, "POST", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/report", true},
		{constvars.RoleLabTech, "POST", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/assign", false},
		{constvars.RoleLabTech, "POST", "/lab-tests", false},
		{constvars.RoleLabTech, "GET", "/lab-techs/available", false},
		{constvars.RolePatient, "GET", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/report", true},
		{constvars.RolePatient, "GET", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/report/document", true},
		{constvars.RolePatient, "POST", "/lab-tests/65f0c1d2e3a4b5c6d7e8f901/report", false},
		{constvars.RolePatient, "GET", "/lab-techs/65f0c1d2e3a4b5c6d7e8f902/performance", false},
		{constvars.RoleAdmin, "GET", "/lab-techs/65f0c1d2e3a4b5c6d7e8f902/performance/breakdown", true},
		{constvars.RoleAdmin, "POST", "/lab-tests", false},
		{constvars.RoleAdmin, "GET", "/roles", true},
		{"Guest", "GET", "/lab-tests", false},
	}

	for _, tc := range tests {
		t.Run(tc.role+" "+tc.method+" "+tc.path, func(t *testing.T) {
			allowed, err := usecase.Enforce(ctx, tc.role, tc.method, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}

	t.Run("Roles And Permissions", func(t *testing.T) {
		roles, err := usecase.ListRoles(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{constvars.RoleDoctor, constvars.RoleLabTech, constvars.RolePatient, constvars.RoleAdmin}, roles)

		permissions, err := usecase.ListPermissions(ctx, constvars.RolePatient)
		require.NoError(t, err)
		assert.Len(t, permissions, 4)
		assert.Contains(t, permissions, []string{"GET", "/lab-tests/:testID/report"})
	})
}
