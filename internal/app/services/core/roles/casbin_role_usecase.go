package roles

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/pkg/exceptions"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer loads the route policy. Paths are matched with keyMatch2, so
// policies use chi style :param segments.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}

type CasbinRoleUsecase struct {
	enforcer *casbin.Enforcer
}

func NewCasbinRoleUsecase(e *casbin.Enforcer) contracts.RoleUsecase {
	return &CasbinRoleUsecase{enforcer: e}
}

func (u *CasbinRoleUsecase) ListRoles(ctx context.Context) ([]string, error) {
	return u.enforcer.GetAllSubjects()
}

// ListPermissions returns the (method, path) pairs granted to role.
func (u *CasbinRoleUsecase) ListPermissions(ctx context.Context, role string) ([][]string, error) {
	policies, err := u.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return nil, err
	}
	permissions := make([][]string, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		permissions = append(permissions, []string{p[1], p[2]})
	}
	return permissions, nil
}

func (u *CasbinRoleUsecase) Enforce(ctx context.Context, role, method, path string) (bool, error) {
	allowed, err := u.enforcer.Enforce(role, method, path)
	if err != nil {
		return false, exceptions.ErrRBACEnforce(err)
	}
	return allowed, nil
}
