package contracts

import "context"

type RoleUsecase interface {
	ListRoles(ctx context.Context) ([]string, error)
	ListPermissions(ctx context.Context, role string) ([][]string, error)
	Enforce(ctx context.Context, role, method, path string) (bool, error)
}
