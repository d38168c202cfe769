package contracts

import (
	"context"
	"hospital-lab-service/internal/app/models"
)

type IdentityResolver interface {
	Resolve(ctx context.Context, principal models.Principal) (*models.Identity, error)
}

type RelationshipGuard interface {
	Authorize(ctx context.Context, identity *models.Identity, resource models.GuardResource) (models.GuardDecision, error)
}
