// Package mocks holds testify mocks for the contracts interfaces.
package mocks

import (
	"context"
	"hospital-lab-service/internal/app/models"

	"github.com/stretchr/testify/mock"
)

type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) Resolve(ctx context.Context, principal models.Principal) (*models.Identity, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

type MockRelationshipGuard struct {
	mock.Mock
}

func (m *MockRelationshipGuard) Authorize(ctx context.Context, identity *models.Identity, resource models.GuardResource) (models.GuardDecision, error) {
	args := m.Called(ctx, identity, resource)
	return args.Get(0).(models.GuardDecision), args.Error(1)
}
