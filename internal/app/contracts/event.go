package contracts

import (
	"context"
	"hospital-lab-service/internal/app/models"
)

// LabEventPublisher delivers lifecycle events. Callers treat a publish error
// as non-fatal.
type LabEventPublisher interface {
	Publish(ctx context.Context, event *models.LabEvent) error
}
