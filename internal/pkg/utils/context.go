package utils

import (
	"context"
	"errors"
	"hospital-lab-service/internal/app/models"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/exceptions"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func SetPrincipal(ctx context.Context, principal models.Principal) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_PRINCIPAL_KEY, principal)
}

func GetPrincipal(ctx context.Context) (models.Principal, error) {
	principal, ok := ctx.Value(constvars.CONTEXT_PRINCIPAL_KEY).(models.Principal)
	if !ok || principal.UserID == "" {
		return models.Principal{}, exceptions.ErrMissingPrincipal(errors.New("no principal in request context"))
	}
	return principal, nil
}
