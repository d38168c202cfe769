package handlers

import (
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/responses"
	"hospital-lab-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// RoleHandler exposes the route policy loaded into the enforcer.
type RoleHandler struct {
	Log         *zap.Logger
	RoleUsecase contracts.RoleUsecase
}

func NewRoleHandler(log *zap.Logger, roleUsecase contracts.RoleUsecase) *RoleHandler {
	return &RoleHandler{Log: log, RoleUsecase: roleUsecase}
}

// ListRoles returns every role with the method and path pairs it may call.
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	h.Log.Info("RoleHandler.ListRoles called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	roles, err := h.RoleUsecase.ListRoles(r.Context())
	if err != nil {
		utils.BuildErrorResponse(h.Log, w, err)
		return
	}

	result := make([]responses.RolePermissions, 0, len(roles))
	for _, role := range roles {
		permissions, err := h.RoleUsecase.ListPermissions(r.Context(), role)
		if err != nil {
			utils.BuildErrorResponse(h.Log, w, err)
			return
		}
		entry := responses.RolePermissions{Role: role, Permissions: make([]responses.Permission, 0, len(permissions))}
		for _, p := range permissions {
			entry.Permissions = append(entry.Permissions, responses.Permission{Method: p[0], Path: p[1]})
		}
		result = append(result, entry)
	}

	h.Log.Info("RoleHandler.ListRoles succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindRolesSuccessMessage, result)
}
