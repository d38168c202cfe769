package routers

import (
	"hospital-lab-service/internal/app/delivery/http/handlers"

	"github.com/go-chi/chi/v5"
)

func attachRoleRoutes(router chi.Router, roleHandler *handlers.RoleHandler) {
	router.Get("/", roleHandler.ListRoles)
}
