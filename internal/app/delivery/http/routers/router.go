package routers

import (
	"fmt"
	"hospital-lab-service/internal/app/config"
	"hospital-lab-service/internal/app/delivery/http/controllers"
	"hospital-lab-service/internal/app/delivery/http/handlers"
	"hospital-lab-service/internal/app/delivery/http/middlewares"
	"hospital-lab-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	labTestController *controllers.LabTestController,
	assignmentController *controllers.AssignmentController,
	labReportController *controllers.LabReportController,
	performanceController *controllers.PerformanceController,
	roleHandler *handlers.RoleHandler,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.CORSAllowedOrigins,
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RateLimit())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middlewares.Authenticate)
				r.Use(middlewares.RequirePermission)

				r.Route("/"+constvars.ResourceLabTests, func(r chi.Router) {
					attachLabTestRoutes(r, labTestController, assignmentController, labReportController)
				})

				r.Route("/"+constvars.ResourceLabTechs, func(r chi.Router) {
					attachLabTechRoutes(r, assignmentController, performanceController)
				})

				r.Route("/roles", func(r chi.Router) {
					attachRoleRoutes(r, roleHandler)
				})
			})
		})
	})
}
