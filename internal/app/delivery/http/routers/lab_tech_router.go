package routers

import (
	"hospital-lab-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachLabTechRoutes(
	router chi.Router,
	assignmentController *controllers.AssignmentController,
	performanceController *controllers.PerformanceController,
) {
	router.Get("/available", assignmentController.FindAvailableLabTechs)
	router.Get("/{technicianID}/performance", performanceController.FindLabTechPerformance)
	router.Get("/{technicianID}/performance/breakdown", performanceController.FindLabTechBreakdown)
}
