package routers

import (
	"hospital-lab-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachLabTestRoutes(
	router chi.Router,
	labTestController *controllers.LabTestController,
	assignmentController *controllers.AssignmentController,
	labReportController *controllers.LabReportController,
) {
	router.Post("/", labTestController.CreateLabTest)
	router.Get("/", labTestController.FindAllLabTests)

	router.Route("/{testID}", func(r chi.Router) {
		r.Get("/", labTestController.FindLabTestByID)
		r.Post("/start", labTestController.StartLabTest)
		r.Post("/complete", labTestController.CompleteLabTest)

		r.Post("/assign", assignmentController.AssignLabTest)
		r.Get("/assignments", assignmentController.FindAssignmentHistory)

		r.Post("/report", labReportController.SubmitLabReport)
		r.Get("/report", labReportController.FindLabReport)
		r.Get("/report/document", labReportController.FindLabReportDocument)
	})
}
