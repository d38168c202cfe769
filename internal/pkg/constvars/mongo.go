package constvars

const (
	MongoCollectionLabTests           = "lab_tests"
	MongoCollectionLabReports         = "lab_reports"
	MongoCollectionLabTechs           = "lab_techs"
	MongoCollectionDoctors            = "doctors"
	MongoCollectionPatients           = "patients"
	MongoCollectionAppointments       = "appointments"
	MongoCollectionLabTestAssignments = "lab_test_assignments"
)
