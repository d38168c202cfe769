package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LabTestQuery is a role scoped listing. Nil scope fields are not filtered.
type LabTestQuery struct {
	OrderingDoctorID *primitive.ObjectID
	PatientID        *primitive.ObjectID
	// VisibleToTechnician limits results to tests assigned to the technician
	// plus the unassigned Requested queue.
	VisibleToTechnician *primitive.ObjectID
	// TechnicianIDs is set when filtering by department.
	TechnicianIDs []primitive.ObjectID
	FilterByTechs bool
	Status        string
	Priority      string
	Skip          int64
	Limit         int64
}

type PerformanceQuery struct {
	TechnicianID     primitive.ObjectID
	OrderingDoctorID *primitive.ObjectID
	CompletedFrom    *time.Time
	CompletedTo      *time.Time
}
