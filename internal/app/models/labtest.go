package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LabTest struct {
	ID                   primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PatientID            primitive.ObjectID  `json:"patientId" bson:"patientId"`
	OrderingDoctorID     primitive.ObjectID  `json:"orderingDoctorId" bson:"orderingDoctorId"`
	AssignedTechnicianID *primitive.ObjectID `json:"assignedTechnicianId,omitempty" bson:"assignedTechnicianId,omitempty"`
	TestName             string              `json:"testName" bson:"testName"`
	Priority             string              `json:"priority" bson:"priority"`
	Status               string              `json:"status" bson:"status"`
	Notes                string              `json:"notes,omitempty" bson:"notes,omitempty"`
	AssignedAt           *time.Time          `json:"assignedAt,omitempty" bson:"assignedAt,omitempty"`
	CompletedAt          *time.Time          `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	TimeModel            `bson:",inline"`
}

func (t *LabTest) HasTechnician() bool {
	return t.AssignedTechnicianID != nil && !t.AssignedTechnicianID.IsZero()
}

func (t *LabTest) IsAssignedTo(technicianID primitive.ObjectID) bool {
	return t.HasTechnician() && *t.AssignedTechnicianID == technicianID
}

// ProcessingHours returns completedAt minus assignedAt in hours. ok is false
// when either timestamp is missing.
func (t *LabTest) ProcessingHours() (hours float64, ok bool) {
	if t.AssignedAt == nil || t.CompletedAt == nil {
		return 0, false
	}
	return t.CompletedAt.Sub(*t.AssignedAt).Hours(), true
}
