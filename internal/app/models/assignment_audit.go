package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentAudit struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LabTestID        primitive.ObjectID `json:"labTestId" bson:"labTestId"`
	TechnicianID     primitive.ObjectID `json:"technicianId" bson:"technicianId"`
	AssignedByUserID string             `json:"assignedByUserId" bson:"assignedByUserId"`
	AssignedByRole   string             `json:"assignedByRole" bson:"assignedByRole"`
	AssignedAt       time.Time          `json:"assignedAt" bson:"assignedAt"`
}
