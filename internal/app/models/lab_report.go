package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LabReport struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LabTestID          primitive.ObjectID `json:"labTestId" bson:"labTestId"`
	Result             string             `json:"result" bson:"result"`
	Notes              string             `json:"notes,omitempty" bson:"notes,omitempty"`
	ReportDate         time.Time          `json:"reportDate" bson:"reportDate"`
	GeneratedBy        ReportAuthor       `json:"generatedBy" bson:"generatedBy"`
	DocumentObjectName string             `json:"-" bson:"documentObjectName,omitempty"`
	TimeModel          `bson:",inline"`
}

// ReportAuthor is captured when the report is written and never updated.
type ReportAuthor struct {
	Role      string             `json:"role" bson:"role"`
	UserID    string             `json:"userId" bson:"userId"`
	ProfileID primitive.ObjectID `json:"profileId" bson:"profileId"`
	Name      string             `json:"name" bson:"name"`
}
