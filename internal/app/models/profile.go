package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LabTech struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	Department     string             `json:"department" bson:"department"`
	Specialization string             `json:"specialization,omitempty" bson:"specialization,omitempty"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	TestsConducted int                `json:"testsConducted" bson:"testsConducted"`
	AccuracyRate   float64            `json:"accuracyRate" bson:"accuracyRate"`
	CertifiedTests []string           `json:"certifiedTests,omitempty" bson:"certifiedTests,omitempty"`
	TimeModel      `bson:",inline"`
}

type Doctor struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	Department     string             `json:"department,omitempty" bson:"department,omitempty"`
	Specialization string             `json:"specialization,omitempty" bson:"specialization,omitempty"`
	TimeModel      `bson:",inline"`
}

type Patient struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"userId"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	DateOfBirth *time.Time         `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender      string             `json:"gender,omitempty" bson:"gender,omitempty"`
	TimeModel   `bson:",inline"`
}

// Appointment is owned by the scheduling service. Any appointment, whatever
// its status or date, links a doctor to a patient.
type Appointment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DoctorID  primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	PatientID primitive.ObjectID `json:"patientId" bson:"patientId"`
	Status    string             `json:"status" bson:"status"`
	Date      time.Time          `json:"date" bson:"date"`
}
