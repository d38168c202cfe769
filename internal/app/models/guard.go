package models

import (
	"hospital-lab-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuardResource is what the relationship guard is asked about. Exactly one of
// PatientID, LabTest or TechnicianID is meaningful depending on Type.
type GuardResource struct {
	Type         string
	Action       string
	PatientID    primitive.ObjectID
	LabTest      *LabTest
	TechnicianID primitive.ObjectID
}

type GuardDecision struct {
	Allowed bool
	Reason  string
}

func PatientResource(patientID primitive.ObjectID, action string) GuardResource {
	return GuardResource{Type: constvars.GuardResourcePatient, Action: action, PatientID: patientID}
}

func LabTestResource(labTest *LabTest, action string) GuardResource {
	return GuardResource{Type: constvars.GuardResourceLabTest, Action: action, LabTest: labTest}
}

func LabTechResource(technicianID primitive.ObjectID, action string) GuardResource {
	return GuardResource{Type: constvars.GuardResourceLabTech, Action: action, TechnicianID: technicianID}
}

func Allow(reason string) GuardDecision {
	return GuardDecision{Allowed: true, Reason: reason}
}

func Deny(reason string) GuardDecision {
	return GuardDecision{Allowed: false, Reason: reason}
}
