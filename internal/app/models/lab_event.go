package models

import (
	"time"

	"github.com/google/uuid"
)

// LabEvent is published to the message broker after a lifecycle transition.
type LabEvent struct {
	EventID      string    `json:"eventId"`
	EventType    string    `json:"eventType"`
	LabTestID    string    `json:"labTestId"`
	PatientID    string    `json:"patientId"`
	DoctorID     string    `json:"doctorId"`
	TechnicianID string    `json:"technicianId,omitempty"`
	Status       string    `json:"status"`
	ActorUserID  string    `json:"actorUserId"`
	ActorRole    string    `json:"actorRole"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func NewLabEvent(eventType string, labTest *LabTest, actor Principal) *LabEvent {
	event := &LabEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		LabTestID:   labTest.ID.Hex(),
		PatientID:   labTest.PatientID.Hex(),
		DoctorID:    labTest.OrderingDoctorID.Hex(),
		Status:      labTest.Status,
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		OccurredAt:  time.Now().UTC(),
	}
	if labTest.HasTechnician() {
		event.TechnicianID = labTest.AssignedTechnicianID.Hex()
	}
	return event
}
