package entities

import (
	"time"

	"github.com/google/uuid"
)

// DirectoryEventType represents the kind of change applied to the directory
type DirectoryEventType string

const (
	DirectoryEventHospitalAdded   DirectoryEventType = "hospital_added"
	DirectoryEventHospitalRenamed DirectoryEventType = "hospital_renamed"
	DirectoryEventDoctorAdded     DirectoryEventType = "doctor_added"
	DirectoryEventReferralAdded   DirectoryEventType = "referral_added"
	DirectoryEventDoctorRenamed   DirectoryEventType = "doctor_renamed"
	DirectoryEventRecordUpdated   DirectoryEventType = "record_updated"
	DirectoryEventImported        DirectoryEventType = "imported"
)

// DirectoryEvent describes a change to the hospital directory or to a
// doctor's record.
type DirectoryEvent struct {
	ID        string             `json:"id"`
	EventType DirectoryEventType `json:"event_type"`
	Hospital  string             `json:"hospital,omitempty"`
	Doctor    string             `json:"doctor,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Changes   map[string]string  `json:"changes,omitempty"`
}

// NewDirectoryEvent creates a new directory event
func NewDirectoryEvent(eventType DirectoryEventType, hospital, doctor string, changes map[string]string) *DirectoryEvent {
	return &DirectoryEvent{
		ID:        uuid.New().String(),
		EventType: eventType,
		Hospital:  hospital,
		Doctor:    doctor,
		Timestamp: time.Now().UTC(),
		Changes:   changes,
	}
}
