package entity

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyType string

const (
	EmergencyTypeAmbulance EmergencyType = "ambulance"
	EmergencyTypeEmergency EmergencyType = "emergency"
	EmergencyTypeOther     EmergencyType = "other"
)

type EmergencyStatus string

const (
	EmergencyStatusPending   EmergencyStatus = "pending"
	EmergencyStatusResponded EmergencyStatus = "responded"
	EmergencyStatusCompleted EmergencyStatus = "completed"
)

func (s EmergencyStatus) IsValid() bool {
	switch s {
	case EmergencyStatusPending, EmergencyStatusResponded, EmergencyStatusCompleted:
		return true
	}
	return false
}

// EmergencyRequest is an inbound emergency call. Submission is open to
// guests, so PatientID is optional and contact details are captured inline.
type EmergencyRequest struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID *uuid.UUID      `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string          `gorm:"type:varchar(20);not null" json:"phone"`
	Location  string          `gorm:"type:text;not null" json:"location"`
	Type      EmergencyType   `gorm:"type:varchar(20);not null;default:'emergency'" json:"type"`
	Status    EmergencyStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (EmergencyRequest) TableName() string {
	return "emergency_requests"
}
