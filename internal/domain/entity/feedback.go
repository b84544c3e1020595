package entity

import (
	"time"

	"github.com/google/uuid"
)

// Feedback represents patient feedback for a completed appointment.
// The appointment reference is required; a unique (patient_id, appointment_id)
// index prevents duplicate submissions.
type Feedback struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DepartmentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"department_id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Department  Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Appointment Appointment   `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
