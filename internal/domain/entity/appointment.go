package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// IsValid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled || s == AppointmentStatusCompleted
}

// Appointment represents a booked slot for a doctor.
//
// A slot is the (doctor_id, date, time_slot) triple. At most one non-cancelled
// appointment may exist per slot; this is enforced by a partial unique index in
// the database, not just by the pre-insert conflict check.
type Appointment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DepartmentID uuid.UUID         `gorm:"type:uuid;not null;index" json:"department_id"`
	Date         time.Time         `gorm:"type:date;not null;index" json:"date"`
	TimeSlot     string            `gorm:"type:varchar(50);not null" json:"time_slot"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'booked';index" json:"status"`
	Notes        string            `gorm:"type:text" json:"notes,omitempty"`
	// FeedbackSubmitted is owned by the feedback subsystem.
	FeedbackSubmitted bool `gorm:"not null;default:false" json:"feedback_submitted"`
	// ReminderSent is owned exclusively by the reminder scheduler.
	ReminderSent bool      `gorm:"not null;default:false" json:"reminder_sent"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient    User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor     DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Department Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsBooked checks if the appointment is still in the booked status
func (a *Appointment) IsBooked() bool {
	return a.Status == AppointmentStatusBooked
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}
