package repository

import (
	"time"

	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)

	// FindConflict returns the non-cancelled appointment occupying the
	// (doctorID, date, timeSlot) slot, excluding excludeID when non-nil.
	// Returns nil when the slot is free.
	FindConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string, excludeID *uuid.UUID) (*entity.Appointment, error)

	Update(db *gorm.DB, appointment *entity.Appointment) error

	// UpdateStatus transitions the appointment out of booked. The WHERE clause
	// keeps terminal states immutable; 0 affected rows means the appointment
	// was no longer in the booked status.
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)

	MarkFeedbackSubmitted(db *gorm.DB, id uuid.UUID) error

	// FindDueReminders returns booked, unreminded appointments with a date
	// inside [from, to].
	FindDueReminders(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error)

	// ClaimReminder atomically flips reminder_sent to true if it is still
	// false and the appointment is still booked. Returns affected rows:
	// 1 = claimed, 0 = lost to a concurrent sweep or a status change.
	ClaimReminder(db *gorm.DB, id uuid.UUID) (int64, error)

	// ReleaseReminder undoes a claim after a failed dispatch so the next
	// sweep retries.
	ReleaseReminder(db *gorm.DB, id uuid.UUID) error
}
