package repository

import (
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackFilter is a domain-level filter for the public feedback listing.
type FeedbackFilter struct {
	DoctorID     *uuid.UUID
	DepartmentID *uuid.UUID
}

type FeedbackRepository interface {
	Create(db *gorm.DB, feedback *entity.Feedback) error
	FindByPatientAndAppointment(db *gorm.DB, patientID, appointmentID uuid.UUID) (*entity.Feedback, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Feedback, error)
	FindAll(db *gorm.DB, filter *FeedbackFilter) ([]entity.Feedback, error)
}
