package repository

import (
	"errors"

	"family-care-api/internal/domain/entity"
	domainRepo "family-care-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type feedbackRepository struct{}

func NewFeedbackRepository() domainRepo.FeedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Create(db *gorm.DB, feedback *entity.Feedback) error {
	return db.Omit("Patient", "Doctor", "Department", "Appointment").Create(feedback).Error
}

func (r *feedbackRepository) FindByPatientAndAppointment(db *gorm.DB, patientID, appointmentID uuid.UUID) (*entity.Feedback, error) {
	var feedback entity.Feedback
	err := db.Where("patient_id = ? AND appointment_id = ?", patientID, appointmentID).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Feedback, error) {
	var feedbacks []entity.Feedback
	err := db.Preload("Doctor.User").Preload("Department").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *feedbackRepository) FindAll(db *gorm.DB, filter *domainRepo.FeedbackFilter) ([]entity.Feedback, error) {
	var feedbacks []entity.Feedback
	query := db.Preload("Patient").Preload("Doctor.User").Preload("Department")
	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.DepartmentID != nil {
			query = query.Where("department_id = ?", *filter.DepartmentID)
		}
	}

	err := query.Order("created_at DESC").Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}
