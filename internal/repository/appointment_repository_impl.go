package repository

import (
	"errors"
	"time"

	"family-care-api/internal/domain/entity"
	domainRepo "family-care-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").Preload("Department").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").Preload("Department").
		Order("date DESC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").Preload("Department").
		Where("patient_id = ?", patientID).
		Order("date DESC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").Preload("Department").
		Where("doctor_id = ?", doctorID).
		Order("date DESC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindConflict checks slot occupancy at day granularity. Cancelled
// appointments do not block re-booking the same slot.
func (r *appointmentRepository) FindConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string, excludeID *uuid.UUID) (*entity.Appointment, error) {
	query := db.Where("doctor_id = ? AND date = ? AND time_slot = ? AND status <> ?",
		doctorID, date.Format("2006-01-02"), timeSlot, entity.AppointmentStatusCancelled)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var appointment entity.Appointment
	err := query.First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor", "Department").Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusBooked).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) MarkFeedbackSubmitted(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("feedback_submitted", true).Error
}

func (r *appointmentRepository) FindDueReminders(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").Preload("Department").
		Where("status = ? AND reminder_sent = ? AND date >= ? AND date <= ?",
			entity.AppointmentStatusBooked, false,
			from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ClaimReminder is the idempotency guard for concurrent sweeps: only one
// claimer observes an affected row.
func (r *appointmentRepository) ClaimReminder(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND reminder_sent = ? AND status = ?", id, false, entity.AppointmentStatusBooked).
		Update("reminder_sent", true)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) ReleaseReminder(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent", false).Error
}
