package repository

import (
	"errors"

	"family-care-api/internal/domain/entity"
	domainRepo "family-care-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRecordRepository struct{}

func NewPatientRecordRepository() domainRepo.PatientRecordRepository {
	return &patientRecordRepository{}
}

func (r *patientRecordRepository) Create(db *gorm.DB, record *entity.PatientRecord) error {
	return db.Omit("Patient", "Prescriptions", "LabReports").Create(record).Error
}

func (r *patientRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientRecord, error) {
	var record entity.PatientRecord
	err := db.Preload("Patient").
		Preload("Prescriptions.Doctor.User").
		Preload("LabReports").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *patientRecordRepository) FindAll(db *gorm.DB) ([]entity.PatientRecord, error) {
	var records []entity.PatientRecord
	err := db.Preload("Patient").
		Preload("Prescriptions.Doctor.User").
		Preload("LabReports").
		Order("updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *patientRecordRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PatientRecord, error) {
	var records []entity.PatientRecord
	err := db.Preload("Patient").
		Preload("Prescriptions.Doctor.User").
		Preload("LabReports").
		Where("patient_id = ?", patientID).
		Order("updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *patientRecordRepository) Update(db *gorm.DB, record *entity.PatientRecord) error {
	return db.Omit("Patient", "Prescriptions", "LabReports").Save(record).Error
}

func (r *patientRecordRepository) AddPrescription(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Doctor").Create(prescription).Error
}

func (r *patientRecordRepository) AddLabReport(db *gorm.DB, report *entity.LabReport) error {
	return db.Create(report).Error
}
