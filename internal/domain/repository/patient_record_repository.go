package repository

import (
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRecordRepository interface {
	Create(db *gorm.DB, record *entity.PatientRecord) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientRecord, error)
	FindAll(db *gorm.DB) ([]entity.PatientRecord, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PatientRecord, error)
	Update(db *gorm.DB, record *entity.PatientRecord) error
	AddPrescription(db *gorm.DB, prescription *entity.Prescription) error
	AddLabReport(db *gorm.DB, report *entity.LabReport) error
}
