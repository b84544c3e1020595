package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRecordRequest struct {
	PatientID      uuid.UUID `json:"patient" validate:"required"`
	MedicalHistory []string  `json:"medical_history" validate:"omitempty"`
	Notes          string    `json:"notes" validate:"omitempty"`
}

type UpdatePatientRecordRequest struct {
	MedicalHistory []string `json:"medical_history" validate:"omitempty"`
	Notes          *string  `json:"notes" validate:"omitempty"`
}

type AddPrescriptionRequest struct {
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" validate:"required"`
}

type AddLabReportRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type   string `json:"type" validate:"required"`
	Result string `json:"result" validate:"omitempty"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description"`
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type LabReportResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date,omitempty"`
	Type      string    `json:"type"`
	Result    string    `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientRecordResponse struct {
	ID             uuid.UUID              `json:"id"`
	PatientID      uuid.UUID              `json:"patient_id"`
	MedicalHistory []string               `json:"medical_history"`
	Notes          string                 `json:"notes,omitempty"`
	Patient        *UserResponse          `json:"patient,omitempty"`
	Prescriptions  []PrescriptionResponse `json:"prescriptions"`
	LabReports     []LabReportResponse    `json:"lab_reports"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type PatientRecordListResponse struct {
	Records []PatientRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
