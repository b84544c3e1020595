package converter

import (
	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientRecordToResponse converts a PatientRecord entity to PatientRecordResponse DTO
func PatientRecordToResponse(record *entity.PatientRecord) *dto.PatientRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.PatientRecordResponse{
		ID:             record.ID,
		PatientID:      record.PatientID,
		MedicalHistory: record.MedicalHistory,
		Notes:          record.Notes,
		Prescriptions:  prescriptionsToResponses(record.Prescriptions),
		LabReports:     labReportsToResponses(record.LabReports),
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
	if record.MedicalHistory == nil {
		response.MedicalHistory = []string{}
	}
	if record.Patient.ID != uuid.Nil {
		response.Patient = UserToResponse(&record.Patient)
	}

	return response
}

// PatientRecordsToResponses converts a slice of PatientRecord entities to slice of PatientRecordResponse DTOs
func PatientRecordsToResponses(records []entity.PatientRecord) []dto.PatientRecordResponse {
	responses := make([]dto.PatientRecordResponse, len(records))
	for i := range records {
		responses[i] = *PatientRecordToResponse(&records[i])
	}
	return responses
}

func prescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, p := range prescriptions {
		responses[i] = dto.PrescriptionResponse{
			ID:          p.ID,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
		}
		if p.Date != nil {
			responses[i].Date = p.Date.Format("2006-01-02")
		}
		if p.Doctor != nil {
			responses[i].Doctor = DoctorProfileToResponse(p.Doctor)
		}
	}
	return responses
}

func labReportsToResponses(reports []entity.LabReport) []dto.LabReportResponse {
	responses := make([]dto.LabReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = dto.LabReportResponse{
			ID:        r.ID,
			Type:      r.Type,
			Result:    r.Result,
			CreatedAt: r.CreatedAt,
		}
		if r.Date != nil {
			responses[i].Date = r.Date.Format("2006-01-02")
		}
	}
	return responses
}
