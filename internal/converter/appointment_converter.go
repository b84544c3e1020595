package converter

import (
	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                appointment.ID,
		PatientID:         appointment.PatientID,
		DoctorID:          appointment.DoctorID,
		DepartmentID:      appointment.DepartmentID,
		Date:              appointment.Date.Format("2006-01-02"),
		TimeSlot:          appointment.TimeSlot,
		Status:            string(appointment.Status),
		Notes:             appointment.Notes,
		FeedbackSubmitted: appointment.FeedbackSubmitted,
		ReminderSent:      appointment.ReminderSent,
		CreatedAt:         appointment.CreatedAt,
		UpdatedAt:         appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.Patient = UserToResponse(&appointment.Patient)
	}
	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorProfileToResponse(&appointment.Doctor)
	}
	if appointment.Department.ID != uuid.Nil {
		response.Department = DepartmentToResponse(&appointment.Department)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
