package converter

import (
	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
)

// FeedbackToResponse converts a Feedback entity to FeedbackResponse DTO
func FeedbackToResponse(feedback *entity.Feedback) *dto.FeedbackResponse {
	if feedback == nil {
		return nil
	}

	response := &dto.FeedbackResponse{
		ID:            feedback.ID,
		PatientID:     feedback.PatientID,
		AppointmentID: feedback.AppointmentID,
		Rating:        feedback.Rating,
		Comment:       feedback.Comment,
		CreatedAt:     feedback.CreatedAt,
	}
	if feedback.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorProfileToResponse(&feedback.Doctor)
	}
	if feedback.Department.ID != uuid.Nil {
		response.Department = DepartmentToResponse(&feedback.Department)
	}

	return response
}

// FeedbacksToResponses converts a slice of Feedback entities to slice of FeedbackResponse DTOs
func FeedbacksToResponses(feedbacks []entity.Feedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		responses[i] = *FeedbackToResponse(&feedbacks[i])
	}
	return responses
}
