package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateFeedbackRequest struct {
	AppointmentID uuid.UUID `json:"appointmentId" validate:"required"`
	Rating        int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       string    `json:"comment" validate:"omitempty"`
}

// Response DTOs

type FeedbackResponse struct {
	ID            uuid.UUID           `json:"id"`
	PatientID     uuid.UUID           `json:"patient_id"`
	AppointmentID uuid.UUID           `json:"appointment_id"`
	Rating        int                 `json:"rating"`
	Comment       string              `json:"comment,omitempty"`
	Doctor        *DoctorResponse     `json:"doctor,omitempty"`
	Department    *DepartmentResponse `json:"department,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

type FeedbackListResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	Total     int                `json:"total"`
}
