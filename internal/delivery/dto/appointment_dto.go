package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// Field names follow the client contract: appointments are booked with
// {doctor, department, date, timeSlot} where date is YYYY-MM-DD and timeSlot
// is an opaque label such as "09:00 AM".

type BookAppointmentRequest struct {
	DoctorID     uuid.UUID `json:"doctor" validate:"required"`
	DepartmentID uuid.UUID `json:"department" validate:"required"`
	Date         string    `json:"date" validate:"required"`
	TimeSlot     string    `json:"timeSlot" validate:"required"`
	Notes        string    `json:"notes" validate:"omitempty"`
}

type RescheduleAppointmentRequest struct {
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"timeSlot" validate:"required"`
}

type UpdateAppointmentRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
	Notes  string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                uuid.UUID           `json:"id"`
	PatientID         uuid.UUID           `json:"patient_id"`
	DoctorID          uuid.UUID           `json:"doctor_id"`
	DepartmentID      uuid.UUID           `json:"department_id"`
	Date              string              `json:"date"`
	TimeSlot          string              `json:"timeSlot"`
	Status            string              `json:"status"`
	Notes             string              `json:"notes,omitempty"`
	FeedbackSubmitted bool                `json:"feedback_submitted"`
	ReminderSent      bool                `json:"reminder_sent"`
	Patient           *UserResponse       `json:"patient,omitempty"`
	Doctor            *DoctorResponse     `json:"doctor,omitempty"`
	Department        *DepartmentResponse `json:"department,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
