package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SubmitEmergencyRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"required"`
	Location string `json:"location" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=ambulance emergency other"`
}

type UpdateEmergencyRequest struct {
	Status string `json:"status" validate:"required,oneof=pending responded completed"`
}

// Response DTOs

type EmergencyResponse struct {
	ID        uuid.UUID     `json:"id"`
	PatientID *uuid.UUID    `json:"patient_id,omitempty"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Location  string        `json:"location"`
	Type      string        `json:"type"`
	Status    string        `json:"status"`
	Patient   *UserResponse `json:"patient,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type EmergencyListResponse struct {
	Emergencies []EmergencyResponse `json:"emergencies"`
	Total       int                 `json:"total"`
}
