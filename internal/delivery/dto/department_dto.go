package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDepartmentRequest struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Description   string   `json:"description" validate:"omitempty"`
	ContactPerson string   `json:"contact_person" validate:"omitempty"`
	ContactPhone  string   `json:"contact_phone" validate:"omitempty"`
	Services      []string `json:"services" validate:"omitempty"`
}

type UpdateDepartmentRequest struct {
	Name          string   `json:"name" validate:"omitempty,min=2"`
	Description   string   `json:"description" validate:"omitempty"`
	ContactPerson string   `json:"contact_person" validate:"omitempty"`
	ContactPhone  string   `json:"contact_phone" validate:"omitempty"`
	Services      []string `json:"services" validate:"omitempty"`
}

// Response DTOs

type DepartmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	Services      []string  `json:"services,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}
