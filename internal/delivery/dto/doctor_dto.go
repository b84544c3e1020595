package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email          string    `json:"email" validate:"required,email"`
	Password       string    `json:"password" validate:"required,min=6"`
	FullName       string    `json:"full_name" validate:"required,min=2"`
	DepartmentID   uuid.UUID `json:"department" validate:"required"`
	Specialization string    `json:"specialization" validate:"required"`
	Qualifications string    `json:"qualifications" validate:"omitempty"`
	Experience     string    `json:"experience" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	FullName       string     `json:"full_name" validate:"omitempty,min=2"`
	DepartmentID   *uuid.UUID `json:"department" validate:"omitempty"`
	Specialization string     `json:"specialization" validate:"omitempty"`
	Qualifications string     `json:"qualifications" validate:"omitempty"`
	Experience     string     `json:"experience" validate:"omitempty"`
	IsActive       *bool      `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID           `json:"id"`
	Email          string              `json:"email"`
	FullName       string              `json:"full_name"`
	Specialization string              `json:"specialization"`
	Qualifications string              `json:"qualifications,omitempty"`
	Experience     string              `json:"experience,omitempty"`
	Department     *DepartmentResponse `json:"department,omitempty"`
	IsActive       *bool               `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
