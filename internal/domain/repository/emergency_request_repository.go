package repository

import (
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyRequestRepository interface {
	Create(db *gorm.DB, request *entity.EmergencyRequest) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.EmergencyRequest, error)
	FindAll(db *gorm.DB) ([]entity.EmergencyRequest, error)
	Update(db *gorm.DB, request *entity.EmergencyRequest) error
}
