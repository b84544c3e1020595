package repository

import (
	"errors"

	"family-care-api/internal/domain/entity"
	domainRepo "family-care-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type emergencyRequestRepository struct{}

func NewEmergencyRequestRepository() domainRepo.EmergencyRequestRepository {
	return &emergencyRequestRepository{}
}

func (r *emergencyRequestRepository) Create(db *gorm.DB, request *entity.EmergencyRequest) error {
	return db.Omit("Patient").Create(request).Error
}

func (r *emergencyRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.EmergencyRequest, error) {
	var request entity.EmergencyRequest
	err := db.Preload("Patient").Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *emergencyRequestRepository) FindAll(db *gorm.DB) ([]entity.EmergencyRequest, error) {
	var requests []entity.EmergencyRequest
	err := db.Preload("Patient").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *emergencyRequestRepository) Update(db *gorm.DB, request *entity.EmergencyRequest) error {
	return db.Omit("Patient").Save(request).Error
}
