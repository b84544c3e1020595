package usecase

import (
	"context"
	"errors"

	"family-care-api/internal/converter"
	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"
	"family-care-api/internal/domain/repository"
	"family-care-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrEmergencyNotFound      = errors.New("emergency request not found")
	ErrInvalidEmergencyStatus = errors.New("invalid emergency request status")
)

type EmergencyUsecase interface {
	Submit(ctx context.Context, patientID *uuid.UUID, req *dto.SubmitEmergencyRequest) (*dto.EmergencyResponse, error)
	List(ctx context.Context) (*dto.EmergencyListResponse, error)
	UpdateStatus(ctx context.Context, requestID, actorID uuid.UUID, req *dto.UpdateEmergencyRequest) (*dto.EmergencyResponse, error)
}

type emergencyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	emergencyRepo repository.EmergencyRequestRepository
	auditService  service.AuditService
}

func NewEmergencyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	emergencyRepo repository.EmergencyRequestRepository,
	auditService service.AuditService,
) EmergencyUsecase {
	return &emergencyUsecase{
		db:            db,
		log:           log,
		emergencyRepo: emergencyRepo,
		auditService:  auditService,
	}
}

// Submit records an inbound emergency request. Open to guests: patientID is
// nil when the caller is not authenticated.
func (u *emergencyUsecase) Submit(ctx context.Context, patientID *uuid.UUID, req *dto.SubmitEmergencyRequest) (*dto.EmergencyResponse, error) {
	requestType := entity.EmergencyType(req.Type)
	if requestType == "" {
		requestType = entity.EmergencyTypeEmergency
	}

	request := &entity.EmergencyRequest{
		PatientID: patientID,
		Name:      req.Name,
		Phone:     req.Phone,
		Location:  req.Location,
		Type:      requestType,
		Status:    entity.EmergencyStatusPending,
	}

	if err := u.emergencyRepo.Create(u.db.WithContext(ctx), request); err != nil {
		u.log.Warnf("Failed to create emergency request: %+v", err)
		return nil, err
	}

	u.auditEmergency(ctx, patientID, entity.AuditActionEmergencySubmit, request)

	u.log.Infof("Emergency request submitted: id=%s, type=%s", request.ID, request.Type)
	return converter.EmergencyToResponse(request), nil
}

func (u *emergencyUsecase) List(ctx context.Context) (*dto.EmergencyListResponse, error) {
	requests, err := u.emergencyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list emergency requests: %+v", err)
		return nil, err
	}

	return &dto.EmergencyListResponse{
		Emergencies: converter.EmergenciesToResponses(requests),
		Total:       len(requests),
	}, nil
}

// UpdateStatus moves a request along pending -> responded -> completed.
// Admin only; route middleware enforces the role.
func (u *emergencyUsecase) UpdateStatus(ctx context.Context, requestID, actorID uuid.UUID, req *dto.UpdateEmergencyRequest) (*dto.EmergencyResponse, error) {
	newStatus := entity.EmergencyStatus(req.Status)
	if !newStatus.IsValid() {
		return nil, ErrInvalidEmergencyStatus
	}

	request, err := u.emergencyRepo.FindByID(u.db.WithContext(ctx), requestID)
	if err != nil {
		u.log.Warnf("Failed to find emergency request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrEmergencyNotFound
	}

	request.Status = newStatus
	if err := u.emergencyRepo.Update(u.db.WithContext(ctx), request); err != nil {
		u.log.Warnf("Failed to update emergency request %s: %+v", requestID, err)
		return nil, err
	}

	u.auditEmergency(ctx, &actorID, entity.AuditActionEmergencyUpdate, request)

	u.log.Infof("Emergency request updated: id=%s, status=%s", requestID, newStatus)
	return converter.EmergencyToResponse(request), nil
}

func (u *emergencyUsecase) auditEmergency(ctx context.Context, userID *uuid.UUID, action string, request *entity.EmergencyRequest) {
	if u.auditService == nil {
		return
	}
	metadata := entity.JSON{
		"emergency_id": request.ID.String(),
		"type":         string(request.Type),
		"status":       string(request.Status),
	}
	if err := u.auditService.Record(u.db.WithContext(ctx), userID, action, metadata); err != nil {
		u.log.Warnf("Failed to write audit log for %s: %+v", action, err)
	}
}
