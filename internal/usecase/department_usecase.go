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

var ErrDepartmentNameTaken = errors.New("department name already exists")

type DepartmentUsecase interface {
	CreateDepartment(ctx context.Context, actorID uuid.UUID, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	UpdateDepartment(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, actorID, id uuid.UUID) error
}

type departmentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	deptRepo     repository.DepartmentRepository
	auditService service.AuditService
}

func NewDepartmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	deptRepo repository.DepartmentRepository,
	auditService service.AuditService,
) DepartmentUsecase {
	return &departmentUsecase{
		db:           db,
		log:          log,
		deptRepo:     deptRepo,
		auditService: auditService,
	}
}

func (u *departmentUsecase) CreateDepartment(ctx context.Context, actorID uuid.UUID, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &entity.Department{
		Name:          req.Name,
		Description:   req.Description,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Services:      req.Services,
	}

	if err := u.deptRepo.Create(u.db.WithContext(ctx), department); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrDepartmentNameTaken
		}
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &actorID, entity.AuditActionDepartmentCreate, entity.JSON{
		"department_id": department.ID.String(),
		"name":          department.Name,
	}); err != nil {
		u.log.Warnf("Failed to audit department creation: %+v", err)
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) GetDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error) {
	department, err := u.deptRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find department %s: %+v", id, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.deptRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}
	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}

func (u *departmentUsecase) UpdateDepartment(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := u.deptRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find department %s: %+v", id, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	if req.Name != "" {
		department.Name = req.Name
	}
	if req.Description != "" {
		department.Description = req.Description
	}
	if req.ContactPerson != "" {
		department.ContactPerson = req.ContactPerson
	}
	if req.ContactPhone != "" {
		department.ContactPhone = req.ContactPhone
	}
	if req.Services != nil {
		department.Services = req.Services
	}

	if err := u.deptRepo.Update(u.db.WithContext(ctx), department); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrDepartmentNameTaken
		}
		u.log.Warnf("Failed to update department %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &actorID, entity.AuditActionDepartmentUpdate, entity.JSON{
		"department_id": id.String(),
	}); err != nil {
		u.log.Warnf("Failed to audit department update: %+v", err)
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) DeleteDepartment(ctx context.Context, actorID, id uuid.UUID) error {
	affected, err := u.deptRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete department %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrDepartmentNotFound
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &actorID, entity.AuditActionDepartmentDelete, entity.JSON{
		"department_id": id.String(),
	}); err != nil {
		u.log.Warnf("Failed to audit department deletion: %+v", err)
	}

	return nil
}
