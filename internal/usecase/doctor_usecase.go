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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrDepartmentNotFound = errors.New("department not found")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, departmentID *uuid.UUID) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, actorID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, actorID, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorProfileRepository
	deptRepo     repository.DepartmentRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	deptRepo repository.DepartmentRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		deptRepo:     deptRepo,
		auditService: auditService,
	}
}

// CreateDoctor creates the user account and doctor profile in one
// transaction. Admin-only; the router enforces the role.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	department, err := u.deptRepo.FindByID(u.db.WithContext(ctx), req.DepartmentID)
	if err != nil {
		u.log.Warnf("Failed to find department %s: %+v", req.DepartmentID, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	active := true
	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDDoctor,
		IsActive: &active,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor user: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:         user.ID,
		DepartmentID:   req.DepartmentID,
		Specialization: req.Specialization,
		Qualifications: req.Qualifications,
		Experience:     req.Experience,
	}

	if err := u.doctorRepo.Create(tx, profile); err != nil {
		if isForeignKeyError(err, "department") {
			return nil, ErrDepartmentNotFound
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &actorID, entity.AuditActionDoctorCreate, entity.JSON{
		"doctor_id": user.ID.String(),
		"email":     user.Email,
	}); err != nil {
		u.log.Warnf("Failed to audit doctor creation: %+v", err)
	}

	profile.User = *user
	profile.Department = *department
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, departmentID *uuid.UUID) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), departmentID)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, actorID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if req.DepartmentID != nil {
		department, err := u.deptRepo.FindByID(u.db.WithContext(ctx), *req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, ErrDepartmentNotFound
		}
		profile.DepartmentID = *req.DepartmentID
		profile.Department = *department
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Qualifications != "" {
		profile.Qualifications = req.Qualifications
	}
	if req.Experience != "" {
		profile.Experience = req.Experience
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile %s: %+v", doctorID, err)
		return nil, err
	}

	if req.FullName != "" || req.IsActive != nil {
		user, err := u.userRepo.FindByID(tx, doctorID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrDoctorNotFound
		}
		if req.FullName != "" {
			user.FullName = req.FullName
		}
		if req.IsActive != nil {
			user.IsActive = req.IsActive
		}
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update doctor user %s: %+v", doctorID, err)
			return nil, err
		}
		profile.User = *user
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &actorID, entity.AuditActionDoctorUpdate, entity.JSON{
		"doctor_id": doctorID.String(),
	}); err != nil {
		u.log.Warnf("Failed to audit doctor update: %+v", err)
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// DeleteDoctor deactivates the doctor's user account rather than removing
// rows, so existing appointments keep their references.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, actorID, doctorID uuid.UUID) error {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor user %s: %+v", doctorID, err)
		return err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return ErrDoctorNotFound
	}

	inactive := false
	user.IsActive = &inactive
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", doctorID, err)
		return err
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &actorID, entity.AuditActionDoctorDelete, entity.JSON{
		"doctor_id": doctorID.String(),
	}); err != nil {
		u.log.Warnf("Failed to audit doctor deletion: %+v", err)
	}

	return nil
}
