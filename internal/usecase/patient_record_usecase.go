package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrPatientNotFound       = errors.New("patient not found")
	ErrPatientRecordNotFound = errors.New("patient record not found")
	ErrPatientRecordNotOwned = errors.New("patient record does not belong to you")
)

type PatientRecordUsecase interface {
	CreateRecord(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRecordRequest) (*dto.PatientRecordResponse, error)
	GetRecord(ctx context.Context, recordID, userID uuid.UUID, roleID int) (*dto.PatientRecordResponse, error)
	ListRecords(ctx context.Context, userID uuid.UUID, roleID int) (*dto.PatientRecordListResponse, error)
	UpdateRecord(ctx context.Context, recordID, actorID uuid.UUID, req *dto.UpdatePatientRecordRequest) (*dto.PatientRecordResponse, error)
	AddPrescription(ctx context.Context, recordID, actorID uuid.UUID, req *dto.AddPrescriptionRequest) (*dto.PatientRecordResponse, error)
	AddLabReport(ctx context.Context, recordID, actorID uuid.UUID, req *dto.AddLabReportRequest) (*dto.PatientRecordResponse, error)
}

type patientRecordUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	recordRepo   repository.PatientRecordRepository
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
}

func NewPatientRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.PatientRecordRepository,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) PatientRecordUsecase {
	return &patientRecordUsecase{
		db:           db,
		log:          log,
		recordRepo:   recordRepo,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// CreateRecord opens a medical record for a patient. Staff only; route
// middleware keeps patients out, so the actor here is admin or doctor.
func (u *patientRecordUsecase) CreateRecord(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRecordRequest) (*dto.PatientRecordResponse, error) {
	patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || patient.RoleID != entity.RoleIDPatient {
		return nil, ErrPatientNotFound
	}

	record := &entity.PatientRecord{
		PatientID:      req.PatientID,
		MedicalHistory: req.MedicalHistory,
		Notes:          req.Notes,
	}

	if err := u.recordRepo.Create(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create patient record: %+v", err)
		return nil, err
	}

	u.auditRecord(ctx, actorID, entity.AuditActionRecordCreate, record)

	u.log.Infof("Patient record created: id=%s, patient=%s", record.ID, req.PatientID)
	return converter.PatientRecordToResponse(record), nil
}

// GetRecord fetches one record. Staff can read any record; a patient only
// their own.
func (u *patientRecordUsecase) GetRecord(ctx context.Context, recordID, userID uuid.UUID, roleID int) (*dto.PatientRecordResponse, error) {
	record, err := u.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if roleID == entity.RoleIDPatient && record.PatientID != userID {
		return nil, ErrPatientRecordNotOwned
	}
	return converter.PatientRecordToResponse(record), nil
}

// ListRecords returns all records for staff and the caller's own records
// for patients.
func (u *patientRecordUsecase) ListRecords(ctx context.Context, userID uuid.UUID, roleID int) (*dto.PatientRecordListResponse, error) {
	var (
		records []entity.PatientRecord
		err     error
	)
	if roleID == entity.RoleIDAdmin || roleID == entity.RoleIDDoctor {
		records, err = u.recordRepo.FindAll(u.db.WithContext(ctx))
	} else {
		records, err = u.recordRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list patient records for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.PatientRecordListResponse{
		Records: converter.PatientRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// UpdateRecord replaces the medical history and/or notes of a record. Child
// entries are appended through AddPrescription and AddLabReport instead.
func (u *patientRecordUsecase) UpdateRecord(ctx context.Context, recordID, actorID uuid.UUID, req *dto.UpdatePatientRecordRequest) (*dto.PatientRecordResponse, error) {
	record, err := u.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if req.MedicalHistory != nil {
		record.MedicalHistory = req.MedicalHistory
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := u.recordRepo.Update(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to update patient record %s: %+v", recordID, err)
		return nil, err
	}

	u.auditRecord(ctx, actorID, entity.AuditActionRecordUpdate, record)

	return converter.PatientRecordToResponse(record), nil
}

// AddPrescription appends a prescription entry. When the actor has a doctor
// profile it is recorded as the prescribing doctor; admin-entered data
// carries no doctor reference.
func (u *patientRecordUsecase) AddPrescription(ctx context.Context, recordID, actorID uuid.UUID, req *dto.AddPrescriptionRequest) (*dto.PatientRecordResponse, error) {
	record, err := u.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	prescription := &entity.Prescription{
		RecordID:    recordID,
		Description: req.Description,
	}
	if date, ok := parseOptionalDate(req.Date); ok {
		prescription.Date = &date
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), actorID)
	if err != nil {
		u.log.Warnf("Failed to resolve prescribing doctor %s: %+v", actorID, err)
		return nil, err
	}
	if doctor != nil {
		id := doctor.UserID
		prescription.DoctorID = &id
	}

	if err := u.recordRepo.AddPrescription(u.db.WithContext(ctx), prescription); err != nil {
		u.log.Warnf("Failed to add prescription to record %s: %+v", recordID, err)
		return nil, err
	}

	u.auditRecord(ctx, actorID, entity.AuditActionRecordPrescribe, record)

	return u.reload(ctx, record)
}

// AddLabReport appends a lab report entry.
func (u *patientRecordUsecase) AddLabReport(ctx context.Context, recordID, actorID uuid.UUID, req *dto.AddLabReportRequest) (*dto.PatientRecordResponse, error) {
	record, err := u.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	report := &entity.LabReport{
		RecordID: recordID,
		Type:     req.Type,
		Result:   req.Result,
	}
	if date, ok := parseOptionalDate(req.Date); ok {
		report.Date = &date
	}

	if err := u.recordRepo.AddLabReport(u.db.WithContext(ctx), report); err != nil {
		u.log.Warnf("Failed to add lab report to record %s: %+v", recordID, err)
		return nil, err
	}

	u.auditRecord(ctx, actorID, entity.AuditActionRecordLabReport, record)

	return u.reload(ctx, record)
}

func (u *patientRecordUsecase) findRecord(ctx context.Context, recordID uuid.UUID) (*entity.PatientRecord, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.Warnf("Failed to find patient record %s: %+v", recordID, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrPatientRecordNotFound
	}
	return record, nil
}

func (u *patientRecordUsecase) reload(ctx context.Context, record *entity.PatientRecord) (*dto.PatientRecordResponse, error) {
	full, err := u.recordRepo.FindByID(u.db.WithContext(ctx), record.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload patient record %s: %+v", record.ID, err)
		return converter.PatientRecordToResponse(record), nil
	}
	return converter.PatientRecordToResponse(full), nil
}

func (u *patientRecordUsecase) auditRecord(ctx context.Context, actorID uuid.UUID, action string, record *entity.PatientRecord) {
	if u.auditService == nil {
		return
	}
	metadata := entity.JSON{
		"record_id":  record.ID.String(),
		"patient_id": record.PatientID.String(),
	}
	if err := u.auditService.Record(u.db.WithContext(ctx), &actorID, action, metadata); err != nil {
		u.log.Warnf("Failed to write audit log for %s: %+v", action, err)
	}
}

// parseOptionalDate parses an optional YYYY-MM-DD field. Validation has
// already rejected malformed values, so parse failures read as absent.
func parseOptionalDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
