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
	ErrFeedbackDuplicate      = errors.New("feedback already submitted for this appointment")
	ErrFeedbackNotOwned       = errors.New("appointment does not belong to you")
	ErrFeedbackAppointmentOpen = errors.New("feedback requires a completed appointment")
)

type FeedbackUsecase interface {
	CreateFeedback(ctx context.Context, patientID uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	ListMine(ctx context.Context, patientID uuid.UUID) (*dto.FeedbackListResponse, error)
	List(ctx context.Context, filter *repository.FeedbackFilter) (*dto.FeedbackListResponse, error)
}

type feedbackUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	feedbackRepo    repository.FeedbackRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewFeedbackUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	feedbackRepo repository.FeedbackRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) FeedbackUsecase {
	return &feedbackUsecase{
		db:              db,
		log:             log,
		feedbackRepo:    feedbackRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// CreateFeedback records patient feedback against a completed appointment the
// patient owns. The doctor and department references are taken from the
// appointment itself, not from the request.
func (u *feedbackUsecase) CreateFeedback(ctx context.Context, patientID uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrFeedbackNotOwned
	}
	if !appointment.IsCompleted() {
		return nil, ErrFeedbackAppointmentOpen
	}

	existing, err := u.feedbackRepo.FindByPatientAndAppointment(u.db.WithContext(ctx), patientID, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed duplicate feedback check: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrFeedbackDuplicate
	}

	feedback := &entity.Feedback{
		PatientID:     patientID,
		DoctorID:      appointment.DoctorID,
		DepartmentID:  appointment.DepartmentID,
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := u.feedbackRepo.Create(u.db.WithContext(ctx), feedback); err != nil {
		if isDuplicateKeyError(err, "feedbacks_patient_appointment") {
			return nil, ErrFeedbackDuplicate
		}
		u.log.Warnf("Failed to create feedback: %+v", err)
		return nil, err
	}

	if err := u.appointmentRepo.MarkFeedbackSubmitted(u.db.WithContext(ctx), req.AppointmentID); err != nil {
		u.log.Warnf("Failed to mark appointment %s feedback_submitted: %+v", req.AppointmentID, err)
	}

	if err := u.auditService.Record(u.db.WithContext(ctx), &patientID, entity.AuditActionFeedbackCreate, entity.JSON{
		"feedback_id":    feedback.ID.String(),
		"appointment_id": req.AppointmentID.String(),
		"rating":         req.Rating,
	}); err != nil {
		u.log.Warnf("Failed to audit feedback creation: %+v", err)
	}

	return converter.FeedbackToResponse(feedback), nil
}

func (u *feedbackUsecase) ListMine(ctx context.Context, patientID uuid.UUID) (*dto.FeedbackListResponse, error) {
	feedbacks, err := u.feedbackRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list feedback for patient %s: %+v", patientID, err)
		return nil, err
	}
	return &dto.FeedbackListResponse{
		Feedbacks: converter.FeedbacksToResponses(feedbacks),
		Total:     len(feedbacks),
	}, nil
}

func (u *feedbackUsecase) List(ctx context.Context, filter *repository.FeedbackFilter) (*dto.FeedbackListResponse, error) {
	feedbacks, err := u.feedbackRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list feedback: %+v", err)
		return nil, err
	}
	return &dto.FeedbackListResponse{
		Feedbacks: converter.FeedbacksToResponses(feedbacks),
		Total:     len(feedbacks),
	}, nil
}
