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
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentNotOwned   = errors.New("appointment does not belong to you")
	ErrRoleNotAllowed        = errors.New("role is not allowed to perform this status change")
	ErrPastDate              = errors.New("appointment date cannot be in the past")
	ErrSlotConflict          = errors.New("this time slot is already booked for the selected doctor")
	ErrInvalidState          = errors.New("appointment is no longer in a booked state")
	ErrInvalidStatus         = errors.New("invalid appointment status")
	ErrInvalidAppointmentDay = errors.New("invalid appointment date format, use YYYY-MM-DD")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, appointmentID, patientID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, appointmentID, actorID uuid.UUID, roleID int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID, patientID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	departmentRepo  repository.DepartmentRepository
	auditService    service.AuditService
	mailer          service.Mailer
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	departmentRepo repository.DepartmentRepository,
	auditService service.AuditService,
	mailer service.Mailer,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		departmentRepo:  departmentRepo,
		auditService:    auditService,
		mailer:          mailer,
	}
}

// Book creates a new appointment for the patient.
//
// Flow:
// 1. Parse the date and reject calendar days before today
// 2. Validate the doctor exists with an active account and the department exists
// 3. Check the (doctor, date, timeSlot) slot is free of non-cancelled appointments
// 4. Insert; the partial unique index on the slot backstops the check, so a
//    concurrent booking that slipped past step 3 still surfaces as a conflict
func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date.Before(today()) {
		return nil, ErrPastDate
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	// Deactivated doctors are hidden from listings and take no new bookings.
	if doctor.User.IsActive != nil && !*doctor.User.IsActive {
		return nil, ErrDoctorNotFound
	}

	department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), req.DepartmentID)
	if err != nil {
		u.log.Warnf("Failed to find department %s: %+v", req.DepartmentID, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	conflict, err := u.appointmentRepo.FindConflict(u.db.WithContext(ctx), req.DoctorID, date, req.TimeSlot, nil)
	if err != nil {
		u.log.Warnf("Failed conflict check for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotConflict
	}

	appointment := &entity.Appointment{
		PatientID:    patientID,
		DoctorID:     req.DoctorID,
		DepartmentID: req.DepartmentID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Status:       entity.AppointmentStatusBooked,
		Notes:        req.Notes,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "appointments_slot") {
			// Lost the race against a concurrent booking for the same slot.
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.audit(ctx, &patientID, entity.AuditActionAppointmentBook, appointment)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.sendConfirmation(full)

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, slot=%s",
		appointment.ID, req.DoctorID, req.Date, req.TimeSlot)
	return converter.AppointmentToResponse(full), nil
}

// Reschedule moves a booked, future-dated appointment owned by the patient to
// a new date and time slot. The reminder flag is reset so the new date gets
// its own reminder cycle.
func (u *appointmentUsecase) Reschedule(ctx context.Context, appointmentID, patientID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := canReschedule(appointment, patientID); err != nil {
		return nil, err
	}

	newDate, err := parseAppointmentDate(req.Date)
	if err != nil {
		return nil, err
	}
	if newDate.Before(today()) {
		return nil, ErrPastDate
	}

	conflict, err := u.appointmentRepo.FindConflict(u.db.WithContext(ctx), appointment.DoctorID, newDate, req.TimeSlot, &appointment.ID)
	if err != nil {
		u.log.Warnf("Failed conflict check for appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotConflict
	}

	appointment.Date = newDate
	appointment.TimeSlot = req.TimeSlot
	appointment.ReminderSent = false

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "appointments_slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to reschedule appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.audit(ctx, &patientID, entity.AuditActionAppointmentReschedule, appointment)

	u.log.Infof("Appointment rescheduled: id=%s, date=%s, slot=%s", appointmentID, req.Date, req.TimeSlot)
	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus applies a doctor/admin-driven status transition. Only
// booked -> completed and booked -> cancelled are permitted; terminal states
// are immutable.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID, actorID uuid.UUID, roleID int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	// The guard lives here rather than in transport middleware so the state
	// machine stays enforceable without HTTP.
	if roleID != entity.RoleIDAdmin && roleID != entity.RoleIDDoctor {
		return nil, ErrRoleNotAllowed
	}

	newStatus := entity.AppointmentStatus(req.Status)
	if !newStatus.IsTerminal() {
		return nil, ErrInvalidStatus
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsBooked() {
		return nil, ErrInvalidState
	}

	// Conditional update: a concurrent transition wins and this one reports
	// the appointment as no longer booked.
	affected, err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), appointmentID, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update status of appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidState
	}

	appointment.Status = newStatus
	if req.Notes != "" {
		appointment.Notes = req.Notes
		if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
			u.log.Warnf("Failed to update notes of appointment %s: %+v", appointmentID, err)
		}
	}

	action := entity.AuditActionAppointmentCancel
	if newStatus == entity.AppointmentStatusCompleted {
		action = entity.AuditActionAppointmentComplete
	}
	u.audit(ctx, &actorID, action, appointment)

	u.log.Infof("Appointment status updated: id=%s, status=%s", appointmentID, newStatus)
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel is the patient-restricted transition to cancelled.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID, patientID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := canCancel(appointment, patientID); err != nil {
		return err
	}

	affected, err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), appointmentID, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrInvalidState
	}

	u.audit(ctx, &patientID, entity.AuditActionAppointmentCancel, appointment)

	u.log.Infof("Appointment cancelled: id=%s, patient=%s", appointmentID, patientID)
	return nil
}

// List returns the role-scoped appointment listing: admins see everything,
// doctors and patients see their own.
func (u *appointmentUsecase) List(ctx context.Context, userID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error) {
	var (
		appointments []entity.Appointment
		err          error
	)
	switch roleID {
	case entity.RoleIDAdmin:
		appointments, err = u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	case entity.RoleIDDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), userID)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// canReschedule is the ownership/state guard for patient rescheduling.
func canReschedule(appointment *entity.Appointment, patientID uuid.UUID) error {
	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}
	if !appointment.IsBooked() {
		return ErrInvalidState
	}
	// An appointment whose own date already passed cannot be moved anymore.
	if appointment.Date.Before(today()) {
		return ErrPastDate
	}
	return nil
}

// canCancel is the ownership guard for patient cancellation.
func canCancel(appointment *entity.Appointment, patientID uuid.UUID) error {
	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}
	if !appointment.IsBooked() {
		return ErrInvalidState
	}
	return nil
}

func (u *appointmentUsecase) audit(ctx context.Context, userID *uuid.UUID, action string, appointment *entity.Appointment) {
	if u.auditService == nil {
		return
	}
	metadata := entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      appointment.DoctorID.String(),
		"date":           appointment.Date.Format("2006-01-02"),
		"time_slot":      appointment.TimeSlot,
		"status":         string(appointment.Status),
	}
	if err := u.auditService.Record(u.db.WithContext(ctx), userID, action, metadata); err != nil {
		u.log.Warnf("Failed to write audit log for %s: %+v", action, err)
	}
}

// sendConfirmation dispatches the booking confirmation mail in the
// background. Delivery is best effort and never fails the booking.
func (u *appointmentUsecase) sendConfirmation(appointment *entity.Appointment) {
	if u.mailer == nil || appointment.Patient.Email == "" {
		return
	}
	appt := *appointment
	go func() {
		if err := u.mailer.SendAppointmentConfirmation(appt.Patient.Email, &appt); err != nil {
			u.log.Warnf("Failed to send confirmation email for appointment %s: %+v", appt.ID, err)
		}
	}()
}

// parseAppointmentDate parses a YYYY-MM-DD calendar day. Time-of-day is
// irrelevant for appointments; slot granularity comes from the timeSlot label.
func parseAppointmentDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidAppointmentDay
	}
	return date, nil
}

// today returns the current calendar day at midnight UTC.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
