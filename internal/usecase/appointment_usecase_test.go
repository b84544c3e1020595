package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
	createErr    error
	// forceAffected overrides the UpdateStatus result to simulate a
	// concurrent transition winning between the read and the update.
	forceAffected *int64
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	found := *appointment
	return &found, nil
}

func (f *fakeAppointmentRepo) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string, excludeID *uuid.UUID) (*entity.Appointment, error) {
	for _, a := range f.appointments {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.TimeSlot == timeSlot && a.Status != entity.AppointmentStatusCancelled {
			found := *a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	if f.forceAffected != nil {
		return *f.forceAffected, nil
	}
	appointment, ok := f.appointments[id]
	if !ok || appointment.Status != entity.AppointmentStatusBooked {
		return 0, nil
	}
	appointment.Status = status
	return 1, nil
}

func (f *fakeAppointmentRepo) MarkFeedbackSubmitted(db *gorm.DB, id uuid.UUID) error {
	if appointment, ok := f.appointments[id]; ok {
		appointment.FeedbackSubmitted = true
	}
	return nil
}

func (f *fakeAppointmentRepo) FindDueReminders(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.Status == entity.AppointmentStatusBooked && !a.ReminderSent && !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ClaimReminder(db *gorm.DB, id uuid.UUID) (int64, error) {
	appointment, ok := f.appointments[id]
	if !ok || appointment.ReminderSent || appointment.Status != entity.AppointmentStatusBooked {
		return 0, nil
	}
	appointment.ReminderSent = true
	return 1, nil
}

func (f *fakeAppointmentRepo) ReleaseReminder(db *gorm.DB, id uuid.UUID) error {
	if appointment, ok := f.appointments[id]; ok {
		appointment.ReminderSent = false
	}
	return nil
}

type fakeDoctorRepo struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{profiles: map[uuid.UUID]*entity.DoctorProfile{}}
}

func (f *fakeDoctorRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	stored := *profile
	f.profiles[profile.UserID] = &stored
	return nil
}

func (f *fakeDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	found := *profile
	return &found, nil
}

func (f *fakeDoctorRepo) FindAll(db *gorm.DB, departmentID *uuid.UUID) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, p := range f.profiles {
		if departmentID != nil && p.DepartmentID != *departmentID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeDoctorRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	stored := *profile
	f.profiles[profile.UserID] = &stored
	return nil
}

func (f *fakeDoctorRepo) Delete(db *gorm.DB, userID uuid.UUID) (int64, error) {
	if _, ok := f.profiles[userID]; !ok {
		return 0, nil
	}
	delete(f.profiles, userID)
	return 1, nil
}

type fakeDepartmentRepo struct {
	departments map[uuid.UUID]*entity.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[uuid.UUID]*entity.Department{}}
}

func (f *fakeDepartmentRepo) Create(db *gorm.DB, department *entity.Department) error {
	if department.ID == uuid.Nil {
		department.ID = uuid.New()
	}
	stored := *department
	f.departments[department.ID] = &stored
	return nil
}

func (f *fakeDepartmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, nil
	}
	found := *department
	return &found, nil
}

func (f *fakeDepartmentRepo) FindAll(db *gorm.DB) ([]entity.Department, error) {
	var out []entity.Department
	for _, d := range f.departments {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(db *gorm.DB, department *entity.Department) error {
	stored := *department
	f.departments[department.ID] = &stored
	return nil
}

func (f *fakeDepartmentRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := f.departments[id]; !ok {
		return 0, nil
	}
	delete(f.departments, id)
	return 1, nil
}

type appointmentFixture struct {
	usecase         AppointmentUsecase
	appointmentRepo *fakeAppointmentRepo
	doctorRepo      *fakeDoctorRepo
	departmentRepo  *fakeDepartmentRepo
	doctorID        uuid.UUID
	departmentID    uuid.UUID
	patientID       uuid.UUID
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testDB() *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	appointmentRepo := newFakeAppointmentRepo()
	doctorRepo := newFakeDoctorRepo()
	departmentRepo := newFakeDepartmentRepo()

	departmentID := uuid.New()
	require.NoError(t, departmentRepo.Create(nil, &entity.Department{ID: departmentID, Name: "Cardiology"}))

	doctorID := uuid.New()
	require.NoError(t, doctorRepo.Create(nil, &entity.DoctorProfile{UserID: doctorID, DepartmentID: departmentID, Specialization: "Cardiologist"}))

	u := NewAppointmentUsecase(testDB(), testLogger(), appointmentRepo, doctorRepo, departmentRepo, nil, nil)

	return &appointmentFixture{
		usecase:         u,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		departmentRepo:  departmentRepo,
		doctorID:        doctorID,
		departmentID:    departmentID,
		patientID:       uuid.New(),
	}
}

func dateString(daysFromNow int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func (f *appointmentFixture) book(t *testing.T, date, slot string) *dto.AppointmentResponse {
	t.Helper()
	resp, err := f.usecase.Book(context.Background(), f.patientID, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         date,
		TimeSlot:     slot,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func TestBook(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	assert.Equal(t, string(entity.AppointmentStatusBooked), resp.Status)
	assert.Equal(t, f.patientID, resp.PatientID)
	assert.Equal(t, f.doctorID, resp.DoctorID)
	assert.Equal(t, "09:00 AM", resp.TimeSlot)
	assert.Equal(t, dateString(1), resp.Date)
}

func TestBookInvalidDate(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         "31-12-2026",
		TimeSlot:     "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrInvalidAppointmentDay)
}

func TestBookPastDate(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         dateString(-1),
		TimeSlot:     "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestBookUnknownDoctor(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.BookAppointmentRequest{
		DoctorID:     uuid.New(),
		DepartmentID: f.departmentID,
		Date:         dateString(1),
		TimeSlot:     "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBookDeactivatedDoctor(t *testing.T) {
	f := newAppointmentFixture(t)

	inactive := false
	f.doctorRepo.profiles[f.doctorID].User = entity.User{ID: f.doctorID, IsActive: &inactive}

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         dateString(1),
		TimeSlot:     "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBookUnknownDepartment(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: uuid.New(),
		Date:         dateString(1),
		TimeSlot:     "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
}

func TestBookSlotConflict(t *testing.T) {
	f := newAppointmentFixture(t)

	f.book(t, dateString(1), "09:00 AM")

	// Another patient wants the same doctor, date, and slot.
	_, err := f.usecase.Book(context.Background(), uuid.New(), &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         dateString(1),
		TimeSlot:     "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// A different slot on the same day is fine.
	f.book(t, dateString(1), "10:00 AM")
}

func TestBookCancelledSlotIsFree(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")
	require.NoError(t, f.usecase.Cancel(context.Background(), resp.ID, f.patientID))

	// Cancelling released the slot, so the same triple can be booked again.
	f.book(t, dateString(1), "09:00 AM")
}

func TestBookConcurrentInsertConflict(t *testing.T) {
	f := newAppointmentFixture(t)
	// Simulate the partial unique index rejecting a racing insert.
	f.appointmentRepo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "appointments_slot_unique"}

	_, err := f.usecase.Book(context.Background(), f.patientID, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         dateString(1),
		TimeSlot:     "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestReschedule(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	// Pretend the reminder for the original date already went out.
	f.appointmentRepo.appointments[resp.ID].ReminderSent = true

	updated, err := f.usecase.Reschedule(context.Background(), resp.ID, f.patientID, &dto.RescheduleAppointmentRequest{
		Date:     dateString(3),
		TimeSlot: "02:00 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, dateString(3), updated.Date)
	assert.Equal(t, "02:00 PM", updated.TimeSlot)
	assert.False(t, updated.ReminderSent, "rescheduling must re-arm the reminder")
}

func TestRescheduleToOwnSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	// The appointment's own slot does not count as a conflict.
	_, err := f.usecase.Reschedule(context.Background(), resp.ID, f.patientID, &dto.RescheduleAppointmentRequest{
		Date:     dateString(1),
		TimeSlot: "09:00 AM",
	})
	assert.NoError(t, err)
}

func TestRescheduleNotFound(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Reschedule(context.Background(), uuid.New(), f.patientID, &dto.RescheduleAppointmentRequest{
		Date:     dateString(1),
		TimeSlot: "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRescheduleNotOwned(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	_, err := f.usecase.Reschedule(context.Background(), resp.ID, uuid.New(), &dto.RescheduleAppointmentRequest{
		Date:     dateString(2),
		TimeSlot: "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestRescheduleNotBooked(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")
	require.NoError(t, f.usecase.Cancel(context.Background(), resp.ID, f.patientID))

	_, err := f.usecase.Reschedule(context.Background(), resp.ID, f.patientID, &dto.RescheduleAppointmentRequest{
		Date:     dateString(2),
		TimeSlot: "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRescheduleToPastDate(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	_, err := f.usecase.Reschedule(context.Background(), resp.ID, f.patientID, &dto.RescheduleAppointmentRequest{
		Date:     dateString(-1),
		TimeSlot: "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestReschedulePastAppointmentIsFrozen(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	// The appointment's own date has already passed; it can no longer be
	// moved, not even to a valid future date.
	f.appointmentRepo.appointments[resp.ID].Date = time.Now().UTC().AddDate(0, 0, -1)

	_, err := f.usecase.Reschedule(context.Background(), resp.ID, f.patientID, &dto.RescheduleAppointmentRequest{
		Date:     dateString(2),
		TimeSlot: "09:00 AM",
	})
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestRescheduleSlotConflict(t *testing.T) {
	f := newAppointmentFixture(t)

	first := f.book(t, dateString(1), "09:00 AM")

	other := uuid.New()
	_, err := f.usecase.Book(context.Background(), other, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         dateString(2),
		TimeSlot:     "10:00 AM",
	})
	require.NoError(t, err)

	_, err = f.usecase.Reschedule(context.Background(), first.ID, f.patientID, &dto.RescheduleAppointmentRequest{
		Date:     dateString(2),
		TimeSlot: "10:00 AM",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestUpdateStatusComplete(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	updated, err := f.usecase.UpdateStatus(context.Background(), resp.ID, f.doctorID, entity.RoleIDDoctor, &dto.UpdateAppointmentRequest{
		Status: "completed",
		Notes:  "Follow-up in two weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), updated.Status)
	assert.Equal(t, "Follow-up in two weeks", updated.Notes)
}

func TestUpdateStatusRoleGuard(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	_, err := f.usecase.UpdateStatus(context.Background(), resp.ID, f.patientID, entity.RoleIDPatient, &dto.UpdateAppointmentRequest{
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestUpdateStatusRejectsNonTerminalTarget(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	_, err := f.usecase.UpdateStatus(context.Background(), resp.ID, f.doctorID, entity.RoleIDDoctor, &dto.UpdateAppointmentRequest{
		Status: "booked",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusTerminalIsImmutable(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	_, err := f.usecase.UpdateStatus(context.Background(), resp.ID, f.doctorID, entity.RoleIDDoctor, &dto.UpdateAppointmentRequest{
		Status: "completed",
	})
	require.NoError(t, err)

	// completed -> cancelled is not a legal transition.
	_, err = f.usecase.UpdateStatus(context.Background(), resp.ID, f.doctorID, entity.RoleIDDoctor, &dto.UpdateAppointmentRequest{
		Status: "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateStatusConcurrentTransition(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	// The row read as booked, but another transition landed first.
	var zero int64
	f.appointmentRepo.forceAffected = &zero

	_, err := f.usecase.UpdateStatus(context.Background(), resp.ID, f.doctorID, entity.RoleIDDoctor, &dto.UpdateAppointmentRequest{
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancel(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	require.NoError(t, f.usecase.Cancel(context.Background(), resp.ID, f.patientID))

	stored := f.appointmentRepo.appointments[resp.ID]
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
}

func TestCancelNotOwned(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	err := f.usecase.Cancel(context.Background(), resp.ID, uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCancelTwice(t *testing.T) {
	f := newAppointmentFixture(t)

	resp := f.book(t, dateString(1), "09:00 AM")

	require.NoError(t, f.usecase.Cancel(context.Background(), resp.ID, f.patientID))
	err := f.usecase.Cancel(context.Background(), resp.ID, f.patientID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestListRoleScoping(t *testing.T) {
	f := newAppointmentFixture(t)

	mine := f.book(t, dateString(1), "09:00 AM")

	otherPatient := uuid.New()
	_, err := f.usecase.Book(context.Background(), otherPatient, &dto.BookAppointmentRequest{
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		Date:         dateString(1),
		TimeSlot:     "10:00 AM",
	})
	require.NoError(t, err)

	patientList, err := f.usecase.List(context.Background(), f.patientID, entity.RoleIDPatient)
	require.NoError(t, err)
	require.Equal(t, 1, patientList.Total)
	assert.Equal(t, mine.ID, patientList.Appointments[0].ID)

	doctorList, err := f.usecase.List(context.Background(), f.doctorID, entity.RoleIDDoctor)
	require.NoError(t, err)
	assert.Equal(t, 2, doctorList.Total)

	adminList, err := f.usecase.List(context.Background(), uuid.New(), entity.RoleIDAdmin)
	require.NoError(t, err)
	assert.Equal(t, 2, adminList.Total)
}
