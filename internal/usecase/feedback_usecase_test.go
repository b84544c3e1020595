package usecase

import (
	"context"
	"testing"

	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"
	"family-care-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFeedbackRepo struct {
	feedbacks map[uuid.UUID]*entity.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: map[uuid.UUID]*entity.Feedback{}}
}

func (f *fakeFeedbackRepo) Create(db *gorm.DB, feedback *entity.Feedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	stored := *feedback
	f.feedbacks[feedback.ID] = &stored
	return nil
}

func (f *fakeFeedbackRepo) FindByPatientAndAppointment(db *gorm.DB, patientID, appointmentID uuid.UUID) (*entity.Feedback, error) {
	for _, fb := range f.feedbacks {
		if fb.PatientID == patientID && fb.AppointmentID == appointmentID {
			found := *fb
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeFeedbackRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Feedback, error) {
	var out []entity.Feedback
	for _, fb := range f.feedbacks {
		if fb.PatientID == patientID {
			out = append(out, *fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) FindAll(db *gorm.DB, filter *repository.FeedbackFilter) ([]entity.Feedback, error) {
	var out []entity.Feedback
	for _, fb := range f.feedbacks {
		if filter != nil && filter.DoctorID != nil && fb.DoctorID != *filter.DoctorID {
			continue
		}
		if filter != nil && filter.DepartmentID != nil && fb.DepartmentID != *filter.DepartmentID {
			continue
		}
		out = append(out, *fb)
	}
	return out, nil
}

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) Record(db *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	f.actions = append(f.actions, action)
	return nil
}

type feedbackFixture struct {
	usecase         FeedbackUsecase
	feedbackRepo    *fakeFeedbackRepo
	appointmentRepo *fakeAppointmentRepo
	patientID       uuid.UUID
	doctorID        uuid.UUID
	departmentID    uuid.UUID
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()

	feedbackRepo := newFakeFeedbackRepo()
	appointmentRepo := newFakeAppointmentRepo()

	u := NewFeedbackUsecase(testDB(), testLogger(), feedbackRepo, appointmentRepo, &fakeAuditService{})

	return &feedbackFixture{
		usecase:         u,
		feedbackRepo:    feedbackRepo,
		appointmentRepo: appointmentRepo,
		patientID:       uuid.New(),
		doctorID:        uuid.New(),
		departmentID:    uuid.New(),
	}
}

func (f *feedbackFixture) addAppointment(t *testing.T, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		PatientID:    f.patientID,
		DoctorID:     f.doctorID,
		DepartmentID: f.departmentID,
		TimeSlot:     "09:00 AM",
		Status:       status,
	}
	require.NoError(t, f.appointmentRepo.Create(nil, appointment))
	return appointment
}

func TestCreateFeedback(t *testing.T) {
	f := newFeedbackFixture(t)
	appointment := f.addAppointment(t, entity.AppointmentStatusCompleted)

	resp, err := f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: appointment.ID,
		Rating:        5,
		Comment:       "Very helpful",
	})
	require.NoError(t, err)

	// Doctor and department come from the appointment, not the request.
	assert.Equal(t, appointment.ID, resp.AppointmentID)
	assert.Equal(t, 5, resp.Rating)

	stored := f.appointmentRepo.appointments[appointment.ID]
	assert.True(t, stored.FeedbackSubmitted)
}

func TestCreateFeedbackUnknownAppointment(t *testing.T) {
	f := newFeedbackFixture(t)

	_, err := f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: uuid.New(),
		Rating:        4,
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCreateFeedbackNotOwned(t *testing.T) {
	f := newFeedbackFixture(t)
	appointment := f.addAppointment(t, entity.AppointmentStatusCompleted)

	_, err := f.usecase.CreateFeedback(context.Background(), uuid.New(), &dto.CreateFeedbackRequest{
		AppointmentID: appointment.ID,
		Rating:        4,
	})
	assert.ErrorIs(t, err, ErrFeedbackNotOwned)
}

func TestCreateFeedbackRequiresCompletedAppointment(t *testing.T) {
	f := newFeedbackFixture(t)
	appointment := f.addAppointment(t, entity.AppointmentStatusBooked)

	_, err := f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: appointment.ID,
		Rating:        4,
	})
	assert.ErrorIs(t, err, ErrFeedbackAppointmentOpen)
}

func TestCreateFeedbackDuplicate(t *testing.T) {
	f := newFeedbackFixture(t)
	appointment := f.addAppointment(t, entity.AppointmentStatusCompleted)

	_, err := f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: appointment.ID,
		Rating:        5,
	})
	require.NoError(t, err)

	_, err = f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: appointment.ID,
		Rating:        1,
	})
	assert.ErrorIs(t, err, ErrFeedbackDuplicate)
}

func TestCreateFeedbackPerAppointment(t *testing.T) {
	f := newFeedbackFixture(t)

	// Two completed appointments with the same doctor: each can be rated.
	first := f.addAppointment(t, entity.AppointmentStatusCompleted)
	second := f.addAppointment(t, entity.AppointmentStatusCompleted)

	_, err := f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: first.ID,
		Rating:        5,
	})
	require.NoError(t, err)

	_, err = f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: second.ID,
		Rating:        3,
	})
	assert.NoError(t, err)
}

func TestListFeedbackFilters(t *testing.T) {
	f := newFeedbackFixture(t)

	appointment := f.addAppointment(t, entity.AppointmentStatusCompleted)
	_, err := f.usecase.CreateFeedback(context.Background(), f.patientID, &dto.CreateFeedbackRequest{
		AppointmentID: appointment.ID,
		Rating:        5,
	})
	require.NoError(t, err)

	all, err := f.usecase.List(context.Background(), &repository.FeedbackFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, all.Total)

	byDoctor, err := f.usecase.List(context.Background(), &repository.FeedbackFilter{DoctorID: &f.doctorID})
	require.NoError(t, err)
	assert.Equal(t, 1, byDoctor.Total)

	otherDoctor := uuid.New()
	none, err := f.usecase.List(context.Background(), &repository.FeedbackFilter{DoctorID: &otherDoctor})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)

	mine, err := f.usecase.ListMine(context.Background(), f.patientID)
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)
}
