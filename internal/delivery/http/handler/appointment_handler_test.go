package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/delivery/http/middleware"
	"family-care-api/internal/domain/entity"
	"family-care-api/internal/usecase"
	"family-care-api/pkg/response"
	"family-care-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAppointmentUsecase struct {
	bookErr       error
	rescheduleErr error
	updateErr     error
	cancelErr     error
	booked        *dto.AppointmentResponse
}

func (s *stubAppointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return s.booked, nil
}

func (s *stubAppointmentUsecase) Reschedule(ctx context.Context, appointmentID, patientID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.rescheduleErr != nil {
		return nil, s.rescheduleErr
	}
	return s.booked, nil
}

func (s *stubAppointmentUsecase) UpdateStatus(ctx context.Context, appointmentID, actorID uuid.UUID, roleID int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.booked, nil
}

func (s *stubAppointmentUsecase) Cancel(ctx context.Context, appointmentID, patientID uuid.UUID) error {
	return s.cancelErr
}

func (s *stubAppointmentUsecase) List(ctx context.Context, userID uuid.UUID, roleID int) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func authedRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)

	ctx := context.WithValue(r.Context(), middleware.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, middleware.RoleIDKey, entity.RoleIDPatient)
	return r.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	return envelope
}

func bookRequestBody() *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		DoctorID:     uuid.New(),
		DepartmentID: uuid.New(),
		Date:         "2027-03-15",
		TimeSlot:     "09:00 AM",
	}
}

func TestBookHandler(t *testing.T) {
	stub := &stubAppointmentUsecase{booked: &dto.AppointmentResponse{ID: uuid.New(), Status: "booked"}}
	h := NewAppointmentHandler(stub, validator.NewValidator())

	w := httptest.NewRecorder()
	h.Book(w, authedRequest(t, http.MethodPost, "/api/v1/appointments", bookRequestBody()))

	assert.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
}

func TestBookHandlerValidation(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	w := httptest.NewRecorder()
	h.Book(w, authedRequest(t, http.MethodPost, "/api/v1/appointments", &dto.BookAppointmentRequest{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
	assert.Equal(t, response.CodeValidationError, envelope.Code)
}

func TestBookHandlerErrorCodes(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{usecase.ErrPastDate, http.StatusBadRequest, response.CodePastDate},
		{usecase.ErrSlotConflict, http.StatusBadRequest, response.CodeSlotConflict},
		{usecase.ErrDoctorNotFound, http.StatusNotFound, response.CodeNotFound},
		{usecase.ErrDepartmentNotFound, http.StatusNotFound, response.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{bookErr: tt.err}, validator.NewValidator())

			w := httptest.NewRecorder()
			h.Book(w, authedRequest(t, http.MethodPost, "/api/v1/appointments", bookRequestBody()))

			assert.Equal(t, tt.wantStatus, w.Code)
			envelope := decodeEnvelope(t, w)
			assert.False(t, envelope.Success)
			assert.Equal(t, tt.wantCode, envelope.Code)
		})
	}
}

func TestBookHandlerRequiresAuthContext(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(bookRequestBody()))
	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", &buf)

	w := httptest.NewRecorder()
	h.Book(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateStatusHandlerInvalidState(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{updateErr: usecase.ErrInvalidState}, validator.NewValidator())

	id := uuid.New()
	r := authedRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/appointments/%s", id), &dto.UpdateAppointmentRequest{Status: "completed"})
	r = mux.SetURLVars(r, map[string]string{"id": id.String()})

	w := httptest.NewRecorder()
	h.UpdateStatus(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, response.CodeInvalidState, envelope.Code)
}

func TestRescheduleHandlerSlotConflict(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{rescheduleErr: usecase.ErrSlotConflict}, validator.NewValidator())

	id := uuid.New()
	r := authedRequest(t, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%s/reschedule", id), &dto.RescheduleAppointmentRequest{Date: "2027-03-16", TimeSlot: "10:00 AM"})
	r = mux.SetURLVars(r, map[string]string{"id": id.String()})

	w := httptest.NewRecorder()
	h.Reschedule(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, response.CodeSlotConflict, envelope.Code)
}

func TestCancelHandlerInvalidID(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	r := authedRequest(t, http.MethodDelete, "/api/v1/appointments/not-a-uuid", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "not-a-uuid"})

	w := httptest.NewRecorder()
	h.Cancel(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRescheduleHandlerForbidden(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{rescheduleErr: usecase.ErrAppointmentNotOwned}, validator.NewValidator())

	id := uuid.New()
	r := authedRequest(t, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%s/reschedule", id), &dto.RescheduleAppointmentRequest{Date: "2027-03-16", TimeSlot: "10:00 AM"})
	r = mux.SetURLVars(r, map[string]string{"id": id.String()})

	w := httptest.NewRecorder()
	h.Reschedule(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, response.CodeForbidden, envelope.Code)
}
