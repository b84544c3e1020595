package handler

import (
	"encoding/json"
	"net/http"

	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/delivery/http/middleware"
	"family-care-api/internal/domain/repository"
	"family-care-api/internal/usecase"
	"family-care-api/pkg/response"
	"family-care-api/pkg/validator"

	"github.com/google/uuid"
)

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

// CreateFeedback handles feedback submission for a completed appointment
// @Summary Submit feedback
// @Description Submit a rating and comment for a completed appointment, once per appointment
// @Tags Feedback
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Create Feedback Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /feedback [post]
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.CreateFeedback(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrFeedbackNotOwned:
			response.Forbidden(w, err.Error())
		case usecase.ErrFeedbackAppointmentOpen:
			response.Error(w, http.StatusConflict, response.CodeInvalidState, err.Error())
		case usecase.ErrFeedbackDuplicate:
			response.Error(w, http.StatusConflict, response.CodeConflict, err.Error())
		default:
			response.InternalServerError(w, "Failed to submit feedback")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Feedback submitted successfully", feedback)
}

// ListMyFeedback lists feedback submitted by the authenticated patient
// @Summary List my feedback
// @Tags Feedback
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /feedback/mine [get]
func (h *FeedbackHandler) ListMyFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	feedbacks, err := h.feedbackUsecase.ListMine(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedbacks)
}

// ListFeedback lists feedback, optionally filtered by doctor or department
// @Summary List feedback
// @Tags Feedback
// @Produce json
// @Param doctor query string false "Doctor ID filter"
// @Param department query string false "Department ID filter"
// @Success 200 {object} response.Response
// @Router /feedback [get]
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	filter := &repository.FeedbackFilter{}

	if raw := r.URL.Query().Get("doctor"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid doctor ID")
			return
		}
		filter.DoctorID = &id
	}
	if raw := r.URL.Query().Get("department"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid department ID")
			return
		}
		filter.DepartmentID = &id
	}

	feedbacks, err := h.feedbackUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedbacks)
}
