package handler

import (
	"encoding/json"
	"net/http"

	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/delivery/http/middleware"
	"family-care-api/internal/usecase"
	"family-care-api/pkg/response"
	"family-care-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type EmergencyHandler struct {
	emergencyUsecase usecase.EmergencyUsecase
	validator        *validator.CustomValidator
}

func NewEmergencyHandler(emergencyUsecase usecase.EmergencyUsecase, validator *validator.CustomValidator) *EmergencyHandler {
	return &EmergencyHandler{
		emergencyUsecase: emergencyUsecase,
		validator:        validator,
	}
}

// Submit handles emergency request submission, open to guests
// @Summary Submit an emergency request
// @Description Submit an emergency request; no authentication required
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body dto.SubmitEmergencyRequest true "Submit Emergency Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /emergency [post]
func (h *EmergencyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitEmergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	// Attach the caller when a token was presented; guests submit anonymously.
	var patientID *uuid.UUID
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		patientID = &userID
	}

	emergency, err := h.emergencyUsecase.Submit(r.Context(), patientID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to submit emergency request")
		return
	}

	response.Success(w, http.StatusCreated, "Emergency request submitted successfully", emergency)
}

// List lists all emergency requests (admin only)
// @Summary List emergency requests
// @Tags Emergency
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/emergency [get]
func (h *EmergencyHandler) List(w http.ResponseWriter, r *http.Request) {
	emergencies, err := h.emergencyUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get emergency requests")
		return
	}

	response.Success(w, http.StatusOK, "Emergency requests retrieved successfully", emergencies)
}

// UpdateStatus updates the status of an emergency request (admin only)
// @Summary Update an emergency request
// @Tags Emergency
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Emergency Request ID"
// @Param request body dto.UpdateEmergencyRequest true "Update Emergency Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/emergency/{id} [put]
func (h *EmergencyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid emergency request ID")
		return
	}

	var req dto.UpdateEmergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	emergency, err := h.emergencyUsecase.UpdateStatus(r.Context(), requestID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmergencyNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrInvalidEmergencyStatus:
			response.Error(w, http.StatusBadRequest, response.CodeValidationError, err.Error())
		default:
			response.InternalServerError(w, "Failed to update emergency request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Emergency request updated successfully", emergency)
}
