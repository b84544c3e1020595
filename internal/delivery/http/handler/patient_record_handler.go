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

type PatientRecordHandler struct {
	recordUsecase usecase.PatientRecordUsecase
	validator     *validator.CustomValidator
}

func NewPatientRecordHandler(recordUsecase usecase.PatientRecordUsecase, validator *validator.CustomValidator) *PatientRecordHandler {
	return &PatientRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

// CreateRecord opens a medical record for a patient (staff only)
// @Summary Create a patient record
// @Tags PatientRecords
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRecordRequest true "Create Patient Record Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient-records [post]
func (h *PatientRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePatientRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.CreateRecord(r.Context(), userID, &req)
	if err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Patient record created successfully", record)
}

// ListRecords lists records visible to the caller
// @Summary List patient records
// @Description Staff see all records, patients only their own
// @Tags PatientRecords
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient-records [get]
func (h *PatientRecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	records, err := h.recordUsecase.ListRecords(r.Context(), userID, roleID)
	if err != nil {
		response.InternalServerError(w, "Failed to get patient records")
		return
	}

	response.Success(w, http.StatusOK, "Patient records retrieved successfully", records)
}

// GetRecord fetches a single record
// @Summary Get a patient record
// @Tags PatientRecords
// @Security BearerAuth
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient-records/{id} [get]
func (h *PatientRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := h.recordID(w, r)
	if !ok {
		return
	}

	record, err := h.recordUsecase.GetRecord(r.Context(), recordID, userID, roleID)
	if err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient record retrieved successfully", record)
}

// UpdateRecord replaces the history and notes of a record (staff only)
// @Summary Update a patient record
// @Tags PatientRecords
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.UpdatePatientRecordRequest true "Update Patient Record Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient-records/{id} [put]
func (h *PatientRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := h.recordID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePatientRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.UpdateRecord(r.Context(), recordID, userID, &req)
	if err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient record updated successfully", record)
}

// AddPrescription appends a prescription entry to a record (staff only)
// @Summary Add a prescription
// @Tags PatientRecords
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.AddPrescriptionRequest true "Add Prescription Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient-records/{id}/prescriptions [post]
func (h *PatientRecordHandler) AddPrescription(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := h.recordID(w, r)
	if !ok {
		return
	}

	var req dto.AddPrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.AddPrescription(r.Context(), recordID, userID, &req)
	if err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Prescription added successfully", record)
}

// AddLabReport appends a lab report entry to a record (staff only)
// @Summary Add a lab report
// @Tags PatientRecords
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.AddLabReportRequest true "Add Lab Report Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient-records/{id}/lab-reports [post]
func (h *PatientRecordHandler) AddLabReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := h.recordID(w, r)
	if !ok {
		return
	}

	var req dto.AddLabReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.AddLabReport(r.Context(), recordID, userID, &req)
	if err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Lab report added successfully", record)
}

func (h *PatientRecordHandler) recordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid record ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *PatientRecordHandler) writeRecordError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrPatientNotFound, usecase.ErrPatientRecordNotFound:
		response.Error(w, http.StatusNotFound, response.CodeNotFound, err.Error())
	case usecase.ErrPatientRecordNotOwned:
		response.Error(w, http.StatusForbidden, response.CodeForbidden, err.Error())
	default:
		response.InternalServerError(w, "Failed to process patient record")
	}
}
