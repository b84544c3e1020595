package converter

import (
	"family-care-api/internal/delivery/dto"
	"family-care-api/internal/domain/entity"
)

// EmergencyToResponse converts an EmergencyRequest entity to EmergencyResponse DTO
func EmergencyToResponse(request *entity.EmergencyRequest) *dto.EmergencyResponse {
	if request == nil {
		return nil
	}

	response := &dto.EmergencyResponse{
		ID:        request.ID,
		PatientID: request.PatientID,
		Name:      request.Name,
		Phone:     request.Phone,
		Location:  request.Location,
		Type:      string(request.Type),
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
		UpdatedAt: request.UpdatedAt,
	}
	if request.Patient != nil {
		response.Patient = UserToResponse(request.Patient)
	}

	return response
}

// EmergenciesToResponses converts a slice of EmergencyRequest entities to slice of EmergencyResponse DTOs
func EmergenciesToResponses(requests []entity.EmergencyRequest) []dto.EmergencyResponse {
	responses := make([]dto.EmergencyResponse, len(requests))
	for i := range requests {
		responses[i] = *EmergencyToResponse(&requests[i])
	}
	return responses
}
