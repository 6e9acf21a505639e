package dto

import (
	"github.com/siamerp/finpost/internal/core/domain"
)

// UpsertDeterminationRequest creates or replaces a GL determination entry.
type UpsertDeterminationRequest struct {
	ProfileName string `json:"profileName"`
	ProcessKey  string `json:"processKey" binding:"required"`
	AccountID   string `json:"accountID" binding:"required"`
	Description string `json:"description"`
}

// DeterminationResponse is the API shape of a GL determination entry.
type DeterminationResponse struct {
	DeterminationID string `json:"determinationID"`
	ProfileName     string `json:"profileName"`
	ProcessKey      string `json:"processKey"`
	AccountID       string `json:"accountID"`
	Description     string `json:"description,omitempty"`
}

// ResolveAccountResponse is the result of resolving a process key.
type ResolveAccountResponse struct {
	ProcessKey  string `json:"processKey"`
	ProfileName string `json:"profileName"`
	AccountID   string `json:"accountID"`
}

// ToDeterminationResponse converts a domain.GLDetermination to its API shape.
func ToDeterminationResponse(det *domain.GLDetermination) DeterminationResponse {
	return DeterminationResponse{
		DeterminationID: det.DeterminationID,
		ProfileName:     det.ProfileName,
		ProcessKey:      det.ProcessKey,
		AccountID:       det.AccountID,
		Description:     det.Description,
	}
}

// ToDeterminationResponses converts determinations to API shapes.
func ToDeterminationResponses(dets []domain.GLDetermination) []DeterminationResponse {
	responses := make([]DeterminationResponse, len(dets))
	for i := range dets {
		responses[i] = ToDeterminationResponse(&dets[i])
	}
	return responses
}
