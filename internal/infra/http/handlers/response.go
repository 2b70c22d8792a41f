package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Details []usecase.ValidationError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps use case failures onto status codes. Technical causes
// are logged, never sent to the client.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var verrs usecase.ValidationErrors
	var domainErr *usecase.DomainError
	var techErr *usecase.TechnicalError

	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   usecase.CodeValidation,
			Message: "invalid lead submission",
			Details: verrs,
		})

	case errors.As(err, &domainErr):
		status := http.StatusBadRequest
		if domainErr.Code == usecase.CodeLeadNotFound {
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, domainErr.Code, domainErr.Message)

	case errors.As(err, &techErr):
		log.Printf("[HTTP] %s: %v", techErr.Code, techErr.Err)
		writeErrorResponse(w, http.StatusInternalServerError, techErr.Code, techErr.Message)

	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}
