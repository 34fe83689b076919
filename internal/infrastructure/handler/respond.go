package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
)

// statusForError maps the typed error kinds onto protocol-level statuses:
// invalid input to 4xx, provider trouble to 502/503.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, apperrors.ErrInvalidDate):
		return http.StatusBadRequest, "Invalid date"
	case errors.Is(err, apperrors.ErrUnknownCurrency):
		return http.StatusBadRequest, "Unknown currency"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, apperrors.ErrNoDataAvailable):
		return http.StatusServiceUnavailable, "No rate data available"
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		return http.StatusBadGateway, "Rate provider unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// sendError translates a service error into a standardized error response
func sendError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	status, message := statusForError(err)

	if status >= http.StatusInternalServerError {
		log.Error("Request failed", map[string]interface{}{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		})
	} else {
		log.Warn("Request rejected", map[string]interface{}{
			"request_id": requestID,
			"status":     status,
			"error":      err.Error(),
		})
	}

	sendJSON(w, status, ErrorResponse{
		Error:       message,
		Status:      status,
		Description: err.Error(),
		RequestID:   requestID,
	})
}

// sendBadRequest reports a malformed request that never reached a service
func sendBadRequest(w http.ResponseWriter, log logger.Logger, description, requestID string) {
	log.Warn("Bad request", map[string]interface{}{
		"request_id":  requestID,
		"description": description,
	})

	sendJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:       "Invalid request",
		Status:      http.StatusBadRequest,
		Description: description,
		RequestID:   requestID,
	})
}
