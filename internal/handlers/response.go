package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Detail: message,
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	resp := errorResp(code, message, r)
	resp.Error.Fields = fields
	return resp
}

// handleServiceError maps service errors to responses. Anything unrecognised
// is reported as a 500 carrying the error text.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *services.ValidationError
	var uErr *services.UpstreamError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", vErr.Error(), vErr.Fields, r))
	case errors.As(err, &uErr):
		writeJSON(w, http.StatusInternalServerError, errorResp("UPSTREAM_ERROR", uErr.Error(), r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", err.Error(), r))
	}
}
