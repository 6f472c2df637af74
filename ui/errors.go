package ui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "modelbench/internal/errors"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

var statusByCode = map[string]int{
	apperrors.CodeInvalidInput:      http.StatusBadRequest,
	apperrors.CodeValidationError:   http.StatusBadRequest,
	apperrors.CodeTooLarge:          http.StatusRequestEntityTooLarge,
	apperrors.CodeUnsupportedFormat: http.StatusUnsupportedMediaType,
	apperrors.CodeDecodeError:       http.StatusUnprocessableEntity,
	apperrors.CodeNotFound:          http.StatusNotFound,
	apperrors.CodeUnauthorized:      http.StatusUnauthorized,
	apperrors.CodeConflict:          http.StatusConflict,
	apperrors.CodeExternalService:   http.StatusBadGateway,
}

// respondError logs err and writes it as JSON with a status derived from
// its code
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.Classify(err)
	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}

	log := s.logger.FromContext(r.Context()).With("path", r.URL.Path, "status", status, "code", appErr.Code, "error", err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Warn("request rejected")
	}

	message := appErr.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: appErr.Code, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
