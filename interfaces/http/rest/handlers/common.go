package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "glossary-backend/pkg/errors"

	"go.uber.org/zap"
)

// Response is the uniform envelope wrapping every glossary API response.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondSuccess(w http.ResponseWriter, logger *zap.Logger, status int, message string, data interface{}) {
	respondJSON(w, logger, status, Response{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string, data interface{}) {
	respondJSON(w, logger, status, Response{Success: false, Message: message, Data: data})
}

// respondAppError translates an operation-level error into the envelope with
// the matching status code. Validation errors carry their violation list as
// the error detail.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		var data interface{}
		if len(appErr.Violations) > 0 {
			data = appErr.Violations
		}
		respondError(w, logger, appErr.HTTPStatus, appErr.Message, data)
		return
	}

	logger.Error("Unhandled error", zap.Error(err))
	respondError(w, logger, http.StatusInternalServerError, "internal server error", nil)
}
