package commons

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "sellerhub/internal/errors"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   any       `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type StockErrorDetails struct {
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch apperrors.Kind(err) {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "FORBIDDEN":
		return http.StatusForbidden
	case "VALIDATION_ERROR", "INSUFFICIENT_STOCK", "CONFIGURATION_ERROR":
		return http.StatusBadRequest
	case "CONFLICT":
		return http.StatusConflict
	case "TRANSIENT_STORE_FAILURE":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err as an ErrorResponse. Internal errors are logged and
// replaced by a generic message.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	status := StatusFor(err)
	response := ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      apperrors.Kind(err),
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		response.Details = ve.Details
	}
	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		response.Details = StockErrorDetails{
			ProductID:   ise.ProductID,
			ProductName: ise.ProductName,
			Available:   ise.Available,
			Requested:   ise.Requested,
		}
	}

	switch status {
	case http.StatusInternalServerError:
		logger.Error("unexpected error", zap.Error(err))
		response.Message = "an unexpected error occurred"
	case http.StatusServiceUnavailable:
		logger.Warn("transient store failure", zap.Error(err))
		response.Message = "the store is busy, try again"
	}

	WriteJSON(w, status, response, logger)
}

func WriteValidationError(w http.ResponseWriter, traceID string, logger *zap.Logger, message string, details ...apperrors.ValidationDetail) {
	WriteError(w, traceID, apperrors.NewValidationError(message, details...), logger)
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
