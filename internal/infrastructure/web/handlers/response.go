package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lending-metrics-api/internal/application/dto"
	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/finance"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"
)

// errorStatus maps a service error to its HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, entities.ErrUnsupportedCluster):
		return http.StatusBadRequest, "INVALID_PARAMETER"
	case errors.Is(err, interfaces.ErrLockTimeout):
		return http.StatusServiceUnavailable, "LOCK_TIMEOUT"
	case errors.Is(err, interfaces.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "CACHE_UNAVAILABLE"
	case errors.Is(err, interfaces.ErrPriceUnavailable):
		return http.StatusBadGateway, "PRICE_UNAVAILABLE"
	case errors.Is(err, interfaces.ErrUpstreamUnavailable), errors.Is(err, services.ErrHistoryUnavailable),
		errors.Is(err, services.ErrSettingsUnavailable):
		return http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, finance.ErrInvalidComputation):
		return http.StatusInternalServerError, "INVALID_COMPUTATION"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "REQUEST_CANCELED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeError logs err and writes it as an ErrorResponse
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorWithError(ctx, "Request failed", err, logging.Fields{
			"status_code": status,
			"error_code":  code,
		})
	} else {
		logging.Business().ValidationFailed(ctx, code, err.Error())
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(ctx, w, status, dto.NewErrorResponseWithCode(code, err.Error(), strconv.Itoa(status)))
}

// writeJSON writes a JSON response preserving the request context for logs
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.ErrorWithError(ctx, "Failed to encode JSON response", err, logging.Fields{
			"status_code": statusCode,
		})
	}
}

func writeText(ctx context.Context, w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write([]byte(body)); err != nil {
		logging.ErrorWithError(ctx, "Failed to write response", err, logging.Fields{
			"status_code": statusCode,
		})
	}
}
