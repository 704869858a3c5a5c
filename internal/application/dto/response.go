package dto

import (
	"time"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error" example:"INVALID_PARAMETER" validate:"required"`                      // Main error message
	Message string `json:"message,omitempty" example:"unsupported cluster: testnet, try mainnet-beta"` // Detailed error description
	Code    string `json:"code,omitempty" example:"400"`                                               // HTTP error code or internal code
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,unhealthy"` // Overall service status
	Version   string            `json:"version" example:"1.0.0"`                                                // Deployed API version
	Timestamp time.Time         `json:"timestamp" example:"2023-12-01T10:30:00Z" validate:"required"`           // When the health check was performed
	Services  map[string]string `json:"services,omitempty" example:"cache:healthy,database:healthy"`            // Individual service statuses
}

// VersionResponse is returned by /version
// @Description Deployed API version
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// LoanDistributionResponse is a histogram of loan sizes
// @Description Loan size histogram in USDH
type LoanDistributionResponse struct {
	From decimal.Decimal            `json:"from" swaggertype:"string" example:"400"`
	To   decimal.Decimal            `json:"to" swaggertype:"string" example:"2500"`
	Bins []entities.DistributionBin `json:"bins"`
}

// MaintenanceModeResponse is returned by /maintenance-mode
// @Description Whether the protocol front end should show maintenance
type MaintenanceModeResponse struct {
	Enabled bool `json:"enabled" example:"false"`
}

// BorrowingVersionResponse is returned by /borrowing-version
// @Description Current borrowing market state version
type BorrowingVersionResponse struct {
	Version int `json:"version" example:"1"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(error string, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
	}
}

// NewErrorResponseWithCode creates an error response with code
func NewErrorResponseWithCode(error string, message string, code string) *ErrorResponse {
	return &ErrorResponse{
		Error:   error,
		Message: message,
		Code:    code,
	}
}

// NewHealthResponse creates a health check response
func NewHealthResponse(status, version string, now time.Time, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Version:   version,
		Timestamp: now.UTC(),
		Services:  services,
	}
}
