package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeInvalidCredentials is used when login credentials do not match
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	// ErrCodeEmailNotVerified is used when login requires a verified address
	ErrCodeEmailNotVerified = "ERR_EMAIL_NOT_VERIFIED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Plan entitlement error codes
const (
	// ErrCodePlanLimit is used when the current plan's quota is exhausted
	ErrCodePlanLimit = "ERR_PLAN_LIMIT"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Upstream provider error codes
const (
	// ErrCodeUpstream is used when a third-party provider call fails
	ErrCodeUpstream = "ERR_UPSTREAM"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeEmailNotVerified:   http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Plan entitlement errors -> 403 Forbidden
	ErrCodePlanLimit: http.StatusForbidden,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Upstream provider errors -> 502 Bad Gateway
	ErrCodeUpstream: http.StatusBadGateway,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized
// wire codes. Domain services speak in their own vocabulary; the HTTP
// layer translates at the edge.
var DomainErrorCodeMapping = map[string]string{
	// Identity
	"EMAIL_TAKEN":         ErrCodeAlreadyExists,
	"INVALID_EMAIL":       ErrCodeValidationFormat,
	"WEAK_PASSWORD":       ErrCodeValidation,
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"EMAIL_NOT_VERIFIED":  ErrCodeEmailNotVerified,
	"INVALID_TOKEN":       ErrCodeBadRequest,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":   ErrCodeTokenInvalid,
	"TOKEN_ERROR":         ErrCodeTokenInvalid,
	"UNAUTHORIZED":        ErrCodeUnauthorized,

	// Forecasting
	"PROJECT_NOT_FOUND":      ErrCodeNotFound,
	"PNL_NOT_FOUND":          ErrCodeNotFound,
	"BALANCE_NOT_FOUND":      ErrCodeNotFound,
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_NAME":           ErrCodeValidation,
	"INVALID_YEAR":           ErrCodeValidation,
	"INVALID_FORECAST_YEARS": ErrCodeValidation,
	"INVALID_FIELD":          ErrCodeValidation,

	// Billing
	"LIMIT_PROJECTS":         ErrCodePlanLimit,
	"LIMIT_FORECAST_YEARS":   ErrCodePlanLimit,
	"NO_STRIPE_CUSTOMER":     ErrCodeBadRequest,
	"INVALID_SIGNATURE":      ErrCodeUnauthorized,
	"BILLING_PROVIDER_ERROR": ErrCodeUpstream,

	// Mail
	"MAIL_FAILED": ErrCodeUpstream,

	// Generic
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"FORBIDDEN":            ErrCodeForbidden,
	"INVALID_STATE":        ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
