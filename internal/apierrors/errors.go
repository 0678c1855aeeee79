package apierrors

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes returned in ErrorResponse.Code
const (
	CodeUnauthorized         = "unauthorized"
	CodeInvalidSignature     = "invalid_signature"
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidReferralCode  = "invalid_referral_code"
	CodeInvalidToken         = "invalid_token"
	CodeReferralCodeMismatch = "referral_code_mismatch"
	CodeRateLimited          = "rate_limited"
	CodeTokenNotFound        = "token_not_found"
	CodeReferralNotFound     = "referral_not_found"
	CodeTokenExpired         = "token_expired"
	CodeIdempotencyConflict  = "idempotency_conflict"
	CodeVendorUnavailable    = "vendor_unavailable"
	CodeInternalError        = "internal_error"
	CodePayloadTooLarge      = "payload_too_large"
)

// APIError is an error that knows how it should be presented to clients.
// Err holds the internal cause and is never serialized.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

func BadRequest(code, message string) *APIError {
	return newAPIError(http.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *APIError {
	return newAPIError(http.StatusUnauthorized, code, message)
}

func Forbidden(code, message string) *APIError {
	return newAPIError(http.StatusForbidden, code, message)
}

func NotFound(code, message string) *APIError {
	return newAPIError(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *APIError {
	return newAPIError(http.StatusConflict, code, message)
}

func Gone(code, message string) *APIError {
	return newAPIError(http.StatusGone, code, message)
}

func PayloadTooLarge(code, message string) *APIError {
	return newAPIError(http.StatusRequestEntityTooLarge, code, message)
}

func TooManyRequests(code, message string) *APIError {
	return newAPIError(http.StatusTooManyRequests, code, message)
}

// ServiceUnavailable keeps the upstream cause for logging only.
func ServiceUnavailable(code, message string, internalErr error) *APIError {
	apiErr := newAPIError(http.StatusServiceUnavailable, code, message)
	apiErr.Err = internalErr
	return apiErr
}

// InternalError returns a sanitized 500 - never exposes internal details
func InternalError(internalErr error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        internalErr,
	}
}
