package apierrors

import (
	"errors"
	"net/http"

	referralProcessor "referral-server/internal/referral/processor"
	"referral-server/internal/store"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Validation errors
	case errors.Is(err, store.ErrInvalidReferralCode):
		return BadRequest(CodeInvalidReferralCode, "Referral code must be 4-10 letters or digits.")

	case errors.Is(err, store.ErrInvalidToken):
		return BadRequest(CodeInvalidToken, "Referral token is invalid.")

	case errors.Is(err, store.ErrInvalidChannel):
		return BadRequest(CodeInvalidRequest, "Unknown channel.")

	case errors.Is(err, store.ErrInvalidStatus):
		return BadRequest(CodeInvalidRequest, "Unknown status.")

	case errors.Is(err, referralProcessor.ErrUnknownEventType):
		return BadRequest(CodeInvalidRequest, "Unknown event type.")

	// Referral processor errors
	case errors.Is(err, referralProcessor.ErrUnauthorized):
		return Unauthorized(CodeUnauthorized, "Missing current user.")

	case errors.Is(err, referralProcessor.ErrReferralCodeMismatch):
		return Forbidden(CodeReferralCodeMismatch, "Referral code does not belong to the current user.")

	case errors.Is(err, referralProcessor.ErrRateLimited):
		return TooManyRequests(CodeRateLimited, "Too many requests. Please try again later.")

	case errors.Is(err, referralProcessor.ErrTokenNotFound):
		return NotFound(CodeTokenNotFound, "Referral token was not found.")

	case errors.Is(err, referralProcessor.ErrTokenExpired):
		return Gone(CodeTokenExpired, "Referral token is expired.")

	case errors.Is(err, referralProcessor.ErrIdempotencyConflict):
		return Conflict(CodeIdempotencyConflict, "Idempotency key was already used with a different request.")

	case errors.Is(err, referralProcessor.ErrVendorUnavailable):
		return ServiceUnavailable(CodeVendorUnavailable, "Deep link service is temporarily unavailable. Please try again later.", err)

	case errors.Is(err, referralProcessor.ErrProfileUnavailable):
		return ServiceUnavailable(CodeVendorUnavailable, "Profile service is temporarily unavailable. Please try again later.", err)

	// Data consistency fault: a link exists without its referral.
	case errors.Is(err, referralProcessor.ErrReferralNotFound):
		return &APIError{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeReferralNotFound,
			Message:    "Referral was not found.",
			Err:        err,
		}

	default:
		return InternalError(err)
	}
}
