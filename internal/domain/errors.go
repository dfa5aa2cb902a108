package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrUnavailable  = errors.New("service unavailable")
)

// CodedError is a client-visible failure with a stable wire code. The code is
// what the frontend switches on to render a precise message; Status is the
// HTTP status the boundary reports it with.
type CodedError struct {
	Code   string
	Status int
	// Domain carries the expected email domain for email_domain_invalid.
	Domain string
	base   error
}

func (e *CodedError) Error() string { return e.Code }
func (e *CodedError) Unwrap() error { return e.base }

var (
	ErrMissingFields      = &CodedError{Code: "missing_fields", Status: 400, base: ErrBadRequest}
	ErrCollegeNotFound    = &CodedError{Code: "college_not_found", Status: 404, base: ErrNotFound}
	ErrCollegeStore       = &CodedError{Code: "db_error_college", Status: 500, base: ErrUnavailable}
	ErrUserStore          = &CodedError{Code: "db_error_user", Status: 500, base: ErrUnavailable}
	ErrEmailSendFailed    = &CodedError{Code: "email_send_failed", Status: 500, base: ErrUnavailable}
	ErrEmailNotConfigured = &CodedError{Code: "email_not_configured", Status: 500, base: ErrUnavailable}
	ErrNoOTP              = &CodedError{Code: "no_otp", Status: 404, base: ErrNotFound}
	ErrOTPInvalid         = &CodedError{Code: "otp_invalid", Status: 400, base: ErrBadRequest}
	ErrOTPExpired         = &CodedError{Code: "otp_expired", Status: 400, base: ErrBadRequest}
	ErrJWTSecretMissing   = &CodedError{Code: "jwt_secret_missing", Status: 500, base: ErrUnavailable}
	ErrInvalidType        = &CodedError{Code: "invalid_type", Status: 400, base: ErrBadRequest}
	ErrInvalidID          = &CodedError{Code: "invalid_id", Status: 400, base: ErrBadRequest}
	ErrNoFile             = &CodedError{Code: "no_file", Status: 400, base: ErrBadRequest}
	ErrUploadFailed       = &CodedError{Code: "upload_failed", Status: 500, base: ErrUnavailable}
	ErrUploadUnconfigured = &CodedError{Code: "upload_not_configured", Status: 500, base: ErrUnavailable}
	ErrServer             = &CodedError{Code: "server_error", Status: 500, base: ErrUnavailable}
)

// NewDomainMismatch reports that the submitted email is not on the college's
// registered domain. The expected domain rides along for the error message.
func NewDomainMismatch(domain string) *CodedError {
	return &CodedError{Code: "email_domain_invalid", Status: 400, Domain: domain, base: ErrBadRequest}
}
