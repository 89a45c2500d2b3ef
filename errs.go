package aegis

import (
	"errors"
	"fmt"
)

var (
	ErrAPIKeyRequired = errors.New("API key is required")

	// Sentinel errors for errors.Is() checks against classified API failures.
	ErrAuthentication = errors.New("invalid or expired API key")
	ErrValidation     = errors.New("request validation failed")
	ErrNotFound       = errors.New("resource not found")
	ErrRateLimited    = errors.New("rate limit exceeded")
	ErrQuotaExceeded  = errors.New("monthly quota exceeded")
	ErrTierAccess     = errors.New("not available on the current plan")
)

// ErrorKind is the closed set of failure categories the SDK reports. The
// kind, not the underlying error type, decides whether a request is retried:
// fatal kinds represent caller-correctable conditions where another attempt
// cannot succeed, everything else is presumed transient.
type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindRateLimit      ErrorKind = "rate_limit"
	ErrorKindQuotaExceeded  ErrorKind = "quota_exceeded"
	ErrorKindTierAccess     ErrorKind = "tier_access"
	ErrorKindServer         ErrorKind = "server"
	ErrorKindTimeout        ErrorKind = "timeout"
	ErrorKindNetwork        ErrorKind = "network"
	ErrorKindUnknown        ErrorKind = "unknown"
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	return string(k)
}

// Fatal reports whether the kind must never be retried.
func (k ErrorKind) Fatal() bool {
	switch k {
	case ErrorKindAuthentication, ErrorKindValidation, ErrorKindNotFound,
		ErrorKindQuotaExceeded, ErrorKindTierAccess:
		return true
	}
	return false
}

// classifyStatus maps an HTTP status code to an ErrorKind.
func classifyStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == 400:
		return ErrorKindValidation
	case statusCode == 401:
		return ErrorKindAuthentication
	case statusCode == 402:
		return ErrorKindQuotaExceeded
	case statusCode == 403:
		return ErrorKindTierAccess
	case statusCode == 404:
		return ErrorKindNotFound
	case statusCode == 429:
		return ErrorKindRateLimit
	case statusCode >= 500:
		return ErrorKindServer
	}
	return ErrorKindUnknown
}

// defaultErrorMessage is used when the error response body carries no
// readable message.
const defaultErrorMessage = "Request failed"

// APIError is the error type for every failed request. Kind carries the
// classification, StatusCode the HTTP status for server responses (0 for
// connection-level failures), and Details any structured payload the service
// attached to the error.
//
// APIError supports errors.Is against the package sentinel errors:
//
//	if errors.Is(err, aegis.ErrRateLimited) {
//		// we already retried; back off at the application level
//	}
type APIError struct {
	// Kind is the failure category.
	Kind ErrorKind
	// StatusCode is the HTTP status, when one was received.
	StatusCode int
	// Message is the human-readable message, either service-reported or a
	// generic default.
	Message string
	// Details is the optional structured detail from the error body. Null
	// when the service sent none.
	Details Value
	// RequestID is the x-request-id the service assigned, if any.
	RequestID string
	// Err is the underlying transport error for network/timeout kinds.
	Err error
}

// Error returns a string representation of the error.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("aegis: %s error: %s", e.Kind, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("aegis: %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.RequestID != "" {
		msg += fmt.Sprintf(" (request_id: %s)", e.RequestID)
	}
	return msg
}

// Unwrap returns the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the executor considers this failure transient.
func (e *APIError) Retryable() bool {
	return !e.Kind.Fatal()
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.Kind {
	case ErrorKindAuthentication:
		return target == ErrAuthentication
	case ErrorKindValidation:
		return target == ErrValidation
	case ErrorKindNotFound:
		return target == ErrNotFound
	case ErrorKindRateLimit:
		return target == ErrRateLimited
	case ErrorKindQuotaExceeded:
		return target == ErrQuotaExceeded
	case ErrorKindTierAccess:
		return target == ErrTierAccess
	}
	return false
}

// classifyResponse builds the APIError for a non-2xx response. The body is
// expected to follow the service's error contract, {"error": {"message":
// ..., "details": ...}}, but a body that fails to parse is swallowed and the
// error is raised with the generic message.
func classifyResponse(statusCode int, body string, requestID string) *APIError {
	apiErr := &APIError{
		Kind:       classifyStatus(statusCode),
		StatusCode: statusCode,
		Message:    defaultErrorMessage,
		RequestID:  requestID,
	}

	if errObj := Parse(body).Object().ObjectField("error"); errObj != nil {
		if msg, ok := errObj.Get("message"); ok && msg.Kind() == ValueString {
			apiErr.Message = msg.Str()
		}
		if details, ok := errObj.Get("details"); ok {
			apiErr.Details = details
		}
	}
	return apiErr
}
