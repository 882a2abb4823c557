package errors

import (
	"net/http"
	"time"
)

// Kind classifies an error so callers can react to it without parsing
// messages.
type Kind string

const (
	AuthFailed         Kind = "AUTH_FAILED"
	NetworkError       Kind = "NETWORK_ERROR"
	RateLimited        Kind = "RATE_LIMITED"
	InvalidResponse    Kind = "INVALID_RESPONSE"
	ParseError         Kind = "PARSE_ERROR"
	InvalidPath        Kind = "INVALID_PATH"
	FolderCreateFailed Kind = "FOLDER_CREATE_FAILED"
	FileReadFailed     Kind = "FILE_READ_FAILED"
	FileWriteFailed    Kind = "FILE_WRITE_FAILED"
	NotFound           Kind = "NOT_FOUND"
	InvalidURL         Kind = "INVALID_URL"
	InvalidID          Kind = "INVALID_ID"
	Unknown            Kind = "UNKNOWN_ERROR"
)

// DefaultRetryAfter is used when a rate limited response does not say how
// long to wait.
const DefaultRetryAfter = 60 * time.Second

// Code returns the HTTP status matching the kind.
func (k Kind) Code() int {
	switch k {
	case AuthFailed:
		return http.StatusUnauthorized
	case RateLimited:
		return http.StatusTooManyRequests
	case NetworkError, InvalidResponse, ParseError:
		return http.StatusBadGateway
	case InvalidPath, InvalidURL, InvalidID:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	}
	return DefaultCode
}

func BadRequest() ErrorEnricher { return WithCode(http.StatusBadRequest) }
func Conflict() ErrorEnricher   { return WithCode(http.StatusConflict) }

// KindOf returns the kind of err, or Unknown when err does not come from
// this package.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	myErr, ok := err.(Error)
	if !ok || myErr.Kind() == "" {
		return Unknown
	}
	return myErr.Kind()
}

// Is reports whether err has the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// RetryAfter returns the delay attached to a rate limited error, or
// DefaultRetryAfter if none was set.
func RetryAfter(err error) time.Duration {
	if myErr, ok := err.(*myError); ok && myErr.retryAfter > 0 {
		return myErr.retryAfter
	}
	return DefaultRetryAfter
}

// Path returns the path attached to err, if any.
func Path(err error) string {
	if myErr, ok := err.(*myError); ok {
		return myErr.path
	}
	return ""
}
