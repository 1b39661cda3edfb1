package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrSecretNotFound      = errors.New("secret not found")
)

type FetchErrorKind string

const (
	FetchErrorNetwork    FetchErrorKind = "network"
	FetchErrorHTTPStatus FetchErrorKind = "http_status"
	FetchErrorDecode     FetchErrorKind = "decode"
	FetchErrorSchema     FetchErrorKind = "schema"
)

// FetchError is the only error kind returned by a profile source.
type FetchError struct {
	Kind       FetchErrorKind
	Endpoint   string
	StatusCode int
	MissingKey string
	Detail     string
	Err        error
}

func NewNetworkError(endpoint string, err error) *FetchError {
	return &FetchError{Kind: FetchErrorNetwork, Endpoint: endpoint, Err: err}
}

func NewHTTPStatusError(endpoint string, statusCode int, detail string) *FetchError {
	return &FetchError{Kind: FetchErrorHTTPStatus, Endpoint: endpoint, StatusCode: statusCode, Detail: detail}
}

func NewDecodeError(endpoint string, err error) *FetchError {
	return &FetchError{Kind: FetchErrorDecode, Endpoint: endpoint, Err: err}
}

func NewSchemaError(endpoint string, missingKey string, detail string) *FetchError {
	return &FetchError{Kind: FetchErrorSchema, Endpoint: endpoint, MissingKey: missingKey, Detail: detail}
}

func (e *FetchError) Error() string {
	var msg string
	switch e.Kind {
	case FetchErrorNetwork:
		msg = fmt.Sprintf("network error: %v", e.Err)
	case FetchErrorHTTPStatus:
		msg = fmt.Sprintf("status %d", e.StatusCode)
	case FetchErrorDecode:
		msg = fmt.Sprintf("decode response: %v", e.Err)
	case FetchErrorSchema:
		msg = fmt.Sprintf("missing key %q", e.MissingKey)
	default:
		msg = fmt.Sprintf("unknown fetch error kind %q", e.Kind)
	}

	if e.Detail != "" && e.Kind != FetchErrorNetwork && e.Kind != FetchErrorDecode {
		msg += ": " + e.Detail
	}
	if e.Endpoint != "" {
		msg = e.Endpoint + ": " + msg
	}

	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func IsFetchErrorKind(err error, kind FetchErrorKind) bool {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}

	return fetchErr.Kind == kind
}
