// Package errors defines typed web errors and their HTTP mapping.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
)

// Kind classifies failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnavailable  Kind = "unavailable"
)

// Error is a typed web failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e Error) Unwrap() error {
	return e.Err
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// FromBackend classifies a backend API failure and attaches key.
func FromBackend(err error, key string) error {
	if err == nil {
		return nil
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		return err
	}
	return Error{Kind: backendKind(err), Key: strings.TrimSpace(key), Err: err}
}

func backendKind(err error) Kind {
	switch code := apiclient.StatusCode(err); {
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusConflict:
		return KindConflict
	case code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout:
		return KindInvalidInput
	case code >= 500, code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return KindUnavailable
	}
	if stderrors.Is(err, apiclient.ErrCircuitOpen) || apiclient.IsTransient(err) {
		return KindUnavailable
	}
	return KindUnknown
}

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// LocalizationKey returns the localization key carried by err, if any.
func LocalizationKey(err error) string {
	var appErr Error
	if err == nil || !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
