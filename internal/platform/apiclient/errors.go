package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrCircuitOpen is returned while the breaker for a backend host is open.
var ErrCircuitOpen = errors.New("backend circuit open")

// StatusError describes a non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrCircuitOpen) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// PanicError wraps a value recovered from a panicking query load or
// mutation. Op is "query <key>" or empty for mutations.
type PanicError struct {
	Op    string
	Value any
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s panicked: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("mutation panicked: %v", e.Value)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func errorMessage(body []byte) string {
	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err == nil {
		if decoded.Message != "" {
			return decoded.Message
		}
		if decoded.Error != "" {
			return decoded.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
