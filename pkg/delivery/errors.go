package delivery

import (
	"fmt"
	"net/http"
)

// Kind classifies a failed delivery
type Kind string

const (
	KindNetwork Kind = "network" // no HTTP response
	KindTimeout Kind = "timeout" // attempt exceeded its deadline
	KindClient  Kind = "client"  // HTTP 4xx
	KindServer  Kind = "server"  // HTTP 5xx
	KindDecode  Kind = "decode"  // 2xx with an unreadable body
)

// DeliveryError is returned when a report could not be delivered
type DeliveryError struct {
	Kind       Kind
	StatusCode int // 0 when no response was received
	Message    string
	Attempts   int
	Err        error
}

func (e *DeliveryError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("delivery failed (%s, HTTP %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("delivery failed (%s): %s", e.Kind, msg)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Retryable reports whether sending again may succeed. Client errors are
// final except request timeout and rate limiting.
func (e *DeliveryError) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindServer:
		return true
	case KindClient:
		return e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}

func statusError(code int, message string) *DeliveryError {
	kind := KindClient
	if code >= 500 {
		kind = KindServer
	}
	return &DeliveryError{Kind: kind, StatusCode: code, Message: message}
}
