// Package types holds the JSON envelopes shared by every admin endpoint.
package types

// SuccessEnvelope wraps a handler result: {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public half of a pkg/errors.Error. Message is the public
// message for codes that hide internals. Retryable tells back-office clients
// whether repeating the same request can succeed, e.g. after a dependency
// outage but never after a refund quantity was rejected.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Details   any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
