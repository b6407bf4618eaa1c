package client

import "fmt"

// InvalidURLError indicates the configured base URL cannot form a valid
// request target. This is an SDK misconfiguration, not a server problem.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid request URL: %s", e.URL)
}

// EncodingError indicates a request payload could not be serialized.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode request payload: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// NetworkError wraps a transport-level failure (connection refused, DNS,
// timeout). The underlying cause is preserved but never inspected.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// InvalidResponseError indicates the server reply was not usable as an HTTP
// JSON response (missing or unreadable body).
type InvalidResponseError struct {
	Message string
}

func (e *InvalidResponseError) Error() string {
	return e.Message
}

// DecodingError indicates a success body that did not match the expected
// schema.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// APIError carries a non-success HTTP status and the server's message so
// callers can branch on the code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// InitializationFailedError indicates the backend explicitly rejected the
// API key during initialization.
type InitializationFailedError struct {
	Reason string
}

func (e *InitializationFailedError) Error() string {
	return fmt.Sprintf("initialization failed: %s", e.Reason)
}
