package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"
)

// Code classifies a fetch failure. The set is closed.
type Code string

const (
	// CodeNetwork is a connection-level failure: refused, DNS, reset.
	CodeNetwork Code = "NETWORK_ERROR"
	// CodeTimeout means the attempt exceeded the configured timeout.
	CodeTimeout Code = "TIMEOUT_ERROR"
	// CodeStatus means the transport completed with a non-success status.
	CodeStatus Code = "STATUS_ERROR"
	// CodeParse means the response body could not be read or decoded.
	CodeParse Code = "PARSE_ERROR"
	// CodeUnknown is the fallback bucket; the original message is kept.
	CodeUnknown Code = "UNKNOWN_ERROR"
)

// Error is a classified fetch failure.
type Error struct {
	Code       Code
	Message    string
	StatusCode int           // set for CodeStatus
	Timeout    time.Duration // set for CodeTimeout
	URL        string
	cause      error
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeStatus:
		return fmt.Sprintf("%s: status %d for %s", e.Code, e.StatusCode, e.URL)
	case CodeTimeout:
		return fmt.Sprintf("%s: request exceeded %s for %s", e.Code, e.Timeout, e.URL)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether retrying could plausibly resolve the failure:
// connection-level errors, timeouts, and 5xx statuses. Client errors (4xx),
// parse failures, and unknowns are terminal.
func (e *Error) Retryable() bool {
	switch e.Code {
	case CodeNetwork, CodeTimeout:
		return true
	case CodeStatus:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// classify maps whatever the transport returned into the closed taxonomy.
// All knowledge of vendor error shapes lives here.
func classify(err error, rawURL string, timeout time.Duration) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Code: CodeTimeout, Message: err.Error(), Timeout: timeout, URL: rawURL, cause: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Code: CodeTimeout, Message: err.Error(), Timeout: timeout, URL: rawURL, cause: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Code: CodeNetwork, Message: urlErr.Error(), URL: rawURL, cause: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return &Error{Code: CodeParse, Message: "response body could not be read: " + err.Error(), URL: rawURL, cause: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Code: CodeNetwork, Message: opErr.Error(), URL: rawURL, cause: err}
	}

	return &Error{Code: CodeUnknown, Message: err.Error(), URL: rawURL, cause: err}
}

func statusError(statusCode int, rawURL string) *Error {
	return &Error{
		Code:       CodeStatus,
		Message:    fmt.Sprintf("unexpected status %d", statusCode),
		StatusCode: statusCode,
		URL:        rawURL,
	}
}
