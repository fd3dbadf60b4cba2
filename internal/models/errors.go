package models

import (
	"fmt"
	"strings"
)

// ValidationCode identifies why a value was rejected. The set is closed;
// callers can switch over it exhaustively.
type ValidationCode string

const (
	CodeEmptyInput          ValidationCode = "EMPTY_INPUT"
	CodeMalformedURL        ValidationCode = "MALFORMED_URL"
	CodeWrongScheme         ValidationCode = "WRONG_SCHEME"
	CodeWrongDomain         ValidationCode = "WRONG_DOMAIN"
	CodeMissingProductPath  ValidationCode = "MISSING_PRODUCT_PATH"
	CodeTooShort            ValidationCode = "TOO_SHORT"
	CodeTooLong             ValidationCode = "TOO_LONG"
	CodeUnsafeContent       ValidationCode = "UNSAFE_CONTENT"
	CodeNoCurrencyIndicator ValidationCode = "NO_CURRENCY_INDICATOR"
	CodeMalformedPrice      ValidationCode = "MALFORMED_PRICE"
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

func newValidationError(code ValidationCode, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationErrors aggregates per-field failures from Product assembly.
// One entry per invalid field.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}
