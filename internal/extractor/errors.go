package extractor

import (
	"fmt"
	"strings"
)

// Code identifies why extraction failed. The set is closed.
type Code string

const (
	// CodeHTMLParse means the document could not be parsed at all.
	CodeHTMLParse Code = "HTML_PARSE_ERROR"
	// CodeElementNotFound means no selector in the list yielded an accepted
	// value for the field.
	CodeElementNotFound Code = "ELEMENT_NOT_FOUND"
)

// Error reports a failed field extraction. SelectorsTried carries the full
// ordered list that was attempted, for diagnosability.
type Error struct {
	Code           Code
	Field          string
	Message        string
	SelectorsTried []string
}

func (e *Error) Error() string {
	if len(e.SelectorsTried) == 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s (%s; tried %s)", e.Field, e.Message, e.Code, strings.Join(e.SelectorsTried, ", "))
}

// Errors aggregates per-field extraction failures.
type Errors []*Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, ee := range e {
		msgs[i] = ee.Error()
	}
	return strings.Join(msgs, "; ")
}
