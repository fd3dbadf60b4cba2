package models

import (
	"strings"
	"unicode/utf8"

	"github.com/maltedev/amazon-price-notifier/internal/result"
)

const (
	titleMinLength = 3
	titleMaxLength = 500
)

// injectionMarkers are substrings that mark a title as carrying script or
// URI injection payloads. Checked case-insensitively.
var injectionMarkers = []string{"<script", "javascript:", "data:", "vbscript:"}

// Title is a product title that passed validation. Only NewTitle constructs it.
type Title struct {
	value string
}

func (t Title) String() string {
	return t.value
}

// NewTitle normalizes and validates raw as a product title. Whitespace runs
// are collapsed to single spaces before any length check.
func NewTitle(raw string) result.Result[Title, *ValidationError] {
	normalized := strings.Join(strings.Fields(raw), " ")
	if normalized == "" {
		return result.Err[Title](newValidationError(CodeEmptyInput, "title", "title is empty"))
	}

	length := utf8.RuneCountInString(normalized)
	if length < titleMinLength {
		return result.Err[Title](newValidationError(CodeTooShort, "title", "title has %d characters, minimum is %d", length, titleMinLength))
	}
	if length > titleMaxLength {
		return result.Err[Title](newValidationError(CodeTooLong, "title", "title has %d characters, maximum is %d", length, titleMaxLength))
	}

	lowered := strings.ToLower(normalized)
	for _, marker := range injectionMarkers {
		if strings.Contains(lowered, marker) {
			return result.Err[Title](newValidationError(CodeUnsafeContent, "title", "title contains %q", marker))
		}
	}

	return result.Ok[Title, *ValidationError](Title{value: normalized})
}
