package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/maltedev/amazon-price-notifier/internal/result"
)

const priceMaxLength = 50

// pricePattern accepts an optional leading yen symbol, 1-3 leading digits,
// optional comma-separated groups of exactly three digits, and an optional
// trailing yen symbol, 円, or "yen" suffix.
var pricePattern = regexp.MustCompile(`^[¥￥]?[0-9]{1,3}(?:,[0-9]{3})*(?:\s*(?:[¥￥円]|(?i:yen)))?$`)

// Price is a displayed price string that passed validation. Only NewPrice
// constructs it. The raw display form is preserved, separators included.
type Price struct {
	value string
}

func (p Price) String() string {
	return p.value
}

// NewPrice validates raw as a yen price string.
func NewPrice(raw string) result.Result[Price, *ValidationError] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return result.Err[Price](newValidationError(CodeEmptyInput, "price", "price is empty"))
	}

	if !HasCurrencyIndicator(trimmed) {
		return result.Err[Price](newValidationError(CodeNoCurrencyIndicator, "price", "price %q has neither a yen symbol nor a digit", trimmed))
	}

	if !pricePattern.MatchString(trimmed) {
		return result.Err[Price](newValidationError(CodeMalformedPrice, "price", "price %q does not match the expected format", trimmed))
	}

	if length := utf8.RuneCountInString(trimmed); length > priceMaxLength {
		return result.Err[Price](newValidationError(CodeTooLong, "price", "price has %d characters, maximum is %d", length, priceMaxLength))
	}

	return result.Ok[Price, *ValidationError](Price{value: trimmed})
}

// HasCurrencyIndicator reports whether s contains a yen glyph or any digit.
// Shared with the extractor's price accept predicate.
func HasCurrencyIndicator(s string) bool {
	if strings.ContainsAny(s, "¥￥円") {
		return true
	}
	return strings.ContainsAny(s, "0123456789")
}
