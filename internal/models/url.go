package models

import (
	"net/url"
	"strings"

	"github.com/maltedev/amazon-price-notifier/internal/result"
)

const marketplaceDomain = "amazon.co.jp"

// productPathSegments are the URL path shapes that identify a product detail
// page. Either shape is accepted.
var productPathSegments = []string{"/dp/", "/gp/product/"}

// URL is a product page URL that passed validation. Only NewURL constructs it.
type URL struct {
	value string
}

func (u URL) String() string {
	return u.value
}

// NewURL validates raw as an Amazon JP product page URL.
func NewURL(raw string) result.Result[URL, *ValidationError] {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return result.Err[URL](newValidationError(CodeEmptyInput, "url", "url is empty"))
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return result.Err[URL](newValidationError(CodeMalformedURL, "url", "cannot parse url: %v", err))
	}

	if parsed.Scheme != "https" {
		return result.Err[URL](newValidationError(CodeWrongScheme, "url", "scheme %q is not https", parsed.Scheme))
	}

	if !strings.Contains(parsed.Host, marketplaceDomain) {
		return result.Err[URL](newValidationError(CodeWrongDomain, "url", "host %q is not an %s host", parsed.Host, marketplaceDomain))
	}

	if !hasProductPath(parsed.Path) {
		return result.Err[URL](newValidationError(CodeMissingProductPath, "url", "path %q has no product identifier segment", parsed.Path))
	}

	return result.Ok[URL, *ValidationError](URL{value: trimmed})
}

func hasProductPath(path string) bool {
	for _, segment := range productPathSegments {
		if strings.Contains(path, segment) {
			return true
		}
	}
	return false
}
