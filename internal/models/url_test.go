package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCode ValidationCode
	}{
		{
			name: "valid dp url",
			raw:  "https://www.amazon.co.jp/dp/B07ABCDEFG",
		},
		{
			name: "valid gp product url",
			raw:  "https://www.amazon.co.jp/gp/product/B07ABCDEFG",
		},
		{
			name: "valid url with title slug and query",
			raw:  "https://www.amazon.co.jp/ほんのタイトル/dp/B07ABCDEFG?ref=nav_signin",
		},
		{
			name: "surrounding whitespace is trimmed",
			raw:  "  https://www.amazon.co.jp/dp/B07ABCDEFG  ",
		},
		{
			name:     "empty input",
			raw:      "",
			wantCode: CodeEmptyInput,
		},
		{
			name:     "whitespace only",
			raw:      "   \t  ",
			wantCode: CodeEmptyInput,
		},
		{
			name:     "unparseable url",
			raw:      "https://www.amazon.co.jp/dp/%zz",
			wantCode: CodeMalformedURL,
		},
		{
			name:     "http scheme rejected",
			raw:      "http://www.amazon.co.jp/dp/B07ABCDEFG",
			wantCode: CodeWrongScheme,
		},
		{
			name:     "wrong marketplace",
			raw:      "https://www.amazon.de/dp/B07ABCDEFG",
			wantCode: CodeWrongDomain,
		},
		{
			name:     "no product path segment",
			raw:      "https://www.amazon.co.jp/gp/cart/view.html",
			wantCode: CodeMissingProductPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewURL(tt.raw)

			if tt.wantCode != "" {
				require.True(t, res.IsErr())
				assert.Equal(t, tt.wantCode, res.Error().Code)
				assert.Equal(t, "url", res.Error().Field)
				return
			}

			require.True(t, res.IsOk())
			assert.NotEmpty(t, res.Value().String())
		})
	}
}

func TestNewURLIdempotent(t *testing.T) {
	first := NewURL("  https://www.amazon.co.jp/dp/B07ABCDEFG ")
	require.True(t, first.IsOk())

	// Feeding a validated value back through the factory succeeds again.
	second := NewURL(first.Value().String())
	require.True(t, second.IsOk())
	assert.Equal(t, first.Value().String(), second.Value().String())
}
