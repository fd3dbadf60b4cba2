package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTitle(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		wantCode ValidationCode
	}{
		{
			name: "plain title",
			raw:  "Test Book",
			want: "Test Book",
		},
		{
			name: "whitespace runs collapse",
			raw:  "  Test \t\n  Book  ",
			want: "Test Book",
		},
		{
			name: "japanese title",
			raw:  "ソフトウェア設計の原則",
			want: "ソフトウェア設計の原則",
		},
		{
			name: "exactly three characters",
			raw:  "abc",
			want: "abc",
		},
		{
			name:     "empty input",
			raw:      "   ",
			wantCode: CodeEmptyInput,
		},
		{
			name:     "too short",
			raw:      "ab",
			wantCode: CodeTooShort,
		},
		{
			name:     "too long",
			raw:      strings.Repeat("a", 501),
			wantCode: CodeTooLong,
		},
		{
			name:     "script tag rejected",
			raw:      "Test <script>alert(1)</script>",
			wantCode: CodeUnsafeContent,
		},
		{
			name:     "script tag rejected case insensitively",
			raw:      "Test <SCRIPT>alert(1)</SCRIPT>",
			wantCode: CodeUnsafeContent,
		},
		{
			name:     "javascript uri rejected",
			raw:      "Click JavaScript:alert(1)",
			wantCode: CodeUnsafeContent,
		},
		{
			name:     "data uri rejected",
			raw:      "img data:text/html;base64,xxx",
			wantCode: CodeUnsafeContent,
		},
		{
			name:     "vbscript uri rejected",
			raw:      "x vbscript:msgbox",
			wantCode: CodeUnsafeContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewTitle(tt.raw)

			if tt.wantCode != "" {
				require.True(t, res.IsErr())
				assert.Equal(t, tt.wantCode, res.Error().Code)
				assert.Equal(t, "title", res.Error().Field)
				return
			}

			require.True(t, res.IsOk())
			assert.Equal(t, tt.want, res.Value().String())
		})
	}
}

func TestNewTitleLengthCountsRunes(t *testing.T) {
	// 500 multibyte runes are within the limit even though the byte length
	// is far larger.
	res := NewTitle(strings.Repeat("あ", 500))
	require.True(t, res.IsOk())

	assert.True(t, NewTitle(strings.Repeat("あ", 501)).IsErr())
}

func TestNewTitleIdempotent(t *testing.T) {
	first := NewTitle("  Test   Book ")
	require.True(t, first.IsOk())

	second := NewTitle(first.Value().String())
	require.True(t, second.IsOk())
	assert.Equal(t, first.Value().String(), second.Value().String())
}
