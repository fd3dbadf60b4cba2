package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProductURL = "https://www.amazon.co.jp/dp/B07ABCDEFG"

func TestNewProduct(t *testing.T) {
	res := NewProduct(validProductURL, "Test Book", "￥1,000")
	require.True(t, res.IsOk())

	p := res.Value()
	assert.Equal(t, validProductURL, p.URL.String())
	assert.Equal(t, "Test Book", p.Title.String())
	assert.Equal(t, "￥1,000", p.Price.String())
	assert.Positive(t, p.Timestamp)
	assert.LessOrEqual(t, p.Timestamp, time.Now().Unix())
}

func TestNewProductAggregatesAllFailures(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		title      string
		price      string
		wantErrors int
	}{
		{
			name:       "all fields valid",
			url:        validProductURL,
			title:      "Test Book",
			price:      "￥1,000",
			wantErrors: 0,
		},
		{
			name:       "one invalid field",
			url:        validProductURL,
			title:      "ab",
			price:      "￥1,000",
			wantErrors: 1,
		},
		{
			name:       "two invalid fields",
			url:        "not-a-url",
			title:      "Test Book",
			price:      "free",
			wantErrors: 2,
		},
		{
			name:       "all three invalid",
			url:        "",
			title:      "",
			price:      "",
			wantErrors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewProduct(tt.url, tt.title, tt.price)

			if tt.wantErrors == 0 {
				assert.True(t, res.IsOk())
				return
			}

			require.True(t, res.IsErr())
			// One aggregated error per invalid field, never a partial product.
			assert.Len(t, res.Error(), tt.wantErrors)
		})
	}
}

func TestNewProductAt(t *testing.T) {
	res := NewProductAt(validProductURL, "Test Book", "￥1,000", 1700000000)
	require.True(t, res.IsOk())
	assert.Equal(t, int64(1700000000), res.Value().Timestamp)
}

func TestWithTimestampReturnsCopy(t *testing.T) {
	res := NewProductAt(validProductURL, "Test Book", "￥1,000", 1700000000)
	require.True(t, res.IsOk())

	original := res.Value()
	updated := original.WithTimestamp(1800000000)

	assert.Equal(t, int64(1700000000), original.Timestamp)
	assert.Equal(t, int64(1800000000), updated.Timestamp)
	assert.Equal(t, original.Title.String(), updated.Title.String())
}

func TestProductMarshalsFlat(t *testing.T) {
	res := NewProductAt(validProductURL, "Test Book", "￥1,000", 1700000000)
	require.True(t, res.IsOk())

	data, err := json.Marshal(res.Value())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"url": "https://www.amazon.co.jp/dp/B07ABCDEFG",
		"title": "Test Book",
		"price": "￥1,000",
		"timestamp": 1700000000
	}`, string(data))
}

func TestValidationErrorsMessage(t *testing.T) {
	res := NewProduct("", "", "")
	require.True(t, res.IsErr())

	msg := res.Error().Error()
	assert.Contains(t, msg, "url")
	assert.Contains(t, msg, "title")
	assert.Contains(t, msg, "price")
}
