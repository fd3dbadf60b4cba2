package models

import (
	"time"

	"github.com/maltedev/amazon-price-notifier/internal/result"
)

// Product is a validated product listing. All fields passed their factories;
// a Product holding an invalid field cannot be constructed.
type Product struct {
	URL       URL   `json:"url"`
	Title     Title `json:"title"`
	Price     Price `json:"price"`
	Timestamp int64 `json:"timestamp"`
}

// NewProduct validates all three raw fields and aggregates every failure, not
// just the first: three invalid fields produce three errors. The timestamp is
// set to the current unix time.
func NewProduct(rawURL, rawTitle, rawPrice string) result.Result[Product, ValidationErrors] {
	return NewProductAt(rawURL, rawTitle, rawPrice, time.Now().Unix())
}

// NewProductAt is NewProduct with an explicit unix-seconds timestamp.
func NewProductAt(rawURL, rawTitle, rawPrice string, timestamp int64) result.Result[Product, ValidationErrors] {
	var errs ValidationErrors

	urlRes := NewURL(rawURL)
	if urlRes.IsErr() {
		errs = append(errs, urlRes.Error())
	}
	titleRes := NewTitle(rawTitle)
	if titleRes.IsErr() {
		errs = append(errs, titleRes.Error())
	}
	priceRes := NewPrice(rawPrice)
	if priceRes.IsErr() {
		errs = append(errs, priceRes.Error())
	}

	if len(errs) > 0 {
		return result.Err[Product](errs)
	}

	return result.Ok[Product, ValidationErrors](Product{
		URL:       urlRes.Value(),
		Title:     titleRes.Value(),
		Price:     priceRes.Value(),
		Timestamp: timestamp,
	})
}

// WithTimestamp returns a copy of the product with a new timestamp. The
// receiver is never mutated.
func (p Product) WithTimestamp(timestamp int64) Product {
	p.Timestamp = timestamp
	return p
}
