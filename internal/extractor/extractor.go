package extractor

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/amazon-price-notifier/internal/models"
	"github.com/maltedev/amazon-price-notifier/internal/result"
)

// Selector lists are ordered by observed template stability: the most
// specific, most reliable selector first, generic guesses last. The first
// selector whose text passes the field's accept predicate wins, even if a
// later one would also match.
var (
	defaultTitleSelectors = []string{
		"#productTitle",
		"#title span",
		"h1.a-size-large span",
		"h1 span",
		".product-title-word-break",
	}

	defaultPriceSelectors = []string{
		".a-price-current .a-offscreen",
		"#corePrice_feature_div .a-price .a-offscreen",
		".a-price .a-offscreen",
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		".a-price-whole",
		".a-color-price",
	}
)

// Fields holds the raw strings pulled out of a product page, before value
// object validation.
type Fields struct {
	Title string
	Price string
}

// acceptFunc decides whether a selector's trimmed text is usable.
type acceptFunc func(string) bool

// Extractor locates title and price text in product page HTML.
type Extractor struct {
	titleSelectors []string
	priceSelectors []string
	logger         *slog.Logger
}

type Option func(*Extractor)

// WithTitleSelectors replaces the default ordered title selector list.
func WithTitleSelectors(selectors []string) Option {
	return func(e *Extractor) { e.titleSelectors = selectors }
}

// WithPriceSelectors replaces the default ordered price selector list.
func WithPriceSelectors(selectors []string) Option {
	return func(e *Extractor) { e.priceSelectors = selectors }
}

func New(logger *slog.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		titleSelectors: defaultTitleSelectors,
		priceSelectors: defaultPriceSelectors,
		logger:         logger.With("component", "extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses html and extracts title and price, failing on the first
// missing field.
func (e *Extractor) Extract(html string) result.Result[Fields, *Error] {
	doc, parseErr := e.parse(html)
	if parseErr != nil {
		return result.Err[Fields](parseErr)
	}

	title, err := e.extractTitle(doc)
	if err != nil {
		return result.Err[Fields](err)
	}
	price, err := e.extractPrice(doc)
	if err != nil {
		return result.Err[Fields](err)
	}

	return result.Ok[Fields, *Error](Fields{Title: title, Price: price})
}

// ExtractAll parses html and extracts title and price, collecting failures
// from both fields instead of stopping at the first.
func (e *Extractor) ExtractAll(html string) result.Result[Fields, Errors] {
	doc, parseErr := e.parse(html)
	if parseErr != nil {
		return result.Err[Fields](Errors{parseErr})
	}

	var errs Errors
	fields := Fields{}

	if title, err := e.extractTitle(doc); err != nil {
		errs = append(errs, err)
	} else {
		fields.Title = title
	}
	if price, err := e.extractPrice(doc); err != nil {
		errs = append(errs, err)
	} else {
		fields.Price = price
	}

	if len(errs) > 0 {
		return result.Err[Fields](errs)
	}
	return result.Ok[Fields, Errors](fields)
}

func (e *Extractor) parse(html string) (*goquery.Document, *Error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{
			Code:    CodeHTMLParse,
			Field:   "document",
			Message: "failed to parse HTML: " + err.Error(),
		}
	}
	return doc, nil
}

func (e *Extractor) extractTitle(doc *goquery.Document) (string, *Error) {
	title, ok := extractField(doc, e.titleSelectors, acceptNonEmpty)
	if !ok {
		e.logger.Debug("title not found", "selectors", e.titleSelectors)
		return "", &Error{
			Code:           CodeElementNotFound,
			Field:          "title",
			Message:        "no selector matched a usable title",
			SelectorsTried: e.titleSelectors,
		}
	}
	return title, nil
}

func (e *Extractor) extractPrice(doc *goquery.Document) (string, *Error) {
	price, ok := extractField(doc, e.priceSelectors, acceptPriceLike)
	if !ok {
		e.logger.Debug("price not found", "selectors", e.priceSelectors)
		return "", &Error{
			Code:           CodeElementNotFound,
			Field:          "price",
			Message:        "no selector matched a usable price",
			SelectorsTried: e.priceSelectors,
		}
	}
	return price, nil
}

// extractField tries each selector in priority order and returns the first
// trimmed text content accepted by the predicate.
func extractField(doc *goquery.Document, selectors []string, accept acceptFunc) (string, bool) {
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" && accept(text) {
			return text, true
		}
	}
	return "", false
}

func acceptNonEmpty(s string) bool {
	return s != ""
}

// acceptPriceLike rejects values like "free" that carry neither a yen glyph
// nor a digit.
func acceptPriceLike(s string) bool {
	return models.HasCurrencyIndicator(s)
}
