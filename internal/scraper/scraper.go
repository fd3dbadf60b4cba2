package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maltedev/amazon-price-notifier/internal/extractor"
	"github.com/maltedev/amazon-price-notifier/internal/fetcher"
	"github.com/maltedev/amazon-price-notifier/internal/models"
	"github.com/maltedev/amazon-price-notifier/internal/ratelimit"
	"github.com/maltedev/amazon-price-notifier/internal/result"
)

// Stage names the pipeline step that produced a failure.
type Stage string

const (
	StageURLValidation Stage = "url_validation"
	StageFetch         Stage = "fetch"
	StageExtraction    Stage = "extraction"
	StageAssembly      Stage = "assembly"
)

// Error tags a component failure with the stage that produced it. The
// original error value is carried unchanged and reachable via Unwrap, so no
// diagnostic context is lost through the wrapping.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher is the transport the orchestrator depends on. *fetcher.Client
// satisfies it; tests substitute a scripted one.
type Fetcher interface {
	Fetch(ctx context.Context, u models.URL) result.Result[*fetcher.Response, *fetcher.Error]
}

// recorder is implemented by limiters that adapt their pacing to outcomes.
type recorder interface {
	RecordSuccess()
	RecordError()
}

// Scraper turns a raw URL string into a validated Product.
type Scraper struct {
	fetcher   Fetcher
	extractor *extractor.Extractor
	limiter   ratelimit.Limiter
	logger    *slog.Logger
}

type Option func(*Scraper)

// WithLimiter sets the limiter that paces batch requests. Without one, batch
// items run back to back.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(s *Scraper) { s.limiter = l }
}

func New(f Fetcher, e *extractor.Extractor, logger *slog.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:   f,
		extractor: e,
		logger:    logger.With("component", "scraper"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeProduct runs the full pipeline for one URL: validate, fetch, extract,
// assemble. Each step short-circuits on failure. An invalid URL never reaches
// the network.
func (s *Scraper) ScrapeProduct(ctx context.Context, rawURL string) result.Result[models.Product, *Error] {
	urlRes := models.NewURL(rawURL)
	if urlRes.IsErr() {
		return result.Err[models.Product](&Error{Stage: StageURLValidation, Err: urlRes.Error()})
	}
	validURL := urlRes.Value()

	fetchRes := s.fetcher.Fetch(ctx, validURL)
	if fetchRes.IsErr() {
		return result.Err[models.Product](&Error{Stage: StageFetch, Err: fetchRes.Error()})
	}
	resp := fetchRes.Value()

	extractRes := s.extractor.Extract(resp.Body)
	if extractRes.IsErr() {
		return result.Err[models.Product](&Error{Stage: StageExtraction, Err: extractRes.Error()})
	}
	fields := extractRes.Value()

	// Extracted strings go back through the value object factories; the
	// extractor's accept predicates are looser than the domain rules.
	productRes := models.NewProduct(validURL.String(), fields.Title, fields.Price)
	if productRes.IsErr() {
		return result.Err[models.Product](&Error{Stage: StageAssembly, Err: productRes.Error()})
	}
	product := productRes.Value()

	s.logger.Info("scraped product",
		"url", validURL.String(),
		"title", product.Title.String(),
		"price", product.Price.String(),
	)
	return result.Ok[models.Product, *Error](product)
}

// ScrapeBatch processes URLs strictly sequentially, in input order, with the
// limiter's gap between requests. Sequential processing is deliberate
// throttling of the outbound request rate, not a limitation; do not
// parallelize it. One URL's failure never aborts the rest, and the returned
// slice always has one entry per input, in input order.
func (s *Scraper) ScrapeBatch(ctx context.Context, rawURLs []string) []result.Result[models.Product, *Error] {
	results := make([]result.Result[models.Product, *Error], 0, len(rawURLs))

	for i, rawURL := range rawURLs {
		if i > 0 && s.limiter != nil && ctx.Err() == nil {
			// Wait failure means the context ended; the per-URL fetch below
			// observes the same context and reports it in its own result.
			_ = s.limiter.Wait(ctx)
		}

		res := s.ScrapeProduct(ctx, rawURL)
		results = append(results, res)

		if rec, ok := s.limiter.(recorder); ok {
			if res.IsOk() {
				rec.RecordSuccess()
			} else {
				rec.RecordError()
			}
		}

		if res.IsErr() {
			s.logger.Warn("scrape failed",
				"url", rawURL,
				"stage", res.Error().Stage,
				"error", res.Error().Error(),
			)
		}
	}

	return results
}
