package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/maltedev/amazon-price-notifier/internal/models"
	"github.com/maltedev/amazon-price-notifier/internal/notifier"
	"github.com/maltedev/amazon-price-notifier/internal/scraper"
)

// Notifier is the downstream channel scrape results are forwarded to.
// May be left nil when the server runs without a webhook configured.
type Notifier interface {
	Notify(ctx context.Context, msg notifier.Message) error
}

type Handlers struct {
	scraper  *scraper.Scraper
	notifier Notifier
	logger   *slog.Logger
}

func NewHandlers(s *scraper.Scraper, n Notifier, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper:  s,
		notifier: n,
		logger:   logger.With("component", "api"),
	}
}

// ScrapeRequest is a batch scrape trigger.
type ScrapeRequest struct {
	URLs   []string `json:"urls"`
	Notify bool     `json:"notify"`
}

// URLResult is the per-URL entry of a scrape report, in input order.
type URLResult struct {
	URL     string          `json:"url"`
	Success bool            `json:"success"`
	Product *models.Product `json:"product,omitempty"`
	Stage   string          `json:"stage,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ScrapeResponse is the full batch report.
type ScrapeResponse struct {
	JobID     string      `json:"job_id"`
	Results   []URLResult `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Notified  bool        `json:"notified"`
}

// Scrape runs a sequential batch over the requested URLs and returns the
// per-URL report. With notify=true, successfully scraped products are also
// forwarded to the webhook channel.
func (h *Handlers) Scrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.URLs) == 0 {
		h.respondError(w, http.StatusBadRequest, "urls is required")
		return
	}

	jobID := uuid.New().String()
	h.logger.Info("scrape job started", "job_id", jobID, "urls", len(req.URLs))

	results := h.scraper.ScrapeBatch(r.Context(), req.URLs)

	resp := ScrapeResponse{
		JobID:   jobID,
		Results: make([]URLResult, 0, len(results)),
	}
	var products []models.Product

	for i, res := range results {
		entry := URLResult{URL: req.URLs[i]}
		if product, ok := res.Unwrap(); ok {
			entry.Success = true
			entry.Product = &product
			products = append(products, product)
			resp.Succeeded++
		} else {
			entry.Stage = string(res.Error().Stage)
			entry.Error = res.Error().Error()
			resp.Failed++
		}
		resp.Results = append(resp.Results, entry)
	}

	if req.Notify && h.notifier != nil && len(products) > 0 {
		msg := notifier.NewProductFound(products, &notifier.Metadata{
			Source:      "api",
			Description: "job " + jobID,
		})
		if err := h.notifier.Notify(r.Context(), msg); err != nil {
			h.logger.Error("notification failed", "job_id", jobID, "error", err)
		} else {
			resp.Notified = true
		}
	}

	h.logger.Info("scrape job finished",
		"job_id", jobID,
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
	)
	h.respondJSON(w, http.StatusOK, resp)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
