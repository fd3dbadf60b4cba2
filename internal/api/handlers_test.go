package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/amazon-price-notifier/internal/extractor"
	"github.com/maltedev/amazon-price-notifier/internal/fetcher"
	"github.com/maltedev/amazon-price-notifier/internal/models"
	"github.com/maltedev/amazon-price-notifier/internal/notifier"
	"github.com/maltedev/amazon-price-notifier/internal/result"
	"github.com/maltedev/amazon-price-notifier/internal/scraper"
)

const (
	goodURL = "https://www.amazon.co.jp/dp/B07ABCDEFG"

	pageHTML = `<html><body>
		<span id="productTitle">Test Book</span>
		<span class="a-price-current"><span class="a-offscreen">￥1,000</span></span>
	</body></html>`
)

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, u models.URL) result.Result[*fetcher.Response, *fetcher.Error] {
	return result.Ok[*fetcher.Response, *fetcher.Error](&fetcher.Response{
		Body:       pageHTML,
		StatusCode: 200,
		FinalURL:   u.String(),
	})
}

type recordingNotifier struct {
	messages []notifier.Message
}

func (r *recordingNotifier) Notify(ctx context.Context, msg notifier.Message) error {
	r.messages = append(r.messages, msg)
	return nil
}

func newTestRouter(n Notifier) http.Handler {
	logger := slog.Default()
	s := scraper.New(stubFetcher{}, extractor.New(logger), logger)
	return NewRouter(NewHandlers(s, n, logger))
}

// Response views for decoding: models.Product deliberately has no
// UnmarshalJSON, so tests read the product as a generic map.
type urlResultView struct {
	URL     string         `json:"url"`
	Success bool           `json:"success"`
	Product map[string]any `json:"product"`
	Stage   string         `json:"stage"`
	Error   string         `json:"error"`
}

type scrapeResponseView struct {
	JobID     string          `json:"job_id"`
	Results   []urlResultView `json:"results"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Notified  bool            `json:"notified"`
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestScrapeEndpoint(t *testing.T) {
	body := `{"urls": ["` + goodURL + `", "not-a-url"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestRouter(nil).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp scrapeResponseView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	assert.False(t, resp.Notified)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, goodURL, resp.Results[0].URL)
	assert.True(t, resp.Results[0].Success)
	assert.Equal(t, "Test Book", resp.Results[0].Product["title"])
	assert.Equal(t, "not-a-url", resp.Results[1].URL)
	assert.False(t, resp.Results[1].Success)
	assert.Equal(t, string(scraper.StageURLValidation), resp.Results[1].Stage)
	assert.NotEmpty(t, resp.Results[1].Error)
}

func TestScrapeEndpointNotifies(t *testing.T) {
	n := &recordingNotifier{}
	body := `{"urls": ["` + goodURL + `"], "notify": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", strings.NewReader(body))
	rec := httptest.NewRecorder()

	newTestRouter(n).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp scrapeResponseView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Notified)

	require.Len(t, n.messages, 1)
	assert.Equal(t, notifier.MessageTypeProductFound, n.messages[0].Type)
	require.Len(t, n.messages[0].Products, 1)
	assert.Equal(t, "Test Book", n.messages[0].Products[0].Title.String())
}

func TestScrapeEndpointBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing urls", `{}`},
		{"empty urls", `{"urls": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newTestRouter(nil).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
