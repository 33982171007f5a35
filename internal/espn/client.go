// Package espn provides the HTTP client for the upstream sports data
// provider's public NFL endpoints: the site scoreboard and summary APIs,
// the rendered boxscore page, and the core linked-resource graph.
//
// All calls are rate limited with a shared token bucket and carry the
// request context. Payloads are decoded into jsontree.Tree because shapes
// drift across seasons and endpoints.
package espn

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
)

// Default endpoint URLs. Overridable for tests and proxies.
const (
	DefaultScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	DefaultSummaryURL    = "https://site.web.api.espn.com/apis/site/v2/sports/football/nfl/summary"
	DefaultBoxscoreURL   = "https://www.espn.com/nfl/boxscore/_/gameId/"
	DefaultCoreBaseURL   = "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl"
)

// Browser-ish UA for the rendered page; the JSON APIs don't care.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Safari/537.36"

// URLs holds the endpoint roots the client talks to.
type URLs struct {
	Scoreboard string
	Summary    string
	Boxscore   string // event id is appended
	CoreBase   string
}

// DefaultURLs returns the public production endpoints.
func DefaultURLs() URLs {
	return URLs{
		Scoreboard: DefaultScoreboardURL,
		Summary:    DefaultSummaryURL,
		Boxscore:   DefaultBoxscoreURL,
		CoreBase:   DefaultCoreBaseURL,
	}
}

// Client is the shared HTTP client for all upstream endpoints.
type Client struct {
	httpClient *http.Client
	urls       URLs
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a rate-limited upstream client.
func NewClient(urls URLs, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 12 * time.Second},
		urls:       urls,
		limiter:    rate.NewLimiter(rate.Limit(rps), 4),
		logger:     logger,
	}
}

// Scoreboard fetches the scoreboard listing. params may carry "dates" for a
// window query, or be empty for the current slate.
func (c *Client) Scoreboard(ctx context.Context, params url.Values) (jsontree.Tree, error) {
	u := c.urls.Scoreboard
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return c.GetJSON(ctx, u)
}

// Summary fetches the per-event summary (with the optional boxscore block).
func (c *Client) Summary(ctx context.Context, eventID string) (jsontree.Tree, error) {
	return c.GetJSON(ctx, c.urls.Summary+"?event="+url.QueryEscape(eventID))
}

// BoxscoreHTML fetches the rendered boxscore page for an event.
func (c *Client) BoxscoreHTML(ctx context.Context, eventID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.urls.Boxscore+url.PathEscape(eventID), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request boxscore %s: %w", eventID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("boxscore %s returned %d", eventID, resp.StatusCode)
	}
	return string(body), nil
}

// Core fetches a path under the core graph base URL.
func (c *Client) Core(ctx context.Context, path string) (jsontree.Tree, error) {
	return c.GetJSON(ctx, c.urls.CoreBase+path)
}

// GetJSON performs a rate-limited GET of an absolute URL and decodes the
// body. Used directly when following "$ref" links, which are absolute.
func (c *Client) GetJSON(ctx context.Context, rawURL string) (jsontree.Tree, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream %s returned %d: %s", rawURL, resp.StatusCode, truncate(body, 200))
	}

	tree, err := jsontree.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return tree, nil
}

// SeasonStart discovers the preseason week 1 start for a year from the
// season calendar: the earliest entry start date. Falls back to July 31
// when the calendar shape is missing, so week math still has an anchor.
func (c *Client) SeasonStart(ctx context.Context, year int) (time.Time, error) {
	params := url.Values{
		"year":       {fmt.Sprintf("%d", year)},
		"seasontype": {"1"},
	}
	tree, err := c.Scoreboard(ctx, params)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch season calendar: %w", err)
	}

	var earliest time.Time
	for _, block := range tree.Slice("leagues", 0, "calendar") {
		b := jsontree.AsTree(block)
		if b == nil {
			continue
		}
		for _, entry := range b.Slice("entries") {
			e := jsontree.AsTree(entry)
			if e == nil {
				continue
			}
			d, ok := parseISODate(e.Str("startDate"))
			if !ok {
				continue
			}
			if earliest.IsZero() || d.Before(earliest) {
				earliest = d
			}
		}
	}

	if earliest.IsZero() {
		return time.Date(year, time.July, 31, 0, 0, 0, 0, time.UTC), nil
	}
	return earliest, nil
}

// parseISODate accepts "YYYY-MM-DD" or a full ISO timestamp.
func parseISODate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, "T") {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			// Upstream sometimes omits seconds.
			t, err = time.Parse("2006-01-02T15:04Z07:00", s)
		}
		if err != nil {
			return time.Time{}, false
		}
		y, m, d := t.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	if len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// truncate keeps error messages readable when upstream returns HTML.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
