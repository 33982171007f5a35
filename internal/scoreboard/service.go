package scoreboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/scoreframe/gridiron-data/internal/jsontree"
	"github.com/scoreframe/gridiron-data/internal/week"
)

// Client is the slice of the upstream client the scoreboard needs.
type Client interface {
	Scoreboard(ctx context.Context, params url.Values) (jsontree.Tree, error)
}

// Service composes week windows, the upstream fetch, normalization, and
// the TTL cache into the scoreboard read path.
type Service struct {
	client Client
	rule   week.Rule
	norm   Normalizer
	cache  *Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires a scoreboard service around a client and week rule.
func NewService(client Client, rule week.Rule, norm Normalizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		client: client,
		rule:   rule,
		norm:   norm,
		logger: logger,
		now:    time.Now,
	}
	s.cache = NewCache(s.Fresh, logger)
	return s
}

// SetTTL overrides the default refresh cadence.
func (s *Service) SetTTL(d time.Duration) {
	if d > 0 {
		s.cache.ttl = d
	}
}

// Cached returns the scoreboard through the TTL cache. Week 0 means the
// provider's current slate.
func (s *Service) Cached(ctx context.Context, year, overallWeek int) (Payload, error) {
	return s.cache.Get(ctx, year, overallWeek)
}

// Fresh fetches and normalizes the scoreboard, bypassing the cache. With a
// week the window is resolved through the week rule and passed as a dates
// range; the year parameter is deliberately omitted from the query because
// the provider filters out results when both are present.
func (s *Service) Fresh(ctx context.Context, year, overallWeek int) (Payload, error) {
	var params url.Values
	if overallWeek > 0 {
		start, end, err := s.rule.Range(ctx, year, overallWeek)
		if err != nil {
			return Payload{}, fmt.Errorf("resolve week window: %w", err)
		}
		params = url.Values{}
		params.Set("dates", fmt.Sprintf("%s-%s", start.Format("20060102"), end.Format("20060102")))
		s.logger.Debug("fetching scoreboard window",
			"year", year, "week", overallWeek, "dates", params.Get("dates"))
	}

	raw, err := s.client.Scoreboard(ctx, params)
	if err != nil {
		return Payload{}, err
	}
	return s.norm.Normalize(raw, s.now()), nil
}
