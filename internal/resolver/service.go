package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/happybada/marinecontext/internal/config"
	"github.com/happybada/marinecontext/internal/feed"
	"github.com/happybada/marinecontext/internal/models"
	"github.com/happybada/marinecontext/internal/observability"
	"github.com/happybada/marinecontext/internal/record"
)

type Service struct {
	fetcher     FeedFetcher
	endpoints   feed.Endpoints
	clock       clockwork.Clock
	location    *time.Location
	locale      string
	sunFallback bool
	visibility  bool
	metrics     *observability.Metrics

	// slots bounds in-flight fetches across every concurrent Resolve.
	slots chan struct{}
}

// NewService wires a resolver from cfg. clock and metrics may be nil.
func NewService(cfg *config.Config, fetcher FeedFetcher, clock clockwork.Clock, metrics *observability.Metrics) (*Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	workers := max(cfg.Workers, config.MinWorkers)

	return &Service{
		fetcher: fetcher,
		endpoints: feed.Endpoints{
			BaseURL:          cfg.BadaBaseURL,
			APIKey:           cfg.BadaAPIKey,
			OpenMeteoBaseURL: cfg.OpenMeteoBaseURL,
		},
		clock:       clock,
		location:    loc,
		locale:      cfg.Locale,
		sunFallback: cfg.SunFallback,
		visibility:  cfg.VisibilityEnabled,
		metrics:     metrics,
		slots:       make(chan struct{}, workers),
	}, nil
}

// Resolve fetches every feed for lat/lon and reduces them to one Context at
// ref, or at the current instant when ref is nil. A failed fetch aborts the
// whole resolution.
func (s *Service) Resolve(ctx context.Context, lat, lon float64, ref *time.Time) (*models.Context, error) {
	start := time.Now()
	now := s.referenceTime(ref)

	payloads, err := s.fetchAll(ctx, lat, lon)
	if err != nil {
		s.observe(start, err)
		return nil, err
	}

	c := s.assemble(payloads, lat, lon, now)
	s.observe(start, nil)

	log.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("reference", now.Format(time.RFC3339)).
		Dur("duration", time.Since(start)).
		Msg("Resolved marine context")

	return c, nil
}

func (s *Service) referenceTime(ref *time.Time) time.Time {
	if ref != nil {
		return ref.In(s.location)
	}
	return s.clock.Now().In(s.location)
}

// feedPayloads holds one decoded body per feed kind.
type feedPayloads map[feed.Kind]record.Value

func (s *Service) kinds() []feed.Kind {
	kinds := append([]feed.Kind(nil), feed.Kinds...)
	if s.visibility {
		kinds = append(kinds, feed.KindVisibility)
	}
	return kinds
}

// fetchAll runs every fetch on the service's shared pool and waits for all of
// them. Siblings of a failed fetch are not cancelled; their results are dropped.
func (s *Service) fetchAll(ctx context.Context, lat, lon float64) (feedPayloads, error) {
	kinds := s.kinds()
	results := make([]record.Value, len(kinds))

	var g errgroup.Group

	for i, kind := range kinds {
		g.Go(func() error {
			v, err := s.fetch(ctx, kind, lat, lon)
			if err != nil {
				return fmt.Errorf("fetching %s feed: %w", kind, err)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	payloads := make(feedPayloads, len(kinds))
	for i, kind := range kinds {
		payloads[kind] = results[i]
	}
	return payloads, nil
}

// fetch waits for a free pool slot, then fetches kind.
func (s *Service) fetch(ctx context.Context, kind feed.Kind, lat, lon float64) (record.Value, error) {
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return record.Value{}, ctx.Err()
	}
	defer func() { <-s.slots }()

	return s.fetcher.Fetch(ctx, kind, s.endpoints.URL(kind, lat, lon))
}

func (s *Service) observe(start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	s.metrics.Resolutions.WithLabelValues(observability.Outcome(err)).Inc()
}
