package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/happybada/marinecontext/internal/observability"
	"github.com/happybada/marinecontext/internal/record"
	"github.com/happybada/marinecontext/pkg/http/client"
)

// Fetcher issues one GET per call and decodes the body into a record tree.
// It never retries and never caches.
type Fetcher struct {
	httpClient client.Interface
	metrics    *observability.Metrics
}

// NewFetcher creates a fetcher. metrics may be nil.
func NewFetcher(httpClient client.Interface, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		metrics:    metrics,
	}
}

// Fetch retrieves kind from rawURL. Any failure is a *FetchFailedError.
func (f *Fetcher) Fetch(ctx context.Context, kind Kind, rawURL string) (record.Value, error) {
	start := time.Now()
	v, err := f.fetch(ctx, kind, rawURL)
	elapsed := time.Since(start)

	if f.metrics != nil {
		f.metrics.FeedFetchDuration.WithLabelValues(string(kind), observability.Outcome(err)).Observe(elapsed.Seconds())
		if err != nil {
			f.metrics.FeedFetchErrors.WithLabelValues(string(kind)).Inc()
		}
	}

	if err != nil {
		log.Error().Err(err).Str("feed", string(kind)).Dur("duration", elapsed).Msg("Feed fetch failed")
		return record.Value{}, err
	}

	log.Debug().Str("feed", string(kind)).Dur("duration", elapsed).Msgf("Fetched %s feed", kind)
	return v, nil
}

func (f *Fetcher) fetch(ctx context.Context, kind Kind, rawURL string) (record.Value, error) {
	safeURL := Redact(rawURL)

	resp, err := f.httpClient.Get(ctx, rawURL)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = safeURL
		}
		return record.Value{}, NewFetchFailedError(kind, safeURL, err)
	}
	if resp == nil {
		return record.Value{}, NewFetchFailedError(kind, safeURL, fmt.Errorf("no response"))
	}
	if !resp.OK() {
		fetchErr := NewFetchFailedError(kind, safeURL, fmt.Errorf("unexpected status: %s", truncate(resp.Body, 200)))
		fetchErr.StatusCode = resp.StatusCode
		return record.Value{}, fetchErr
	}

	v, err := record.Decode(resp.Body)
	if err != nil {
		return record.Value{}, NewFetchFailedError(kind, safeURL, err)
	}
	return v, nil
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
