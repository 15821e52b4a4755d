// internal/resolver/interface.go
package resolver

import (
	"context"
	"time"

	"github.com/happybada/marinecontext/internal/feed"
	"github.com/happybada/marinecontext/internal/models"
	"github.com/happybada/marinecontext/internal/record"
)

type ContextResolver interface {
	Resolve(ctx context.Context, lat, lon float64, ref *time.Time) (*models.Context, error)
}

type FeedFetcher interface {
	Fetch(ctx context.Context, kind feed.Kind, rawURL string) (record.Value, error)
}

var (
	_ ContextResolver = (*Service)(nil)
	_ FeedFetcher     = (*feed.Fetcher)(nil)
)
