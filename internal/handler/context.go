package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/happybada/marinecontext/internal/api"
	"github.com/happybada/marinecontext/internal/feed"
	"github.com/happybada/marinecontext/internal/resolver"
)

type ContextHandler struct {
	resolver resolver.ContextResolver
	location *time.Location
}

// NewContextHandler creates a handler. loc is the zone for "now" values
// given without an offset.
func NewContextHandler(r resolver.ContextResolver, loc *time.Location) *ContextHandler {
	return &ContextHandler{
		resolver: r,
		location: loc,
	}
}

func (h *ContextHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	lat, lon, err := api.ParseCoordinates(params)
	if err != nil {
		var invalidCoordErr api.InvalidCoordinatesError
		if errors.As(err, &invalidCoordErr) {
			return api.Error(err.Error(), http.StatusBadRequest)
		}
		return api.Error("Invalid parameters", http.StatusBadRequest)
	}

	ref, err := api.ParseReferenceTime(params, h.location)
	if err != nil {
		return api.Error(err.Error(), http.StatusBadRequest)
	}

	c, err := h.resolver.Resolve(ctx, lat, lon, ref)
	if err != nil {
		log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Error resolving marine context")
		if errors.Is(err, feed.ErrFetchFailed) {
			return api.Error("Upstream feed unavailable", http.StatusInternalServerError)
		}
		return api.Error("Error resolving marine context", http.StatusInternalServerError)
	}

	if err := c.Validate(); err != nil {
		log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Resolved context failed validation")
		return api.Error("Error resolving marine context", http.StatusInternalServerError)
	}

	return api.Success(api.NewContextResponse(c))
}
