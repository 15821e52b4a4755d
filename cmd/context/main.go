package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/happybada/marinecontext/internal/api"
	"github.com/happybada/marinecontext/internal/config"
	"github.com/happybada/marinecontext/internal/feed"
	"github.com/happybada/marinecontext/internal/handler"
	"github.com/happybada/marinecontext/internal/observability"
	"github.com/happybada/marinecontext/internal/resolver"
	"github.com/happybada/marinecontext/pkg/http/client"
)

var (
	lambdaStart    = lambda.Start // Allow mocking of lambda.Start in tests
	contextHandler *handler.ContextHandler
	setupErr       error
	setupOnce      sync.Once
)

func initializeService() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	cfg.InitializeLogging()
	if err := cfg.Validate(); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	httpClient := client.New(client.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
	})
	metrics := observability.NewMetrics(nil)
	fetcher := feed.NewFetcher(httpClient, metrics)

	svc, err := resolver.NewService(cfg, fetcher, nil, metrics)
	if err != nil {
		return err
	}

	contextHandler = handler.NewContextHandler(svc, loc)
	return nil
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	setupOnce.Do(func() {
		setupErr = initializeService()
	})
	if setupErr != nil {
		log.Error().Err(setupErr).Msg("Failed to initialize context service")
		return api.Error("Service misconfigured", http.StatusInternalServerError)
	}

	log.Info().Msg("Handling context request")
	return contextHandler.HandleRequest(ctx, request)
}

func main() {
	lambdaStart(handleRequest)
}
