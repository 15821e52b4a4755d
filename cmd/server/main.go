package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/happybada/marinecontext/internal/config"
	"github.com/happybada/marinecontext/internal/feed"
	"github.com/happybada/marinecontext/internal/handler"
	"github.com/happybada/marinecontext/internal/observability"
	"github.com/happybada/marinecontext/internal/resolver"
	"github.com/happybada/marinecontext/pkg/http/client"
)

const shutdownTimeout = 10 * time.Second

type lambdaHandler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// serveLambda runs a proxy-style handler behind a plain HTTP route.
func serveLambda(h lambdaHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := make(map[string]string)
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		response, err := h(r.Context(), events.APIGatewayProxyRequest{
			HTTPMethod:            r.Method,
			Path:                  r.URL.Path,
			QueryStringParameters: params,
		})
		if err != nil {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("Handler failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		for key, value := range response.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(response.StatusCode)
		_, _ = w.Write([]byte(response.Body))
	}
}

func newRouter(contextHandler *handler.ContextHandler, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)

	r.HandleFunc("/api/v1/context", serveLambda(contextHandler.HandleRequest)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			log.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("Served request")
		})
	})

	return r
}

func run(ctx context.Context, cfg *config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	fetcher := feed.NewFetcher(client.New(client.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		ReadTimeout:    cfg.ReadTimeout,
	}), metrics)

	svc, err := resolver.NewService(cfg, fetcher, nil, metrics)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      newRouter(handler.NewContextHandler(svc, loc), registry),
		Addr:         cfg.HTTPAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Listening and serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.InitializeLogging()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
