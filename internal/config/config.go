package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MinWorkers is the smallest fetch pool that lets all four feeds run at once.
const MinWorkers = 4

const (
	LocaleKorean  = "ko"
	LocaleEnglish = "en"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level

	BadaBaseURL      string
	BadaAPIKey       string
	OpenMeteoBaseURL string
	ConnectTimeout   time.Duration
	ReadTimeout      time.Duration
	Workers          int

	TimeZone          string
	Locale            string
	SunFallback       bool
	VisibilityEnabled bool

	HTTPAddr string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithBadaAPI sets the feed base address and access key
func WithBadaAPI(baseURL, apiKey string) Option {
	return func(c *Config) {
		if baseURL != "" {
			c.BadaBaseURL = baseURL
		}
		c.BadaAPIKey = apiKey
	}
}

func WithOpenMeteoBaseURL(baseURL string) Option {
	return func(c *Config) {
		if baseURL != "" {
			c.OpenMeteoBaseURL = baseURL
		}
	}
}

// WithTimeouts sets the per-fetch connect and read bounds
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *Config) {
		c.ConnectTimeout = connect
		c.ReadTimeout = read
	}
}

// WithWorkers sizes the fetch pool; values below MinWorkers are raised to it.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = max(n, MinWorkers)
	}
}

func WithTimeZone(zone string) Option {
	return func(c *Config) {
		c.TimeZone = zone
	}
}

func WithLocale(locale string) Option {
	return func(c *Config) {
		c.Locale = locale
	}
}

// WithSunFallback computes sunrise/sunset locally when the tide feed omits them
func WithSunFallback(enabled bool) Option {
	return func(c *Config) {
		c.SunFallback = enabled
	}
}

// WithVisibility adds the hourly visibility feed to every resolution
func WithVisibility(enabled bool) Option {
	return func(c *Config) {
		c.VisibilityEnabled = enabled
	}
}

func WithHTTPAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.HTTPAddr = addr
		}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:      "production",
		LogLevel:         zerolog.InfoLevel,
		BadaBaseURL:      "https://www.badatime.com/DIVE",
		OpenMeteoBaseURL: "https://api.open-meteo.com/v1/forecast",
		ConnectTimeout:   3 * time.Second,
		ReadTimeout:      4 * time.Second,
		Workers:          max(MinWorkers, runtime.NumCPU()),
		TimeZone:         "Asia/Seoul",
		Locale:           LocaleKorean,
		HTTPAddr:         ":8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Validate reports the first setting the engine cannot run with
func (c *Config) Validate() error {
	if c.BadaAPIKey == "" {
		return errors.New("BADA_API_KEY is required")
	}
	if c.BadaBaseURL == "" {
		return errors.New("BADA_BASE_URL is required")
	}
	if c.ConnectTimeout <= 0 || c.ReadTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive: connect=%s read=%s", c.ConnectTimeout, c.ReadTimeout)
	}
	if c.Workers < MinWorkers {
		return fmt.Errorf("at least %d fetch workers are required, got %d", MinWorkers, c.Workers)
	}
	if c.Locale != LocaleKorean && c.Locale != LocaleEnglish {
		return fmt.Errorf("unsupported locale: %s", c.Locale)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location loads the reference time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

type envSpec struct {
	Env               string        `envconfig:"ENV" default:"production"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	BadaBaseURL       string        `envconfig:"BADA_BASE_URL"`
	BadaAPIKey        string        `envconfig:"BADA_API_KEY"`
	OpenMeteoBaseURL  string        `envconfig:"OPEN_METEO_BASE_URL"`
	ConnectTimeout    time.Duration `envconfig:"CONNECT_TIMEOUT" default:"3s"`
	ReadTimeout       time.Duration `envconfig:"READ_TIMEOUT" default:"4s"`
	Workers           int           `envconfig:"FETCH_WORKERS"`
	TimeZone          string        `envconfig:"TIME_ZONE" default:"Asia/Seoul"`
	Locale            string        `envconfig:"LOCALE" default:"ko"`
	SunFallback       bool          `envconfig:"SUN_FALLBACK" default:"false"`
	VisibilityEnabled bool          `envconfig:"VISIBILITY_ENABLED" default:"false"`
	HTTPAddr          string        `envconfig:"HTTP_ADDR"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	var env envSpec
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	opts := []Option{
		WithEnvironment(env.Env),
		WithLogLevel(env.LogLevel),
		WithBadaAPI(env.BadaBaseURL, env.BadaAPIKey),
		WithOpenMeteoBaseURL(env.OpenMeteoBaseURL),
		WithTimeouts(env.ConnectTimeout, env.ReadTimeout),
		WithTimeZone(env.TimeZone),
		WithLocale(env.Locale),
		WithSunFallback(env.SunFallback),
		WithVisibility(env.VisibilityEnabled),
		WithHTTPAddr(env.HTTPAddr),
	}
	if env.Workers > 0 {
		opts = append(opts, WithWorkers(env.Workers))
	}

	return New(opts...), nil
}
