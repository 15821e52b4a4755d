package feed

import (
	"net/url"
	"strconv"
	"strings"
)

// Kind names one upstream feed.
type Kind string

const (
	KindTide       Kind = "tide"
	KindCurrent    Kind = "current"
	KindForecast   Kind = "forecast"
	KindTemp       Kind = "temp"
	KindVisibility Kind = "visibility"
)

// Kinds are the four feeds every resolution needs.
var Kinds = []Kind{KindTide, KindCurrent, KindForecast, KindTemp}

const redacted = "REDACTED"

// Endpoints builds feed URLs from the configured base addresses and credential.
type Endpoints struct {
	BaseURL          string
	APIKey           string
	OpenMeteoBaseURL string
}

// URL returns the request address of kind for the given coordinates.
func (e Endpoints) URL(kind Kind, lat, lon float64) string {
	if kind == KindVisibility {
		q := url.Values{}
		q.Set("latitude", formatCoord(lat))
		q.Set("longitude", formatCoord(lon))
		q.Set("hourly", "visibility")
		q.Set("timezone", "auto")
		q.Set("past_days", "1")
		q.Set("forecast_days", "1")
		return e.OpenMeteoBaseURL + "?" + q.Encode()
	}

	q := url.Values{}
	q.Set("lat", formatCoord(lat))
	q.Set("lon", formatCoord(lon))
	q.Set("key", e.APIKey)
	return strings.TrimRight(e.BaseURL, "/") + "/" + string(kind) + "?" + q.Encode()
}

// Redact hides the credential in a feed URL so it can be logged.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get("key") == "" {
		return rawURL
	}
	q.Set("key", redacted)
	u.RawQuery = q.Encode()
	return u.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
