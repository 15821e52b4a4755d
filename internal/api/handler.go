package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/happybada/marinecontext/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type ContextResponse struct {
	APIResponse
	Context *models.Context `json:"context"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewContextResponse(c *models.Context) *ContextResponse {
	return &ContextResponse{
		APIResponse: APIResponse{ResponseType: "context"},
		Context:     c,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers(),
		Body:       string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers(),
		Body:       string(body),
	}, nil
}

func headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

// Parameter parsing helpers

// ParseCoordinates reads the required lat and lon query parameters.
func ParseCoordinates(params map[string]string) (float64, float64, error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat || !hasLon {
		return 0, 0, InvalidCoordinatesError{Reason: "lat and lon are required"}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, InvalidCoordinatesError{Reason: fmt.Sprintf("lat %q is not a number", latStr)}
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return 0, 0, InvalidCoordinatesError{Reason: fmt.Sprintf("lon %q is not a number", lonStr)}
	}

	if !finite(lat) || !finite(lon) {
		return 0, 0, InvalidCoordinatesError{Reason: "not a finite number"}
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, InvalidCoordinatesError{Reason: "out of range"}
	}

	return lat, lon, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Layouts accepted for the optional "now" parameter. Values without an
// offset are read in the caller's zone.
const (
	localDateTimeLayout = "2006-01-02T15:04:05"
	localMinuteLayout   = "2006-01-02T15:04"
)

// ParseReferenceTime reads the optional "now" parameter. A missing or empty
// value yields nil so the resolver uses the current instant.
func ParseReferenceTime(params map[string]string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(params["now"])
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	for _, layout := range []string{localDateTimeLayout, localMinuteLayout} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t, nil
		}
	}

	return nil, InvalidTimeError{Value: raw}
}

type InvalidCoordinatesError struct {
	Reason string
}

func (e InvalidCoordinatesError) Error() string {
	if e.Reason == "" {
		return "Invalid coordinates"
	}
	return "Invalid coordinates: " + e.Reason
}

type InvalidTimeError struct {
	Value string
}

func (e InvalidTimeError) Error() string {
	return fmt.Sprintf("Invalid reference time: %q", e.Value)
}
