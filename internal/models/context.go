package models

import "fmt"

type TideLabel string

const (
	TideLabelHigh TideLabel = "high"
	TideLabelLow  TideLabel = "low"
	TideLabelMid  TideLabel = "mid"
)

type SunLabel string

const (
	SunLabelSunrise SunLabel = "sunrise"
	SunLabelSunset  SunLabel = "sunset"
)

// NextTide is the next tide event after the reference time
type NextTide struct {
	Label     TideLabel `json:"label"`
	HoursLeft int       `json:"hoursLeft"`
	LevelCm   int       `json:"levelCm"`
	EventTime Clock     `json:"eventTime"`
}

// NextSun is the next sunrise or sunset after the reference time
type NextSun struct {
	Label SunLabel `json:"label"`
	Time  Clock    `json:"time"`
}

// Context is the resolved marine conditions for one location and instant.
// Nil fields mean no feed carried a usable value.
type Context struct {
	WaveHeight    *string   `json:"waveHeight"`
	WavePeriod    *string   `json:"wavePeriod"`
	WaveDirection *string   `json:"waveDirection"`
	WindSpeed     *string   `json:"windSpeed"`
	WindDirection *string   `json:"windDirection"`
	WaterTemp     *string   `json:"waterTemp"`
	Sky           *string   `json:"sky"`
	AirTemp       *string   `json:"airTemp"`
	Visibility    *string   `json:"visibility,omitempty"`
	NextTide      *NextTide `json:"nextTide"`
	NextSun       *NextSun  `json:"nextSun"`
	ReferenceTime string    `json:"referenceTime"`
}

// Validate checks the derived fields hold valid values
func (c *Context) Validate() error {
	if c.ReferenceTime == "" {
		return fmt.Errorf("reference time is required")
	}

	if c.NextTide != nil {
		switch c.NextTide.Label {
		case TideLabelHigh, TideLabelLow, TideLabelMid:
		default:
			return fmt.Errorf("invalid tide label: %s", c.NextTide.Label)
		}
		if c.NextTide.HoursLeft < 0 || c.NextTide.HoursLeft > 24 {
			return fmt.Errorf("invalid hours left: %d", c.NextTide.HoursLeft)
		}
	}

	if c.NextSun != nil {
		switch c.NextSun.Label {
		case SunLabelSunrise, SunLabelSunset:
		default:
			return fmt.Errorf("invalid sun label: %s", c.NextSun.Label)
		}
	}

	return nil
}
