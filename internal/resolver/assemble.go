package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/happybada/marinecontext/internal/config"
	"github.com/happybada/marinecontext/internal/feed"
	"github.com/happybada/marinecontext/internal/models"
	"github.com/happybada/marinecontext/internal/record"
	"github.com/happybada/marinecontext/internal/selector"
	"github.com/happybada/marinecontext/internal/sun"
	"github.com/happybada/marinecontext/internal/tide"
)

// Feed field names.
const (
	fieldSun         = "pSun"
	fieldWeather     = "weather"
	fieldSky         = "sky"
	fieldTemp        = "temp"
	fieldWindSpeed   = "windspd"
	fieldWindDir     = "winddir"
	fieldWaveProxy   = "pago"
	fieldWavePeriod  = "wavePrd"
	fieldWaveHeight  = "waveHt"
	fieldWaveDir     = "waveDir"
	fieldWaterTemp   = "obs_wt"
	tideEventFields  = 4
	tideEventPattern = "pTime%d"
)

// observation is the weather reading shared by the current and forecast feeds.
type observation struct {
	sky        *string
	airTemp    *string
	windSpeed  *string
	windDir    *string
	waveHeight *string
}

func (s *Service) assemble(p feedPayloads, lat, lon float64, now time.Time) *models.Context {
	ref := models.ClockOf(now)

	todayTide := selector.PickTideForDate(p[feed.KindTide], now)
	nextTide := tide.NextTide(tideEvents(todayTide), ref)
	nextSun := sun.NextSun(s.sunTimes(todayTide, lat, lon, now), ref)

	current := currentObservation(p[feed.KindCurrent])

	fcPick := selector.PickClosestForecast(p[feed.KindForecast], now)
	forecast := observation{
		sky:        fcPick.Loose(fieldSky).OptText(),
		airTemp:    fcPick.Loose(fieldTemp).OptText(),
		windSpeed:  fcPick.Loose(fieldWindSpeed).OptText(),
		windDir:    fcPick.Loose(fieldWindDir).OptText(),
		waveHeight: fcPick.Loose(fieldWaveHeight).OptText(),
	}

	station := selector.PickNearestStation(p[feed.KindTemp], lat, lon)

	c := &models.Context{
		WaveHeight:    firstNonBlank(forecast.waveHeight, current.waveHeight),
		WavePeriod:    fcPick.Loose(fieldWavePeriod).OptText(),
		WaveDirection: fcPick.Loose(fieldWaveDir).OptText(),
		WindSpeed:     firstNonBlank(forecast.windSpeed, current.windSpeed),
		WindDirection: firstNonBlank(forecast.windDir, current.windDir),
		WaterTemp:     station.Field(fieldWaterTemp).OptText(),
		Sky:           firstNonBlank(forecast.sky, current.sky),
		AirTemp:       firstNonBlank(forecast.airTemp, current.airTemp),
		NextTide:      nextTide,
		NextSun:       nextSun,
		ReferenceTime: FormatReferenceTime(now, s.locale),
	}

	if v, ok := p[feed.KindVisibility]; ok {
		c.Visibility = VisibilityKm(v, now)
	}

	return c
}

func tideEvents(todayTide record.Value) []tide.Event {
	raws := make([]string, 0, tideEventFields)
	for i := 1; i <= tideEventFields; i++ {
		if raw, ok := todayTide.Field(fmt.Sprintf(tideEventPattern, i)).Text(); ok {
			raws = append(raws, raw)
		}
	}
	return tide.ParseEvents(raws...)
}

// sunTimes is the tide record's sunrise/sunset pair, or a locally computed
// one when the fallback is on and the record has none.
func (s *Service) sunTimes(todayTide record.Value, lat, lon float64, now time.Time) *string {
	raw := todayTide.Field(fieldSun).OptText()
	if !s.sunFallback {
		return raw
	}
	if raw != nil {
		if _, _, ok := sun.Parse(*raw); ok {
			return raw
		}
	}
	computed := sun.Astronomical(lat, lon, now)
	return &computed
}

func currentObservation(currentObj record.Value) observation {
	pick := selector.PickLatestByTimestamp(currentObj.Field(fieldWeather))
	return observation{
		sky:        pick.Field(fieldSky).OptText(),
		airTemp:    pick.Field(fieldTemp).OptText(),
		windSpeed:  pick.Field(fieldWindSpeed).OptText(),
		windDir:    pick.Field(fieldWindDir).OptText(),
		waveHeight: pick.Field(fieldWaveProxy).OptText(),
	}
}

// firstNonBlank returns the first value that is present and not whitespace.
func firstNonBlank(values ...*string) *string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}

// FormatReferenceTime renders t as "<marker> hh:mm" on a 12-hour clock, e.g.
// "오후 01:10" or "PM 01:10".
func FormatReferenceTime(t time.Time, locale string) string {
	am, pm := "오전", "오후"
	if locale == config.LocaleEnglish {
		am, pm = "AM", "PM"
	}

	marker := am
	if t.Hour() >= 12 {
		marker = pm
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %02d:%02d", marker, hour, t.Minute())
}
