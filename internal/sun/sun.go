// Package sun resolves the next sunrise or sunset from the daily "HH:MM/HH:MM"
// pair published with the tide schedule.
package sun

import (
	"fmt"
	"strings"
	"time"

	"github.com/keep94/sunrise"

	"github.com/happybada/marinecontext/internal/models"
)

// Parse splits "06:10/19:40" into sunrise and sunset.
func Parse(raw string) (rise, set models.Clock, ok bool) {
	riseStr, setStr, found := strings.Cut(raw, "/")
	if !found {
		return models.Clock{}, models.Clock{}, false
	}
	rise, err := models.ParseClock(riseStr)
	if err != nil {
		return models.Clock{}, models.Clock{}, false
	}
	set, err = models.ParseClock(setStr)
	if err != nil {
		return models.Clock{}, models.Clock{}, false
	}
	return rise, set, true
}

// NextSun returns sunrise while it is still ahead of ref, then sunset, and
// tomorrow's sunrise once both have passed.
func NextSun(raw *string, ref models.Clock) *models.NextSun {
	if raw == nil {
		return nil
	}
	rise, set, ok := Parse(*raw)
	if !ok {
		return nil
	}

	switch {
	case !rise.Before(ref):
		return &models.NextSun{Label: models.SunLabelSunrise, Time: rise}
	case !set.Before(ref):
		return &models.NextSun{Label: models.SunLabelSunset, Time: set}
	default:
		return &models.NextSun{Label: models.SunLabelSunrise, Time: rise}
	}
}

// Astronomical computes the sunrise/sunset pair for the calendar day of day
// at lat/lon, rendered in day's location in the same form the tide feed uses.
func Astronomical(lat, lon float64, day time.Time) string {
	var s sunrise.Sunrise
	s.Around(lat, lon, day)

	// Around may settle on a neighbouring day.
	for i := 0; i < 3 && !sameDay(s.Sunrise().In(day.Location()), day); i++ {
		if s.Sunrise().Before(day) {
			s.AddDays(1)
		} else {
			s.AddDays(-1)
		}
	}

	rise := s.Sunrise().In(day.Location())
	set := s.Sunset().In(day.Location())
	return fmt.Sprintf("%s/%s", models.ClockOf(rise), models.ClockOf(set))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
