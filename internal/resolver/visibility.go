package resolver

import (
	"fmt"
	"math"
	"time"

	"github.com/happybada/marinecontext/internal/record"
	"github.com/happybada/marinecontext/internal/selector"
)

// Open-Meteo hourly timestamps carry no offset when requested with timezone=auto.
const hourlyTimeLayout = "2006-01-02T15:04"

// VisibilityKm picks the hourly visibility entry closest to now and renders it
// in kilometres with one decimal. The times and values arrays must line up.
func VisibilityKm(root record.Value, now time.Time) *string {
	hourly := root.Field("hourly")
	times := hourly.Field("time")
	values := hourly.Field("visibility")
	if !times.IsArray() || !values.IsArray() || times.Len() == 0 || times.Len() != values.Len() {
		return nil
	}

	indexes := make([]int, times.Len())
	for i := range indexes {
		indexes[i] = i
	}

	best, ok := selector.Extremum(indexes, func(i int) (float64, bool) {
		raw, ok := times.Index(i).Text()
		if !ok {
			return 0, false
		}
		t, err := time.ParseInLocation(hourlyTimeLayout, raw, now.Location())
		if err != nil {
			return 0, false
		}
		return math.Abs(float64(t.Sub(now) / time.Minute)), true
	}, selector.Less)
	if !ok {
		best = 0
	}

	meters, ok := values.Index(best).Float()
	if !ok {
		return nil
	}
	km := fmt.Sprintf("%.1f", meters/1000)
	return &km
}
