package selector

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/happybada/marinecontext/internal/record"
)

// Field names as published by the upstream feeds.
const (
	TideDateField      = "pThisDate"
	ObservedAtField    = "aplYmdt"
	ForecastTimeField  = "ymdt"
	StationLatField    = "lat"
	StationLonField    = "lon"
	forecastTimeLayout = "2006010215"
	earthRadiusKm      = 6371.0
)

// PickTideForDate returns the first record dated on date's calendar day, read
// from a "YYYY-MM-DD" field.
func PickTideForDate(records record.Value, date time.Time) record.Value {
	y, m, d := date.Date()
	return pick(records, func(r record.Value) (float64, bool) {
		ry, rm, rd, ok := parseDate(r.Loose(TideDateField))
		if !ok || ry != y || rm != int(m) || rd != d {
			return 0, false
		}
		return 1, true
	}, Greater)
}

// PickLatestByTimestamp returns the record with the greatest integer
// timestamp. A missing or malformed timestamp counts as zero.
func PickLatestByTimestamp(records record.Value) record.Value {
	return pick(records, func(r record.Value) (float64, bool) {
		n, ok := r.Loose(ObservedAtField).Int()
		if !ok {
			return 0, true
		}
		return float64(n), true
	}, Greater)
}

// PickClosestForecast returns the record whose "YYYYMMDDHH" slot is closest to
// ref, measured in whole minutes. Slots are read in ref's location.
func PickClosestForecast(records record.Value, ref time.Time) record.Value {
	return pick(records, func(r record.Value) (float64, bool) {
		slot, ok := ParseForecastTime(r.Loose(ForecastTimeField), ref.Location())
		if !ok {
			return 0, false
		}
		return math.Abs(float64(slot.Sub(ref) / time.Minute)), true
	}, Less)
}

// PickNearestStation returns the record whose own coordinates are closest to
// lat/lon along the great circle.
func PickNearestStation(records record.Value, lat, lon float64) record.Value {
	return pick(records, func(r record.Value) (float64, bool) {
		rlat, ok := r.Loose(StationLatField).Float()
		if !ok {
			return 0, false
		}
		rlon, ok := r.Loose(StationLonField).Float()
		if !ok {
			return 0, false
		}
		return HaversineKm(lat, lon, rlat, rlon), true
	}, Less)
}

// ParseForecastTime reads the first ten characters of v as an hour slot.
func ParseForecastTime(v record.Value, loc *time.Location) (time.Time, bool) {
	s, ok := v.Text()
	s = strings.TrimSpace(s)
	if !ok || len(s) < len(forecastTimeLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(forecastTimeLayout, s[:len(forecastTimeLayout)], loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func parseDate(v record.Value) (y, m, d int, ok bool) {
	s, ok := v.Text()
	if !ok {
		return 0, 0, 0, false
	}
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 3 {
		return 0, 0, 0, false
	}
	var err error
	if y, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if m, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if d, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return y, m, d, true
}
