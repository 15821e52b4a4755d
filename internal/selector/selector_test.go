package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happybada/marinecontext/internal/record"
)

var seoul = time.FixedZone("KST", 9*3600)

func decode(t *testing.T, s string) record.Value {
	t.Helper()
	v, err := record.Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func text(t *testing.T, v record.Value, key string) string {
	t.Helper()
	s, ok := v.Loose(key).Text()
	require.True(t, ok, "field %s missing", key)
	return s
}

func TestExtremum(t *testing.T) {
	items := []int{5, 3, 9, 3, -1, 9}
	score := func(i int) (float64, bool) {
		if i < 0 {
			return 0, false
		}
		return float64(i), true
	}

	got, ok := Extremum(items, score, Less)
	require.True(t, ok)
	assert.Equal(t, 3, got)

	got, ok = Extremum(items, score, Greater)
	require.True(t, ok)
	assert.Equal(t, 9, got)

	_, ok = Extremum([]int{-1, -2}, score, Less)
	assert.False(t, ok)

	_, ok = Extremum[int](nil, score, Less)
	assert.False(t, ok)
}

func TestExtremumKeepsEarliestOnTie(t *testing.T) {
	type item struct {
		id    string
		score float64
	}
	items := []item{{"a", 2}, {"b", 1}, {"c", 1}}

	got, ok := Extremum(items, func(i item) (float64, bool) { return i.score, true }, Less)
	require.True(t, ok)
	assert.Equal(t, "b", got.id)
}

func TestPickTideForDate(t *testing.T) {
	records := decode(t, `[
		{"pThisDate": "2025-08-22", "pTime1": "a"},
		{"pThisDate": "2025-8-23", "pTime1": "b"},
		{"pThisDate": "2025-08-23", "pTime1": "c"}
	]`)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "matches unpadded date first", date: time.Date(2025, 8, 23, 13, 10, 0, 0, seoul), want: "b"},
		{name: "matches first record", date: time.Date(2025, 8, 22, 0, 0, 0, 0, seoul), want: "a"},
		{name: "no match falls back to first", date: time.Date(2025, 9, 1, 0, 0, 0, 0, seoul), want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickTideForDate(records, tt.date)
			assert.Equal(t, tt.want, text(t, got, "pTime1"))
		})
	}
}

func TestPickTideForDateSkipsMalformedDates(t *testing.T) {
	records := decode(t, `[
		{"pThisDate": "20250823", "pTime1": "compact"},
		{"pTime1": "missing"},
		{"pThisDate": "2025-08-23T00:00", "pTime1": "suffix"},
		{"pThisDate": "2025-08-23", "pTime1": "good"}
	]`)

	got := PickTideForDate(records, time.Date(2025, 8, 23, 0, 0, 0, 0, seoul))
	assert.Equal(t, "good", text(t, got, "pTime1"))
}

func TestPickLatestByTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		records string
		want    string
	}{
		{
			name:    "maximum wins",
			records: `[{"aplYmdt": "2025082310", "sky": "a"}, {"aplYmdt": "2025082312", "sky": "b"}, {"aplYmdt": "2025082311", "sky": "c"}]`,
			want:    "b",
		},
		{
			name:    "numeric timestamps",
			records: `[{"aplYmdt": 202508231000, "sky": "a"}, {"aplYmdt": 202508231200, "sky": "b"}]`,
			want:    "b",
		},
		{
			name:    "ties keep earliest",
			records: `[{"aplYmdt": "5", "sky": "a"}, {"aplYmdt": "7", "sky": "b"}, {"aplYmdt": "7", "sky": "c"}]`,
			want:    "b",
		},
		{
			name:    "malformed counts as zero",
			records: `[{"aplYmdt": "x", "sky": "a"}, {"sky": "b"}]`,
			want:    "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickLatestByTimestamp(decode(t, tt.records))
			assert.Equal(t, tt.want, text(t, got, "sky"))
		})
	}
}

func TestPickClosestForecast(t *testing.T) {
	records := decode(t, `[
		{"ymdt": "2025082310", "sky": "ten"},
		{"ymdt": "2025082312", "sky": "noon"},
		{"ymdt": "2025082315", "sky": "three"}
	]`)

	ref := time.Date(2025, 8, 23, 13, 10, 0, 0, seoul)
	got := PickClosestForecast(records, ref)
	assert.Equal(t, "noon", text(t, got, "sky"))
}

func TestPickClosestForecastLooseAndSkips(t *testing.T) {
	records := decode(t, `[
		{"ymdt": "20250823", "sky": "short"},
		{"ymdt": "YYYYMMDDHH", "sky": "garbage"},
		{"\u200bymdt": "2025082318", "sky": "zero width key"},
		{"ymdt": "2025082316", "sky": "four"}
	]`)

	got := PickClosestForecast(records, time.Date(2025, 8, 23, 17, 30, 0, 0, seoul))
	// 18:00 and 16:00 are 30 and 90 minutes away.
	assert.Equal(t, "zero width key", text(t, got, "sky"))
}

func TestPickClosestForecastCollidingKeysAreStable(t *testing.T) {
	body := `[
		{"ymdt": "2025082309", "sky": "morning"},
		{"ymdt": "2025082313", "wave_ht": "0.5", "WAVE-HT": "1.5", "wave.ht": "2.5", "wave ht": "3.5"}
	]`
	ref := time.Date(2025, 8, 23, 13, 10, 0, 0, seoul)

	for i := 0; i < 200; i++ {
		got := PickClosestForecast(decode(t, body), ref)
		require.Equal(t, "0.5", text(t, got, "waveHt"), "iteration %d", i)
	}
}

func TestPickClosestForecastTieKeepsEarliest(t *testing.T) {
	records := decode(t, `[{"ymdt": "2025082312", "sky": "noon"}, {"ymdt": "2025082314", "sky": "two"}]`)

	got := PickClosestForecast(records, time.Date(2025, 8, 23, 13, 0, 0, 0, seoul))
	assert.Equal(t, "noon", text(t, got, "sky"))
}

func TestPickClosestForecastAllSkippedFallsBackToFirst(t *testing.T) {
	records := decode(t, `[{"ymdt": "bad", "sky": "first"}, {"sky": "second"}]`)

	got := PickClosestForecast(records, time.Date(2025, 8, 23, 13, 0, 0, 0, seoul))
	assert.Equal(t, "first", text(t, got, "sky"))
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 111.1949, HaversineKm(0, 0, 0, 1), 0.001)
	assert.InDelta(t, 13.6078, HaversineKm(35.1595, 129.1626, 35.0968, 129.0341), 0.001)
	assert.InDelta(t, 9.1311, HaversineKm(35.1595, 129.1626, 35.2000, 129.2500), 0.001)
	assert.Zero(t, HaversineKm(35.1595, 129.1626, 35.1595, 129.1626))
}

func TestPickNearestStation(t *testing.T) {
	records := decode(t, `[
		{"obs_post_name": "Busan", "lat": "35.0968", "lon": "129.0341", "obs_wt": "24.1"},
		{"obs_post_name": "Haeundae", "lat": 35.2, "lon": 129.25, "obs_wt": "23.6"},
		{"obs_post_name": "Tongyeong", "lat": "34.8", "lon": "128.9", "obs_wt": "25.0"}
	]`)

	// 9.13 km to Haeundae against 13.61 km to Busan.
	got := PickNearestStation(records, 35.1595, 129.1626)
	assert.Equal(t, "Haeundae", text(t, got, "obs_post_name"))
}

func TestPickNearestStationSkipsBadCoordinates(t *testing.T) {
	records := decode(t, `[
		{"obs_post_name": "no coords"},
		{"obs_post_name": "bad lat", "lat": "n/a", "lon": "129.16"},
		{"obs_post_name": "far", "lat": "34.8", "lon": "128.9"}
	]`)

	got := PickNearestStation(records, 35.1595, 129.1626)
	assert.Equal(t, "far", text(t, got, "obs_post_name"))

	allBad := decode(t, `[{"obs_post_name": "first"}, {"obs_post_name": "second", "lat": ""}]`)
	got = PickNearestStation(allBad, 35.1595, 129.1626)
	assert.Equal(t, "first", text(t, got, "obs_post_name"))
}

func TestSelectorsOnEmptyInput(t *testing.T) {
	ref := time.Date(2025, 8, 23, 13, 0, 0, 0, seoul)

	for name, records := range map[string]record.Value{
		"empty array": decode(t, `[]`),
		"object":      decode(t, `{"weather": []}`),
		"absent":      {},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, record.Empty, PickTideForDate(records, ref))
			assert.Equal(t, record.Empty, PickLatestByTimestamp(records))
			assert.Equal(t, record.Empty, PickClosestForecast(records, ref))
			assert.Equal(t, record.Empty, PickNearestStation(records, 35, 129))
		})
	}
}
