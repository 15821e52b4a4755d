package tide

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happybada/marinecontext/internal/models"
)

func clock(h, m int) models.Clock {
	return models.Clock{Hour: h, Minute: m}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Event
		wantOK bool
	}{
		{name: "feed format", raw: "08:32 (105) ▲+33", want: Event{Time: clock(8, 32), LevelCm: 105}, wantOK: true},
		{name: "no space before level", raw: "06:00(120)", want: Event{Time: clock(6, 0), LevelCm: 120}, wantOK: true},
		{name: "leading whitespace", raw: "  14:00 (50)", want: Event{Time: clock(14, 0), LevelCm: 50}, wantOK: true},
		{name: "negative level", raw: "02:10 (-5) ▼-40", want: Event{Time: clock(2, 10), LevelCm: -5}, wantOK: true},
		{name: "last group wins", raw: "09:00 (3) (98)", want: Event{Time: clock(9, 0), LevelCm: 98}, wantOK: true},
		{name: "blank", raw: "   "},
		{name: "empty", raw: ""},
		{name: "no level", raw: "08:32 105"},
		{name: "non integer level", raw: "08:32 (1.5)"},
		{name: "no clock", raw: "(105) 08:32"},
		{name: "invalid hour", raw: "25:10 (100)"},
		{name: "dash placeholder", raw: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEvent(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseEventsSorted(t *testing.T) {
	got := ParseEvents("14:00 (50)", "06:00(120)")
	want := []Event{
		{Time: clock(6, 0), LevelCm: 120},
		{Time: clock(14, 0), LevelCm: 50},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseEvents() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEventsDropsFailures(t *testing.T) {
	got := ParseEvents("", "23:30 (28)", "garbage", "12:00 (30)")
	want := []Event{
		{Time: clock(12, 0), LevelCm: 30},
		{Time: clock(23, 30), LevelCm: 28},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseEvents() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, ParseEvents())
	assert.Empty(t, ParseEvents("", "nope"))
}

func fourEvents() []Event {
	return []Event{
		{Time: clock(6, 0), LevelCm: 120},
		{Time: clock(12, 0), LevelCm: 30},
		{Time: clock(18, 0), LevelCm: 125},
		{Time: clock(23, 30), LevelCm: 28},
	}
}

func TestNextTide(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		ref    models.Clock
		want   *models.NextTide
	}{
		{
			name:   "upcoming low tide",
			events: fourEvents(),
			ref:    clock(20, 0),
			want:   &models.NextTide{Label: models.TideLabelLow, HoursLeft: 3, LevelCm: 28, EventTime: clock(23, 30)},
		},
		{
			name:   "upcoming high tide",
			events: fourEvents(),
			ref:    clock(13, 0),
			want:   &models.NextTide{Label: models.TideLabelHigh, HoursLeft: 5, LevelCm: 125, EventTime: clock(18, 0)},
		},
		{
			name:   "event exactly at reference",
			events: fourEvents(),
			ref:    clock(12, 0),
			want:   &models.NextTide{Label: models.TideLabelMid, HoursLeft: 0, LevelCm: 30, EventTime: clock(12, 0)},
		},
		{
			// 125 at 18:00 is the day's maximum, so 06:00 is neither extreme.
			name:   "wrap after last event",
			events: fourEvents(),
			ref:    clock(23, 45),
			want:   &models.NextTide{Label: models.TideLabelMid, HoursLeft: 6, LevelCm: 120, EventTime: clock(6, 0)},
		},
		{
			name: "wrap to the daily high",
			events: []Event{
				{Time: clock(6, 0), LevelCm: 120},
				{Time: clock(12, 0), LevelCm: 30},
				{Time: clock(18, 0), LevelCm: 118},
				{Time: clock(23, 30), LevelCm: 28},
			},
			ref:  clock(23, 45),
			want: &models.NextTide{Label: models.TideLabelHigh, HoursLeft: 6, LevelCm: 120, EventTime: clock(6, 0)},
		},
		{
			name:   "hours are truncated including seconds",
			events: fourEvents(),
			ref:    models.Clock{Hour: 20, Minute: 30, Second: 30},
			want:   &models.NextTide{Label: models.TideLabelLow, HoursLeft: 2, LevelCm: 28, EventTime: clock(23, 30)},
		},
		{
			name:   "single event is high",
			events: []Event{{Time: clock(9, 15), LevelCm: 80}},
			ref:    clock(10, 0),
			want:   &models.NextTide{Label: models.TideLabelHigh, HoursLeft: 23, LevelCm: 80, EventTime: clock(9, 15)},
		},
		{
			name:   "no events",
			events: nil,
			ref:    clock(10, 0),
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextTide(tt.events, tt.ref)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NextTide() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNextTideHoursNeverNegative(t *testing.T) {
	events := fourEvents()
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 7 {
			got := NextTide(events, clock(h, m))
			require.NotNil(t, got)
			assert.GreaterOrEqual(t, got.HoursLeft, 0)
			assert.Less(t, got.HoursLeft, 24)
		}
	}
}
