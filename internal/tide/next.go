package tide

import "github.com/happybada/marinecontext/internal/models"

const secondsPerDay = 24 * 60 * 60

// NextTide picks the first event at or after ref. When every event has already
// passed it wraps to the earliest one, read as tomorrow's. Labels come from
// the day's extremes: the highest level is high, the lowest is low, anything
// in between is mid.
//
// events must be sorted by time, as returned by ParseEvents.
func NextTide(events []Event, ref models.Clock) *models.NextTide {
	if len(events) == 0 {
		return nil
	}

	lo, hi := events[0].LevelCm, events[0].LevelCm
	for _, e := range events[1:] {
		lo = min(lo, e.LevelCm)
		hi = max(hi, e.LevelCm)
	}

	next := events[0]
	for _, e := range events {
		if !e.Time.Before(ref) {
			next = e
			break
		}
	}

	label := models.TideLabelMid
	switch next.LevelCm {
	case hi:
		label = models.TideLabelHigh
	case lo:
		label = models.TideLabelLow
	}

	left := next.Time.Seconds() - ref.Seconds()
	if left < 0 {
		left += secondsPerDay
	}

	return &models.NextTide{
		Label:     label,
		HoursLeft: left / 3600,
		LevelCm:   next.LevelCm,
		EventTime: next.Time,
	}
}
