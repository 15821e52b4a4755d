package tide

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/happybada/marinecontext/internal/models"
)

// Event is one high or low water entry from the daily tide schedule.
type Event struct {
	Time    models.Clock
	LevelCm int
}

var (
	clockPrefix = regexp.MustCompile(`^(\d{1,2}:\d{2})`)
	levelGroup  = regexp.MustCompile(`\((-?\d+)\)`)
)

// ParseEvent reads strings such as "08:32 (105) ▲+33". The leading clock and a
// parenthesized level are both required; when several parenthesized numbers
// appear the last one is the level.
func ParseEvent(raw string) (Event, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Event{}, false
	}

	prefix := clockPrefix.FindStringSubmatch(raw)
	if prefix == nil {
		return Event{}, false
	}
	clock, err := models.ParseClock(prefix[1])
	if err != nil {
		return Event{}, false
	}

	groups := levelGroup.FindAllStringSubmatch(raw, -1)
	if len(groups) == 0 {
		return Event{}, false
	}
	level, err := strconv.Atoi(groups[len(groups)-1][1])
	if err != nil {
		return Event{}, false
	}

	return Event{Time: clock, LevelCm: level}, true
}

// ParseEvents parses each raw entry, drops the ones that do not parse and
// returns the rest in time-of-day order.
func ParseEvents(raws ...string) []Event {
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		if e, ok := ParseEvent(raw); ok {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events
}
