// Package selector reduces a feed's array of records to the single record the
// resolver reads from. Every selector falls back instead of failing: to the
// first record when nothing qualifies, and to record.Empty when there are no
// records at all.
package selector

import "github.com/happybada/marinecontext/internal/record"

// Extremum returns the item whose score is best under better. Items whose
// score reports false are skipped. On ties the earliest item is kept.
func Extremum[T any](items []T, score func(T) (float64, bool), better func(a, b float64) bool) (T, bool) {
	var (
		best      T
		bestScore float64
		found     bool
	)
	for _, it := range items {
		s, ok := score(it)
		if !ok {
			continue
		}
		if !found || better(s, bestScore) {
			best, bestScore, found = it, s, true
		}
	}
	return best, found
}

func Less(a, b float64) bool    { return a < b }
func Greater(a, b float64) bool { return a > b }

// pick applies Extremum to an array record and substitutes the first element,
// or record.Empty, when nothing was selected.
func pick(records record.Value, score func(record.Value) (float64, bool), better func(a, b float64) bool) record.Value {
	items := records.Elements()
	if len(items) == 0 {
		return record.Empty
	}
	if best, ok := Extremum(items, score, better); ok {
		return best
	}
	return items[0]
}
