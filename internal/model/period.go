package model

import "time"

type RangeKind string

const (
	RangeMonth RangeKind = "month"
	RangeYear  RangeKind = "year"
	RangeAll   RangeKind = "all"
)

// DateRange is an inclusive [From, To] interval.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the inclusive range. A zero t is
// never contained; records without a usable date drop out of window filtering.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(r.From) && !t.After(r.To)
}

// Period is the selector owned by the presentation layer. Month is the
// standard 1-based time.Month and is ignored unless Kind is RangeMonth.
type Period struct {
	Kind  RangeKind  `json:"kind"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Normalize coerces out-of-range selector values to a usable period so any
// input produces a valid window.
func (p Period) Normalize(now time.Time) Period {
	switch p.Kind {
	case RangeMonth, RangeYear, RangeAll:
	default:
		p.Kind = RangeMonth
	}
	if p.Year <= 0 {
		p.Year = now.Year()
	}
	if p.Month < time.January || p.Month > time.December {
		p.Month = now.Month()
	}
	return p
}
