package stats

import (
	"time"

	"fleetstats-service/internal/model"
)

// ResolveWindow maps a period selector to an inclusive [From, To] interval.
// Any selector yields a valid window; there are no error cases.
//   - month: first through last calendar day of (year, month)
//   - year:  first through last calendar day of the year
//   - all:   the company epoch through the current instant
func ResolveWindow(p model.Period, now, epoch time.Time) model.DateRange {
	p = p.Normalize(now)
	switch p.Kind {
	case model.RangeYear:
		start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return model.DateRange{
			From: start,
			To:   start.AddDate(1, 0, 0).Add(-time.Nanosecond),
		}
	case model.RangeAll:
		return model.DateRange{From: epoch, To: now}
	default:
		start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
		return model.DateRange{
			From: start,
			To:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
		}
	}
}

// utilizationDenominator is the calendar length, in days, a vehicle could have
// been rented within the selected period. The year figure is a fixed 365-day
// approximation regardless of leap years.
func utilizationDenominator(p model.Period, now, epoch time.Time) float64 {
	p = p.Normalize(now)
	switch p.Kind {
	case model.RangeYear:
		return 365
	case model.RangeAll:
		days := now.Sub(epoch).Hours() / 24
		if days < 1 {
			return 1
		}
		return days
	default:
		firstOfNext := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return float64(firstOfNext.AddDate(0, 0, -1).Day())
	}
}
