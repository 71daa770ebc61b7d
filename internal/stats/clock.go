package stats

import "time"

// Clock provides time for window resolution, the monthly series, and
// snapshot timestamps. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
