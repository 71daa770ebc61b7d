package stats

import (
	"time"

	"fleetstats-service/internal/model"
)

const seriesMonths = 12

// buildMonthlySeries produces exactly twelve points, one per calendar month,
// for the trailing window ending at the current month, oldest first. It runs
// over the full rental collection and ignores the period selector.
func buildMonthlySeries(rentals []model.RentalRecord, now time.Time) []model.MonthlyPoint {
	points := make([]model.MonthlyPoint, seriesMonths)
	index := make(map[time.Time]int, seriesMonths)

	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < seriesMonths; i++ {
		month := current.AddDate(0, i-seriesMonths+1, 0)
		points[i] = model.MonthlyPoint{Month: month}
		index[month] = i
	}

	for _, r := range rentals {
		if r.StartDate.IsZero() {
			continue
		}
		bucket := time.Date(r.StartDate.Year(), r.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		i, ok := index[bucket]
		if !ok {
			continue
		}
		points[i].RentalCount++
		points[i].Revenue += r.Price()
		points[i].Commission += r.CommissionValue()
	}

	return points
}
