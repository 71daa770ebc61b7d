package stats

import (
	"github.com/google/uuid"

	"fleetstats-service/internal/model"
)

// aggregateVehicles rolls filtered rentals up per vehicle. Vehicles without a
// category are excluded entirely, as are vehicles with no rental activity in
// the window. denominator is the period's calendar length in days.
func aggregateVehicles(vehicles []model.VehicleRecord, rentals []model.RentalRecord, denominator float64) []model.VehicleAggregate {
	byVehicle := make(map[uuid.UUID][]model.RentalRecord, len(vehicles))
	for _, r := range rentals {
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r)
	}

	out := make([]model.VehicleAggregate, 0, len(vehicles))
	for _, v := range vehicles {
		if !v.Categorized() {
			continue
		}
		matched := byVehicle[v.ID]
		if len(matched) == 0 {
			continue
		}

		agg := model.VehicleAggregate{Vehicle: v, RentalCount: len(matched)}
		for _, r := range matched {
			agg.TotalRevenue += r.Price()
			agg.TotalDaysRented += r.Days()
		}

		if denominator > 0 {
			agg.UtilizationPct = float64(agg.TotalDaysRented) / denominator * 100
		}
		if agg.UtilizationPct > 100 {
			agg.UtilizationPct = 100
		}
		agg.AvgRevenuePerRental = agg.TotalRevenue / float64(agg.RentalCount)

		out = append(out, agg)
	}
	return out
}
