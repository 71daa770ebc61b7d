package stats

import "fleetstats-service/internal/model"

// aggregateCustomers groups filtered rentals by customer identity: customer id
// when assigned, name snapshot otherwise. Rentals with neither are skipped
// here but still count everywhere else. The fold accumulates raw sums; derived
// fields are finalized in a second pass.
func aggregateCustomers(rentals []model.RentalRecord) []model.CustomerAggregate {
	grouped := make(map[string]*model.CustomerAggregate)
	order := make([]string, 0)

	for _, r := range rentals {
		key, ok := r.CustomerKey()
		if !ok {
			continue
		}
		agg, exists := grouped[key]
		if !exists {
			agg = &model.CustomerAggregate{Key: key, Name: r.CustomerLabel()}
			grouped[key] = agg
			order = append(order, key)
		}
		agg.TotalRevenue += r.Price()
		agg.RentalCount++
		agg.TotalDaysRented += r.Days()
		if r.StartDate.After(agg.LastRentalDate) {
			agg.LastRentalDate = r.StartDate
		}
	}

	out := make([]model.CustomerAggregate, 0, len(order))
	for _, key := range order {
		agg := grouped[key]
		if agg.RentalCount > 0 {
			agg.AvgDuration = float64(agg.TotalDaysRented) / float64(agg.RentalCount)
		}
		out = append(out, *agg)
	}
	return out
}
