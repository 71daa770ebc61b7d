package stats

import (
	"sort"

	"fleetstats-service/internal/model"
)

// RevealStep is how many leaderboard rows each reveal request discloses.
const RevealStep = 10

// buildRankings derives every sort order from the raw aggregate slices. Each
// order is a stable descending sort over its own copy: ties keep aggregation
// order, and sorting the same collection twice yields the same order.
func buildRankings(vehicles []model.VehicleAggregate, customers []model.CustomerAggregate, employees []model.EmployeeAggregate) model.Rankings {
	return model.Rankings{
		VehiclesByUtilization: sortVehicles(vehicles, func(a model.VehicleAggregate) float64 { return a.UtilizationPct }),
		VehiclesByRevenue:     sortVehicles(vehicles, func(a model.VehicleAggregate) float64 { return a.TotalRevenue }),
		VehiclesByRentals:     sortVehicles(vehicles, func(a model.VehicleAggregate) float64 { return float64(a.RentalCount) }),

		CustomersByRentals: sortCustomers(customers, func(a model.CustomerAggregate) float64 { return float64(a.RentalCount) }),
		CustomersByRevenue: sortCustomers(customers, func(a model.CustomerAggregate) float64 { return a.TotalRevenue }),
		CustomersByDays:    sortCustomers(customers, func(a model.CustomerAggregate) float64 { return float64(a.TotalDaysRented) }),

		EmployeesByProtocols: sortEmployees(employees, func(a model.EmployeeAggregate) float64 { return float64(a.TotalProtocols) }),
		EmployeesByRevenue:   sortEmployees(employees, func(a model.EmployeeAggregate) float64 { return a.TotalRevenue }),
		EmployeesByHandovers: sortEmployees(employees, func(a model.EmployeeAggregate) float64 { return float64(a.HandoverCount) }),
		EmployeesByReturns:   sortEmployees(employees, func(a model.EmployeeAggregate) float64 { return float64(a.ReturnCount) }),
	}
}

func sortVehicles(items []model.VehicleAggregate, key func(model.VehicleAggregate) float64) []model.VehicleAggregate {
	out := make([]model.VehicleAggregate, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	return out
}

func sortCustomers(items []model.CustomerAggregate, key func(model.CustomerAggregate) float64) []model.CustomerAggregate {
	out := make([]model.CustomerAggregate, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	return out
}

func sortEmployees(items []model.EmployeeAggregate, key func(model.EmployeeAggregate) float64) []model.EmployeeAggregate {
	out := make([]model.EmployeeAggregate, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	return out
}

// Reveal is the incremental pagination cursor over an already-sorted
// leaderboard. It starts at RevealStep and advances by RevealStep per request,
// capped at the collection length. State is presentation-owned.
type Reveal struct {
	shown int
}

// Visible returns how many rows are currently disclosed for a collection of
// the given length.
func (r *Reveal) Visible(total int) int {
	shown := r.shown
	if shown == 0 {
		shown = RevealStep
	}
	if shown > total {
		return total
	}
	return shown
}

// Next advances the cursor and returns the new visible count.
func (r *Reveal) Next(total int) int {
	next := r.Visible(total) + RevealStep
	if next > total {
		next = total
	}
	if next < RevealStep {
		next = RevealStep
	}
	r.shown = next
	return r.Visible(total)
}

// Reset returns the cursor to its initial position.
func (r *Reveal) Reset() {
	r.shown = 0
}
