package stats

import (
	"github.com/google/uuid"

	"fleetstats-service/internal/model"
)

// revenueStrategy resolves a protocol's revenue figure from one source.
// Strategies are tried in order; the first present value wins.
type revenueStrategy func(p model.ProtocolRecord, rentalsByID map[uuid.UUID]model.RentalRecord) (float64, bool)

// The rental lookup runs against the full, unfiltered rental collection: a
// protocol created inside the window may reference a rental whose own start
// date is not, and revenue attribution must not silently drop to zero for it.
var protocolRevenueStrategies = []revenueStrategy{
	func(p model.ProtocolRecord, rentalsByID map[uuid.UUID]model.RentalRecord) (float64, bool) {
		r, ok := rentalsByID[p.RentalID]
		if !ok || r.TotalPrice == nil {
			return 0, false
		}
		return *r.TotalPrice, true
	},
	func(p model.ProtocolRecord, _ map[uuid.UUID]model.RentalRecord) (float64, bool) {
		if p.RentalTotalPrice == nil {
			return 0, false
		}
		return *p.RentalTotalPrice, true
	},
}

func resolveProtocolRevenue(p model.ProtocolRecord, rentalsByID map[uuid.UUID]model.RentalRecord) float64 {
	for _, strategy := range protocolRevenueStrategies {
		if v, ok := strategy(p, rentalsByID); ok {
			return v
		}
	}
	return 0
}

type employeeFold struct {
	agg     *model.EmployeeAggregate
	rentals map[uuid.UUID]struct{}
}

// aggregateEmployees groups filtered protocols by the creating employee,
// falling back to the unknown label for anonymous rows. allRentals is the
// full rental collection used for revenue lookup.
func aggregateEmployees(protocols []model.ProtocolRecord, allRentals []model.RentalRecord) []model.EmployeeAggregate {
	rentalsByID := make(map[uuid.UUID]model.RentalRecord, len(allRentals))
	for _, r := range allRentals {
		rentalsByID[r.ID] = r
	}

	grouped := make(map[string]*employeeFold)
	order := make([]string, 0)

	for _, p := range protocols {
		name := p.Employee()
		fold, exists := grouped[name]
		if !exists {
			fold = &employeeFold{
				agg:     &model.EmployeeAggregate{Name: name},
				rentals: make(map[uuid.UUID]struct{}),
			}
			grouped[name] = fold
			order = append(order, name)
		}

		revenue := resolveProtocolRevenue(p, rentalsByID)
		switch p.Type {
		case model.ProtocolReturn:
			fold.agg.ReturnCount++
			fold.agg.ReturnRevenue += revenue
		default:
			fold.agg.HandoverCount++
			fold.agg.HandoverRevenue += revenue
		}
		fold.agg.TotalProtocols++
		fold.agg.TotalRevenue += revenue
		if p.RentalID != uuid.Nil {
			fold.rentals[p.RentalID] = struct{}{}
		}
	}

	out := make([]model.EmployeeAggregate, 0, len(order))
	for _, name := range order {
		fold := grouped[name]
		fold.agg.UniqueRentals = len(fold.rentals)
		out = append(out, *fold.agg)
	}
	return out
}
