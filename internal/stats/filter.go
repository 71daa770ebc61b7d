package stats

import (
	"strings"

	"fleetstats-service/internal/model"
)

// Filtered holds the window-scoped subsets of the input collections. Filtering
// is pure and order-preserving; source slices are never mutated.
type Filtered struct {
	Rentals   []model.RentalRecord
	Expenses  []model.ExpenseRecord
	Protocols []model.ProtocolRecord
}

// filterRecords partitions the collections against the resolved window.
// Rentals match on start date, protocols on creation time. Expenses match on
// date and additionally on the cost-center tag: a case-insensitive substring
// match against the expense's company field. The tag is a fixed business
// predicate, not a user-facing filter.
func filterRecords(in Input, window model.DateRange, costCenterTag string) Filtered {
	out := Filtered{
		Rentals:   make([]model.RentalRecord, 0, len(in.Rentals)),
		Expenses:  make([]model.ExpenseRecord, 0, len(in.Expenses)),
		Protocols: make([]model.ProtocolRecord, 0, len(in.Protocols)),
	}

	for _, r := range in.Rentals {
		if window.Contains(r.StartDate) {
			out.Rentals = append(out.Rentals, r)
		}
	}

	tag := strings.ToLower(costCenterTag)
	for _, e := range in.Expenses {
		if !window.Contains(e.Date) {
			continue
		}
		if tag != "" && !strings.Contains(strings.ToLower(e.Company), tag) {
			continue
		}
		out.Expenses = append(out.Expenses, e)
	}

	for _, p := range in.Protocols {
		if window.Contains(p.CreatedAt) {
			out.Protocols = append(out.Protocols, p)
		}
	}

	return out
}
