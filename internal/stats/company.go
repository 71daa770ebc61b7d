package stats

import (
	"strings"

	"fleetstats-service/internal/model"
)

const unassignedCompanyLabel = "unassigned"

// aggregateCompanies groups the entire rental collection by the vehicle
// company snapshot. Intentionally all-time: company breakdown views are
// insensitive to the period selector.
func aggregateCompanies(rentals []model.RentalRecord) []model.CompanyBreakdown {
	grouped := make(map[string]*model.CompanyBreakdown)
	order := make([]string, 0)

	for _, r := range rentals {
		company := unassignedCompanyLabel
		if r.VehicleCompany != nil && strings.TrimSpace(*r.VehicleCompany) != "" {
			company = strings.TrimSpace(*r.VehicleCompany)
		}
		agg, exists := grouped[company]
		if !exists {
			agg = &model.CompanyBreakdown{Company: company}
			grouped[company] = agg
			order = append(order, company)
		}
		agg.RentalCount++
		agg.TotalRevenue += r.Price()
		agg.TotalCommission += r.CommissionValue()
	}

	out := make([]model.CompanyBreakdown, 0, len(order))
	for _, company := range order {
		out = append(out, *grouped[company])
	}
	return out
}

// aggregatePayments groups the entire rental collection by payment method,
// with missing methods folded into the unknown bucket. All-time as well.
func aggregatePayments(rentals []model.RentalRecord) []model.PaymentBreakdown {
	grouped := make(map[string]*model.PaymentBreakdown)
	order := make([]string, 0)

	for _, r := range rentals {
		method := r.Payment()
		agg, exists := grouped[method]
		if !exists {
			agg = &model.PaymentBreakdown{Method: method}
			grouped[method] = agg
			order = append(order, method)
		}
		agg.RentalCount++
		agg.TotalRevenue += r.Price()
	}

	out := make([]model.PaymentBreakdown, 0, len(order))
	for _, method := range order {
		out = append(out, *grouped[method])
	}
	return out
}
