package model

import "time"

// VehicleAggregate is the per-vehicle rollup for the selected window. Only
// categorized vehicles with at least one rental in the window appear.
type VehicleAggregate struct {
	Vehicle             VehicleRecord `json:"vehicle"`
	TotalRevenue        float64       `json:"total_revenue"`
	RentalCount         int           `json:"rental_count"`
	TotalDaysRented     int           `json:"total_days_rented"`
	UtilizationPct      float64       `json:"utilization_pct"`
	AvgRevenuePerRental float64       `json:"avg_revenue_per_rental"`
}

type CustomerAggregate struct {
	Key             string    `json:"key"`
	Name            string    `json:"name"`
	TotalRevenue    float64   `json:"total_revenue"`
	RentalCount     int       `json:"rental_count"`
	TotalDaysRented int       `json:"total_days_rented"`
	LastRentalDate  time.Time `json:"last_rental_date"`
	AvgDuration     float64   `json:"avg_duration_days"`
}

type EmployeeAggregate struct {
	Name            string  `json:"name"`
	HandoverCount   int     `json:"handover_count"`
	ReturnCount     int     `json:"return_count"`
	TotalProtocols  int     `json:"total_protocols"`
	HandoverRevenue float64 `json:"handover_revenue"`
	ReturnRevenue   float64 `json:"return_revenue"`
	TotalRevenue    float64 `json:"total_revenue"`
	UniqueRentals   int     `json:"unique_rentals"`
}

type CompanyBreakdown struct {
	Company         string  `json:"company"`
	RentalCount     int     `json:"rental_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCommission float64 `json:"total_commission"`
}

type PaymentBreakdown struct {
	Method       string  `json:"method"`
	RentalCount  int     `json:"rental_count"`
	TotalRevenue float64 `json:"total_revenue"`
}

// MonthlyPoint is one calendar month of the trailing 12-month series.
// Month is the first instant of the month.
type MonthlyPoint struct {
	Month       time.Time `json:"month"`
	RentalCount int       `json:"rental_count"`
	Revenue     float64   `json:"revenue"`
	Commission  float64   `json:"commission"`
}

// PeriodTotals are the window-scoped header figures.
type PeriodTotals struct {
	Revenue            float64 `json:"revenue"`
	Commission         float64 `json:"commission"`
	RentalCount        int     `json:"rental_count"`
	PaidRevenue        float64 `json:"paid_revenue"`
	UnpaidRevenue      float64 `json:"unpaid_revenue"`
	CostCenterExpenses float64 `json:"cost_center_expenses"`
	ProtocolCount      int     `json:"protocol_count"`
}

// AllTimeTotals are window-insensitive figures over the full collections.
type AllTimeTotals struct {
	RentalCount     int     `json:"rental_count"`
	Revenue         float64 `json:"revenue"`
	Commission      float64 `json:"commission"`
	FleetSize       int     `json:"fleet_size"`
	ActiveFleetSize int     `json:"active_fleet_size"`
}

// Rankings holds every precomputed sort order. All orders are stable descending
// sorts over the raw aggregate slices; ties keep aggregation order.
type Rankings struct {
	VehiclesByUtilization []VehicleAggregate `json:"vehicles_by_utilization"`
	VehiclesByRevenue     []VehicleAggregate `json:"vehicles_by_revenue"`
	VehiclesByRentals     []VehicleAggregate `json:"vehicles_by_rentals"`

	CustomersByRentals []CustomerAggregate `json:"customers_by_rentals"`
	CustomersByRevenue []CustomerAggregate `json:"customers_by_revenue"`
	CustomersByDays    []CustomerAggregate `json:"customers_by_days"`

	EmployeesByProtocols []EmployeeAggregate `json:"employees_by_protocols"`
	EmployeesByRevenue   []EmployeeAggregate `json:"employees_by_revenue"`
	EmployeesByHandovers []EmployeeAggregate `json:"employees_by_handovers"`
	EmployeesByReturns   []EmployeeAggregate `json:"employees_by_returns"`
}

// StatisticsSnapshot is the complete output of one aggregation pass. A new
// snapshot fully replaces the previous one; consumers never see partial
// updates.
type StatisticsSnapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Period      Period    `json:"period"`
	Window      DateRange `json:"window"`

	Totals  PeriodTotals  `json:"totals"`
	AllTime AllTimeTotals `json:"all_time"`

	Vehicles  []VehicleAggregate  `json:"vehicles"`
	Customers []CustomerAggregate `json:"customers"`
	Employees []EmployeeAggregate `json:"employees"`
	Companies []CompanyBreakdown  `json:"companies"`
	Payments  []PaymentBreakdown  `json:"payments"`

	MonthlySeries []MonthlyPoint `json:"monthly_series"`
	Rankings      Rankings       `json:"rankings"`
}
