package stats

import (
	"time"

	"fleetstats-service/internal/model"
)

// DefaultCompanyEpoch is the business founding date, the start of the
// all-time window.
var DefaultCompanyEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Input is one aggregation pass's worth of raw collections plus the period
// selector. The engine only reads it.
type Input struct {
	Rentals   []model.RentalRecord
	Expenses  []model.ExpenseRecord
	Protocols []model.ProtocolRecord
	Vehicles  []model.VehicleRecord
	Period    model.Period
}

// Engine turns raw record collections into a statistics snapshot. It is pure
// in-memory computation: no I/O, no errors, graceful degradation on missing
// fields. Aggregators share the input but write only their own output.
type Engine struct {
	clock         Clock
	epoch         time.Time
	costCenterTag string
}

type EngineOption func(*Engine)

func WithClock(clock Clock) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func WithCompanyEpoch(epoch time.Time) EngineOption {
	return func(e *Engine) {
		if !epoch.IsZero() {
			e.epoch = epoch
		}
	}
}

func WithCostCenterTag(tag string) EngineOption {
	return func(e *Engine) {
		e.costCenterTag = tag
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		clock: systemClock{},
		epoch: DefaultCompanyEpoch,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute runs one full aggregation pass and assembles the snapshot. It never
// fails: empty collections produce a valid snapshot with empty aggregates.
func (e *Engine) Compute(in Input) model.StatisticsSnapshot {
	now := e.clock.Now()
	period := in.Period.Normalize(now)
	window := ResolveWindow(period, now, e.epoch)
	filtered := filterRecords(in, window, e.costCenterTag)

	vehicles := aggregateVehicles(in.Vehicles, filtered.Rentals, utilizationDenominator(period, now, e.epoch))
	customers := aggregateCustomers(filtered.Rentals)
	employees := aggregateEmployees(filtered.Protocols, in.Rentals)

	return model.StatisticsSnapshot{
		GeneratedAt:   now,
		Period:        period,
		Window:        window,
		Totals:        periodTotals(filtered),
		AllTime:       allTimeTotals(in),
		Vehicles:      vehicles,
		Customers:     customers,
		Employees:     employees,
		Companies:     aggregateCompanies(in.Rentals),
		Payments:      aggregatePayments(in.Rentals),
		MonthlySeries: buildMonthlySeries(in.Rentals, now),
		Rankings:      buildRankings(vehicles, customers, employees),
	}
}

func periodTotals(filtered Filtered) model.PeriodTotals {
	totals := model.PeriodTotals{
		RentalCount:   len(filtered.Rentals),
		ProtocolCount: len(filtered.Protocols),
	}
	for _, r := range filtered.Rentals {
		price := r.Price()
		totals.Revenue += price
		totals.Commission += r.CommissionValue()
		if r.Paid {
			totals.PaidRevenue += price
		} else {
			totals.UnpaidRevenue += price
		}
	}
	for _, e := range filtered.Expenses {
		totals.CostCenterExpenses += e.AmountValue()
	}
	return totals
}

func allTimeTotals(in Input) model.AllTimeTotals {
	totals := model.AllTimeTotals{
		RentalCount: len(in.Rentals),
		FleetSize:   len(in.Vehicles),
	}
	for _, r := range in.Rentals {
		totals.Revenue += r.Price()
		totals.Commission += r.CommissionValue()
	}
	for _, v := range in.Vehicles {
		if v.Categorized() {
			totals.ActiveFleetSize++
		}
	}
	return totals
}
