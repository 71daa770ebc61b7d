package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fleetstats-service/internal/logger"
	"fleetstats-service/internal/model"
	"fleetstats-service/internal/stats"
)

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNoSnapshot         = errors.New("no snapshot yet")
	ErrUnknownLeaderboard = errors.New("unknown leaderboard order")
)

// Source supplies the raw record collections. The gorm repository implements
// it in production; tests feed fixtures.
type Source interface {
	Rentals(ctx context.Context) ([]model.RentalRecord, error)
	Expenses(ctx context.Context) ([]model.ExpenseRecord, error)
	Protocols(ctx context.Context) ([]model.ProtocolRecord, error)
	Vehicles(ctx context.Context) ([]model.VehicleRecord, error)
}

// StatisticsService owns the debounced recompute loop: it caches the loaded
// collections, tracks the period selector, and hands both to the scheduler on
// every trigger. It also keeps the reveal cursors for the leaderboard views.
type StatisticsService struct {
	source    Source
	scheduler *stats.Scheduler
	log       zerolog.Logger
	throttle  *logger.Throttle

	mu        sync.Mutex
	period    model.Period
	rentals   []model.RentalRecord
	expenses  []model.ExpenseRecord
	protocols []model.ProtocolRecord
	vehicles  []model.VehicleRecord
	cursors   map[string]*stats.Reveal
}

func NewStatisticsService(source Source, engine *stats.Engine, quiet time.Duration, log zerolog.Logger) *StatisticsService {
	s := &StatisticsService{
		source:   source,
		log:      log,
		throttle: logger.NewThrottle(30 * time.Second),
		cursors:  make(map[string]*stats.Reveal),
	}
	s.scheduler = stats.NewScheduler(engine, quiet, func(snap model.StatisticsSnapshot) {
		log.Info().
			Time("generated_at", snap.GeneratedAt).
			Str("range", string(snap.Period.Kind)).
			Int("vehicles", len(snap.Vehicles)).
			Int("customers", len(snap.Customers)).
			Int("employees", len(snap.Employees)).
			Msg("statistics snapshot published")
	})
	return s
}

// Refresh reloads the collections from the source and triggers a debounced
// recompute. Reference changes in the underlying data are recompute triggers.
func (s *StatisticsService) Refresh(ctx context.Context, principal model.Principal) error {
	if !principal.CanViewStatistics() {
		return ErrPermissionDenied
	}

	rentals, err := s.source.Rentals(ctx)
	if err != nil {
		return err
	}
	expenses, err := s.source.Expenses(ctx)
	if err != nil {
		return err
	}
	protocols, err := s.source.Protocols(ctx)
	if err != nil {
		return err
	}
	vehicles, err := s.source.Vehicles(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.rentals = rentals
	s.expenses = expenses
	s.protocols = protocols
	s.vehicles = vehicles
	in := s.inputLocked()
	s.mu.Unlock()

	if s.throttle.Allow("refresh") {
		s.log.Debug().
			Int("rentals", len(rentals)).
			Int("expenses", len(expenses)).
			Int("protocols", len(protocols)).
			Int("vehicles", len(vehicles)).
			Msg("collections reloaded")
	}

	s.scheduler.Schedule(in)
	return nil
}

// SetPeriod changes the selector and triggers a debounced recompute over the
// cached collections. Reveal cursors reset: a new period is a new leaderboard.
func (s *StatisticsService) SetPeriod(principal model.Principal, period model.Period) error {
	if !principal.CanViewStatistics() {
		return ErrPermissionDenied
	}

	s.mu.Lock()
	s.period = period
	for _, cursor := range s.cursors {
		cursor.Reset()
	}
	in := s.inputLocked()
	s.mu.Unlock()

	if s.throttle.Allow("period") {
		s.log.Debug().
			Str("range", string(period.Kind)).
			Int("year", period.Year).
			Int("month", int(period.Month)).
			Msg("period selector changed")
	}

	s.scheduler.Schedule(in)
	return nil
}

// Snapshot returns the latest published snapshot. Before the first pass
// completes it returns ErrNoSnapshot; consumers render a loading state, never
// zeroed figures.
func (s *StatisticsService) Snapshot(principal model.Principal) (model.StatisticsSnapshot, error) {
	if !principal.CanViewStatistics() {
		return model.StatisticsSnapshot{}, ErrPermissionDenied
	}
	snap, ok := s.scheduler.Snapshot()
	if !ok {
		return model.StatisticsSnapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

// VehicleLeaderboard returns the requested vehicle order cut to the reveal
// cursor; reveal=true advances the cursor first.
func (s *StatisticsService) VehicleLeaderboard(principal model.Principal, order string, reveal bool) ([]model.VehicleAggregate, error) {
	snap, err := s.Snapshot(principal)
	if err != nil {
		return nil, err
	}

	if order == "" {
		order = "utilization"
	}
	var ranked []model.VehicleAggregate
	switch order {
	case "utilization":
		ranked = snap.Rankings.VehiclesByUtilization
	case "revenue":
		ranked = snap.Rankings.VehiclesByRevenue
	case "rentals":
		ranked = snap.Rankings.VehiclesByRentals
	default:
		return nil, ErrUnknownLeaderboard
	}

	return ranked[:s.visible("vehicles:"+order, len(ranked), reveal)], nil
}

func (s *StatisticsService) CustomerLeaderboard(principal model.Principal, order string, reveal bool) ([]model.CustomerAggregate, error) {
	snap, err := s.Snapshot(principal)
	if err != nil {
		return nil, err
	}

	if order == "" {
		order = "rentals"
	}
	var ranked []model.CustomerAggregate
	switch order {
	case "rentals":
		ranked = snap.Rankings.CustomersByRentals
	case "revenue":
		ranked = snap.Rankings.CustomersByRevenue
	case "days":
		ranked = snap.Rankings.CustomersByDays
	default:
		return nil, ErrUnknownLeaderboard
	}

	return ranked[:s.visible("customers:"+order, len(ranked), reveal)], nil
}

func (s *StatisticsService) EmployeeLeaderboard(principal model.Principal, order string, reveal bool) ([]model.EmployeeAggregate, error) {
	snap, err := s.Snapshot(principal)
	if err != nil {
		return nil, err
	}

	if order == "" {
		order = "protocols"
	}
	var ranked []model.EmployeeAggregate
	switch order {
	case "protocols":
		ranked = snap.Rankings.EmployeesByProtocols
	case "revenue":
		ranked = snap.Rankings.EmployeesByRevenue
	case "handovers":
		ranked = snap.Rankings.EmployeesByHandovers
	case "returns":
		ranked = snap.Rankings.EmployeesByReturns
	default:
		return nil, ErrUnknownLeaderboard
	}

	return ranked[:s.visible("employees:"+order, len(ranked), reveal)], nil
}

// Close stops the scheduler; any pending pass is discarded.
func (s *StatisticsService) Close() {
	s.scheduler.Close()
}

func (s *StatisticsService) inputLocked() stats.Input {
	return stats.Input{
		Rentals:   s.rentals,
		Expenses:  s.expenses,
		Protocols: s.protocols,
		Vehicles:  s.vehicles,
		Period:    s.period,
	}
}

func (s *StatisticsService) visible(key string, total int, reveal bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cursor, ok := s.cursors[key]
	if !ok {
		cursor = &stats.Reveal{}
		s.cursors[key] = cursor
	}
	if reveal {
		return cursor.Next(total)
	}
	return cursor.Visible(total)
}
