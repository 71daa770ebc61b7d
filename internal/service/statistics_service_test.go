package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetstats-service/internal/model"
	"fleetstats-service/internal/stats"
)

type stubSource struct {
	rentals   []model.RentalRecord
	expenses  []model.ExpenseRecord
	protocols []model.ProtocolRecord
	vehicles  []model.VehicleRecord
}

func (s stubSource) Rentals(context.Context) ([]model.RentalRecord, error)     { return s.rentals, nil }
func (s stubSource) Expenses(context.Context) ([]model.ExpenseRecord, error)   { return s.expenses, nil }
func (s stubSource) Protocols(context.Context) ([]model.ProtocolRecord, error) { return s.protocols, nil }
func (s stubSource) Vehicles(context.Context) ([]model.VehicleRecord, error)   { return s.vehicles, nil }

type tickingClock struct{ t time.Time }

func (c tickingClock) Now() time.Time { return c.t }

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func fixtureSource() stubSource {
	makeVehicle := func(brand string) model.VehicleRecord {
		category := "van"
		return model.VehicleRecord{ID: uuid.New(), Brand: brand, Company: "Fleet One", Category: &category}
	}

	vehicles := make([]model.VehicleRecord, 0, 12)
	rentals := make([]model.RentalRecord, 0, 12)
	for i := 0; i < 12; i++ {
		v := makeVehicle("Vehicle")
		vehicles = append(vehicles, v)
		rentals = append(rentals, model.RentalRecord{
			ID:         uuid.New(),
			VehicleID:  v.ID,
			StartDate:  time.Date(2024, time.March, 1+i, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2024, time.March, 2+i, 0, 0, 0, 0, time.UTC),
			TotalPrice: fptr(float64(100 * (i + 1))),
		})
	}
	return stubSource{rentals: rentals, vehicles: vehicles}
}

func newTestService(t *testing.T, source Source) *StatisticsService {
	t.Helper()
	engine := stats.NewEngine(
		stats.WithClock(tickingClock{t: time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)}),
		stats.WithCostCenterTag("black holding"),
	)
	svc := NewStatisticsService(source, engine, 10*time.Millisecond, zerolog.Nop())
	t.Cleanup(svc.Close)
	return svc
}

func waitForSnapshot(t *testing.T, svc *StatisticsService, principal model.Principal, accept func(model.StatisticsSnapshot) bool) model.StatisticsSnapshot {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		snap, err := svc.Snapshot(principal)
		if err == nil && (accept == nil || accept(snap)) {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expected snapshot was never published")
	return model.StatisticsSnapshot{}
}

func loaded(snap model.StatisticsSnapshot) bool {
	return snap.AllTime.RentalCount > 0
}

func TestStatisticsService(t *testing.T) {
	manager := model.Principal{UserID: uuid.New(), Role: model.RoleManager}
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}
	march := model.Period{Kind: model.RangeMonth, Year: 2024, Month: time.March}

	t.Run("drivers are denied everywhere", func(t *testing.T) {
		svc := newTestService(t, stubSource{})

		assert.ErrorIs(t, svc.Refresh(context.Background(), driver), ErrPermissionDenied)
		assert.ErrorIs(t, svc.SetPeriod(driver, march), ErrPermissionDenied)
		_, err := svc.Snapshot(driver)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		_, err = svc.VehicleLeaderboard(driver, "revenue", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("no snapshot before the first pass", func(t *testing.T) {
		svc := newTestService(t, stubSource{})

		_, err := svc.Snapshot(manager)
		assert.ErrorIs(t, err, ErrNoSnapshot)
	})

	t.Run("refresh loads collections and publishes a snapshot", func(t *testing.T) {
		svc := newTestService(t, fixtureSource())
		require.NoError(t, svc.SetPeriod(manager, march))
		require.NoError(t, svc.Refresh(context.Background(), manager))

		snap := waitForSnapshot(t, svc, manager, loaded)
		assert.Equal(t, 12, snap.AllTime.RentalCount)
		assert.Len(t, snap.Vehicles, 12)
	})

	t.Run("leaderboards reveal ten rows and then ten more", func(t *testing.T) {
		svc := newTestService(t, fixtureSource())
		require.NoError(t, svc.SetPeriod(manager, march))
		require.NoError(t, svc.Refresh(context.Background(), manager))
		waitForSnapshot(t, svc, manager, loaded)

		first, err := svc.VehicleLeaderboard(manager, "revenue", false)
		require.NoError(t, err)
		assert.Len(t, first, 10)
		assert.Equal(t, 1200.0, first[0].TotalRevenue)

		revealed, err := svc.VehicleLeaderboard(manager, "revenue", true)
		require.NoError(t, err)
		assert.Len(t, revealed, 12)
	})

	t.Run("unknown order is rejected", func(t *testing.T) {
		svc := newTestService(t, fixtureSource())
		require.NoError(t, svc.Refresh(context.Background(), manager))
		waitForSnapshot(t, svc, manager, loaded)

		_, err := svc.VehicleLeaderboard(manager, "speed", false)
		assert.ErrorIs(t, err, ErrUnknownLeaderboard)
		_, err = svc.CustomerLeaderboard(manager, "speed", false)
		assert.ErrorIs(t, err, ErrUnknownLeaderboard)
		_, err = svc.EmployeeLeaderboard(manager, "speed", false)
		assert.ErrorIs(t, err, ErrUnknownLeaderboard)
	})

	t.Run("changing the period resets reveal cursors", func(t *testing.T) {
		svc := newTestService(t, fixtureSource())
		require.NoError(t, svc.SetPeriod(manager, march))
		require.NoError(t, svc.Refresh(context.Background(), manager))
		waitForSnapshot(t, svc, manager, loaded)

		_, err := svc.VehicleLeaderboard(manager, "revenue", true)
		require.NoError(t, err)

		require.NoError(t, svc.SetPeriod(manager, model.Period{Kind: model.RangeYear, Year: 2024}))
		waitForSnapshot(t, svc, manager, loaded)

		rows, err := svc.VehicleLeaderboard(manager, "revenue", false)
		require.NoError(t, err)
		assert.Len(t, rows, 10)
	})

	t.Run("rapid period changes coalesce to the last selection", func(t *testing.T) {
		svc := newTestService(t, fixtureSource())
		require.NoError(t, svc.Refresh(context.Background(), manager))
		waitForSnapshot(t, svc, manager, loaded)

		require.NoError(t, svc.SetPeriod(manager, model.Period{Kind: model.RangeMonth, Year: 2024, Month: time.January}))
		require.NoError(t, svc.SetPeriod(manager, model.Period{Kind: model.RangeMonth, Year: 2024, Month: time.February}))
		require.NoError(t, svc.SetPeriod(manager, model.Period{Kind: model.RangeYear, Year: 2024}))

		deadline := time.Now().Add(time.Second)
		for time.Now().Before(deadline) {
			snap, err := svc.Snapshot(manager)
			require.NoError(t, err)
			if snap.Period.Kind == model.RangeYear {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		t.Fatal("snapshot never reflected the last selection")
	})
}
