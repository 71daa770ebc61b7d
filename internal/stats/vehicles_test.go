package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetstats-service/internal/model"
)

func TestAggregateVehicles(t *testing.T) {
	t.Run("sums revenue, count and inclusive day spans", func(t *testing.T) {
		v := categorizedVehicle("Skoda")
		rentals := []model.RentalRecord{
			rental(v.ID, day(2024, time.March, 1), day(2024, time.March, 3), 300),
			rental(v.ID, day(2024, time.March, 10), day(2024, time.March, 11), 100),
		}

		result := aggregateVehicles([]model.VehicleRecord{v}, rentals, 31)

		assert.Len(t, result, 1)
		agg := result[0]
		assert.Equal(t, 2, agg.RentalCount)
		assert.Equal(t, 5, agg.TotalDaysRented)
		assert.Equal(t, 400.0, agg.TotalRevenue)
		assert.Equal(t, 200.0, agg.AvgRevenuePerRental)
	})

	t.Run("same-day rental counts one day", func(t *testing.T) {
		v := categorizedVehicle("Fiat")
		rentals := []model.RentalRecord{
			rental(v.ID, day(2024, time.March, 7), day(2024, time.March, 7), 50),
		}

		result := aggregateVehicles([]model.VehicleRecord{v}, rentals, 31)

		assert.Equal(t, 1, result[0].TotalDaysRented)
	})

	t.Run("utilization is clamped to one hundred", func(t *testing.T) {
		v := categorizedVehicle("Ford")
		rentals := []model.RentalRecord{
			rental(v.ID, day(2024, time.March, 1), day(2024, time.May, 31), 900),
		}

		result := aggregateVehicles([]model.VehicleRecord{v}, rentals, 31)

		assert.Equal(t, 100.0, result[0].UtilizationPct)
	})

	t.Run("utilization stays within bounds for ordinary activity", func(t *testing.T) {
		v := categorizedVehicle("Opel")
		rentals := []model.RentalRecord{
			rental(v.ID, day(2024, time.March, 1), day(2024, time.March, 15), 500),
		}

		result := aggregateVehicles([]model.VehicleRecord{v}, rentals, 30)

		assert.InDelta(t, 50.0, result[0].UtilizationPct, 0.001)
		assert.GreaterOrEqual(t, result[0].UtilizationPct, 0.0)
		assert.LessOrEqual(t, result[0].UtilizationPct, 100.0)
	})

	t.Run("vehicles without a category are excluded entirely", func(t *testing.T) {
		v := model.VehicleRecord{Brand: "Uncategorized", Company: "Fleet One"}
		rentals := []model.RentalRecord{
			rental(v.ID, day(2024, time.March, 1), day(2024, time.March, 3), 300),
		}

		result := aggregateVehicles([]model.VehicleRecord{v}, rentals, 31)

		assert.Empty(t, result)
	})

	t.Run("vehicles without window activity are dropped", func(t *testing.T) {
		active := categorizedVehicle("Active")
		idle := categorizedVehicle("Idle")
		rentals := []model.RentalRecord{
			rental(active.ID, day(2024, time.March, 1), day(2024, time.March, 2), 200),
		}

		result := aggregateVehicles([]model.VehicleRecord{active, idle}, rentals, 31)

		assert.Len(t, result, 1)
		assert.Equal(t, "Active", result[0].Vehicle.Brand)
	})

	t.Run("missing prices count as zero and never abort", func(t *testing.T) {
		v := categorizedVehicle("Nulls")
		r := rental(v.ID, day(2024, time.March, 1), day(2024, time.March, 2), 0)
		r.TotalPrice = nil

		result := aggregateVehicles([]model.VehicleRecord{v}, []model.RentalRecord{r}, 31)

		assert.Len(t, result, 1)
		assert.Equal(t, 0.0, result[0].TotalRevenue)
		assert.Equal(t, 0.0, result[0].AvgRevenuePerRental)
	})

	t.Run("empty inputs produce an empty result", func(t *testing.T) {
		assert.Empty(t, aggregateVehicles(nil, nil, 31))
	})
}
