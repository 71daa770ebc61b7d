package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"fleetstats-service/internal/model"
)

func TestAggregateEmployees(t *testing.T) {
	vehicleID := uuid.New()

	t.Run("return protocol attributes rental revenue to the employee", func(t *testing.T) {
		r := rental(vehicleID, day(2024, time.March, 1), day(2024, time.March, 3), 250)
		protocols := []model.ProtocolRecord{{
			Type:      model.ProtocolReturn,
			RentalID:  r.ID,
			CreatedBy: sptr("Jana"),
			CreatedAt: day(2024, time.March, 3),
		}}

		result := aggregateEmployees(protocols, []model.RentalRecord{r})

		assert.Len(t, result, 1)
		agg := result[0]
		assert.Equal(t, "Jana", agg.Name)
		assert.Equal(t, 1, agg.ReturnCount)
		assert.Equal(t, 0, agg.HandoverCount)
		assert.Equal(t, 250.0, agg.ReturnRevenue)
		assert.Equal(t, 250.0, agg.TotalRevenue)
		assert.Equal(t, 1, agg.UniqueRentals)
	})

	t.Run("rental lookup runs against the unfiltered collection", func(t *testing.T) {
		// The rental started outside the window; the protocol did not.
		r := rental(vehicleID, day(2023, time.December, 28), day(2024, time.January, 2), 400)
		protocols := []model.ProtocolRecord{{
			Type:      model.ProtocolHandover,
			RentalID:  r.ID,
			CreatedBy: sptr("Petr"),
			CreatedAt: day(2024, time.January, 2),
		}}

		result := aggregateEmployees(protocols, []model.RentalRecord{r})

		assert.Equal(t, 400.0, result[0].TotalRevenue)
	})

	t.Run("falls back to the embedded rental snapshot", func(t *testing.T) {
		protocols := []model.ProtocolRecord{{
			Type:             model.ProtocolHandover,
			RentalID:         uuid.New(),
			CreatedBy:        sptr("Petr"),
			CreatedAt:        day(2024, time.March, 3),
			RentalTotalPrice: fptr(180),
		}}

		result := aggregateEmployees(protocols, nil)

		assert.Equal(t, 180.0, result[0].HandoverRevenue)
	})

	t.Run("rental lookup wins over the embedded snapshot", func(t *testing.T) {
		r := rental(vehicleID, day(2024, time.March, 1), day(2024, time.March, 2), 300)
		protocols := []model.ProtocolRecord{{
			Type:             model.ProtocolHandover,
			RentalID:         r.ID,
			CreatedBy:        sptr("Petr"),
			CreatedAt:        day(2024, time.March, 2),
			RentalTotalPrice: fptr(999),
		}}

		result := aggregateEmployees(protocols, []model.RentalRecord{r})

		assert.Equal(t, 300.0, result[0].TotalRevenue)
	})

	t.Run("rental without a price falls through to the snapshot", func(t *testing.T) {
		r := rental(vehicleID, day(2024, time.March, 1), day(2024, time.March, 2), 0)
		r.TotalPrice = nil
		protocols := []model.ProtocolRecord{{
			Type:             model.ProtocolReturn,
			RentalID:         r.ID,
			CreatedBy:        sptr("Petr"),
			CreatedAt:        day(2024, time.March, 2),
			RentalTotalPrice: fptr(120),
		}}

		result := aggregateEmployees(protocols, []model.RentalRecord{r})

		assert.Equal(t, 120.0, result[0].TotalRevenue)
	})

	t.Run("no source at all resolves to zero revenue", func(t *testing.T) {
		protocols := []model.ProtocolRecord{{
			Type:      model.ProtocolHandover,
			RentalID:  uuid.New(),
			CreatedBy: sptr("Petr"),
			CreatedAt: day(2024, time.March, 2),
		}}

		result := aggregateEmployees(protocols, nil)

		assert.Equal(t, 0.0, result[0].TotalRevenue)
		assert.Equal(t, 1, result[0].TotalProtocols)
	})

	t.Run("anonymous protocols land in the unknown bucket", func(t *testing.T) {
		protocols := []model.ProtocolRecord{{
			Type:      model.ProtocolHandover,
			RentalID:  uuid.New(),
			CreatedAt: day(2024, time.March, 2),
		}}

		result := aggregateEmployees(protocols, nil)

		assert.Equal(t, model.UnknownLabel, result[0].Name)
	})

	t.Run("distinct rental count ignores duplicates", func(t *testing.T) {
		rentalID := uuid.New()
		protocols := []model.ProtocolRecord{
			{Type: model.ProtocolHandover, RentalID: rentalID, CreatedBy: sptr("Jana"), CreatedAt: day(2024, time.March, 1)},
			{Type: model.ProtocolReturn, RentalID: rentalID, CreatedBy: sptr("Jana"), CreatedAt: day(2024, time.March, 4)},
		}

		result := aggregateEmployees(protocols, nil)

		assert.Equal(t, 2, result[0].TotalProtocols)
		assert.Equal(t, 1, result[0].UniqueRentals)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, aggregateEmployees(nil, nil))
	})
}
