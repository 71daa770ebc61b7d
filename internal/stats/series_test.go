package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"fleetstats-service/internal/model"
)

func TestBuildMonthlySeries(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	vehicleID := uuid.New()

	t.Run("always yields twelve points oldest first", func(t *testing.T) {
		series := buildMonthlySeries(nil, now)

		assert.Len(t, series, 12)
		assert.Equal(t, day(2023, time.July, 1), series[0].Month)
		assert.Equal(t, day(2024, time.June, 1), series[11].Month)
		for i := 1; i < len(series); i++ {
			assert.True(t, series[i].Month.After(series[i-1].Month))
		}
	})

	t.Run("buckets rentals into their start month", func(t *testing.T) {
		r1 := rental(vehicleID, day(2024, time.June, 3), day(2024, time.June, 5), 300)
		r1.Commission = fptr(30)
		r2 := rental(vehicleID, day(2024, time.June, 20), day(2024, time.June, 21), 100)
		r3 := rental(vehicleID, day(2023, time.August, 1), day(2023, time.August, 2), 50)

		series := buildMonthlySeries([]model.RentalRecord{r1, r2, r3}, now)

		june := series[11]
		assert.Equal(t, 2, june.RentalCount)
		assert.Equal(t, 400.0, june.Revenue)
		assert.Equal(t, 30.0, june.Commission)

		august := series[1]
		assert.Equal(t, 1, august.RentalCount)
		assert.Equal(t, 50.0, august.Revenue)
	})

	t.Run("rentals outside the trailing year are ignored", func(t *testing.T) {
		old := rental(vehicleID, day(2022, time.June, 1), day(2022, time.June, 2), 999)
		future := rental(vehicleID, day(2024, time.July, 1), day(2024, time.July, 2), 999)

		series := buildMonthlySeries([]model.RentalRecord{old, future}, now)

		for _, point := range series {
			assert.Zero(t, point.RentalCount)
		}
	})

	t.Run("zero start dates are skipped", func(t *testing.T) {
		series := buildMonthlySeries([]model.RentalRecord{{ID: uuid.New()}}, now)

		for _, point := range series {
			assert.Zero(t, point.RentalCount)
		}
	})
}
