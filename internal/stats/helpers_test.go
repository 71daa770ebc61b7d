package stats

import (
	"time"

	"github.com/google/uuid"

	"fleetstats-service/internal/model"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func fptr(v float64) *float64 { return &v }

func sptr(v string) *string { return &v }

func uptr(v uuid.UUID) *uuid.UUID { return &v }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func rental(vehicleID uuid.UUID, start, end time.Time, price float64) model.RentalRecord {
	return model.RentalRecord{
		ID:         uuid.New(),
		VehicleID:  vehicleID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: fptr(price),
	}
}

func categorizedVehicle(name string) model.VehicleRecord {
	return model.VehicleRecord{
		ID:       uuid.New(),
		Brand:    name,
		Model:    "Test",
		Company:  "Fleet One",
		Category: sptr("van"),
	}
}
