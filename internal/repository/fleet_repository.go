package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetstats-service/internal/model"
)

// FleetRepository loads the raw record collections the statistics engine
// aggregates. It is a plain reader over tables owned by the main fleet
// application; aggregation itself happens in memory, not in SQL.
type FleetRepository struct {
	db *gorm.DB
}

func NewFleetRepository(db *gorm.DB) *FleetRepository {
	return &FleetRepository{db: db}
}

func (r *FleetRepository) Rentals(ctx context.Context) ([]model.RentalRecord, error) {
	if !r.tablesAvailable(ctx, "rentals") {
		return nil, nil
	}

	type row struct {
		ID             uuid.UUID
		VehicleID      uuid.UUID
		CustomerID     *uuid.UUID
		CustomerName   *string
		StartDate      *time.Time
		EndDate        *time.Time
		TotalPrice     *float64
		Commission     *float64
		PaymentMethod  *string
		Paid           bool
		VehicleCompany *string
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("rentals r").
		Select(`r.id, r.vehicle_id, r.customer_id, r.customer_name,
			r.start_date, r.end_date, r.total_price, r.commission,
			r.payment_method, COALESCE(r.paid, false) AS paid,
			r.vehicle_company`).
		Order("r.start_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rentals := make([]model.RentalRecord, 0, len(rows))
	for _, row := range rows {
		rentals = append(rentals, model.RentalRecord{
			ID:             row.ID,
			VehicleID:      row.VehicleID,
			CustomerID:     row.CustomerID,
			CustomerName:   row.CustomerName,
			StartDate:      timeOrZero(row.StartDate),
			EndDate:        timeOrZero(row.EndDate),
			TotalPrice:     row.TotalPrice,
			Commission:     row.Commission,
			PaymentMethod:  row.PaymentMethod,
			Paid:           row.Paid,
			VehicleCompany: row.VehicleCompany,
		})
	}
	return rentals, nil
}

func (r *FleetRepository) Expenses(ctx context.Context) ([]model.ExpenseRecord, error) {
	if !r.tablesAvailable(ctx, "expenses") {
		return nil, nil
	}

	type row struct {
		ID       uuid.UUID
		Amount   *float64
		Date     *time.Time
		Company  *string
		Category *string
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("expenses e").
		Select(`e.id, e.amount, e.date, e.company, e.category`).
		Order("e.date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	expenses := make([]model.ExpenseRecord, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, model.ExpenseRecord{
			ID:       row.ID,
			Amount:   row.Amount,
			Date:     timeOrZero(row.Date),
			Company:  stringOrEmpty(row.Company),
			Category: stringOrEmpty(row.Category),
		})
	}
	return expenses, nil
}

func (r *FleetRepository) Protocols(ctx context.Context) ([]model.ProtocolRecord, error) {
	if !r.tablesAvailable(ctx, "protocols") {
		return nil, nil
	}

	type row struct {
		ID               uuid.UUID
		Type             *string
		RentalID         uuid.UUID
		CreatedBy        *string
		CreatedAt        *time.Time
		RentalTotalPrice *float64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("protocols p").
		Select(`p.id, p.type, p.rental_id, p.created_by, p.created_at,
			p.rental_total_price`).
		Order("p.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	protocols := make([]model.ProtocolRecord, 0, len(rows))
	for _, row := range rows {
		protocolType := model.ProtocolHandover
		if row.Type != nil && model.ProtocolType(*row.Type) == model.ProtocolReturn {
			protocolType = model.ProtocolReturn
		}
		protocols = append(protocols, model.ProtocolRecord{
			ID:               row.ID,
			Type:             protocolType,
			RentalID:         row.RentalID,
			CreatedBy:        row.CreatedBy,
			CreatedAt:        timeOrZero(row.CreatedAt),
			RentalTotalPrice: row.RentalTotalPrice,
		})
	}
	return protocols, nil
}

func (r *FleetRepository) Vehicles(ctx context.Context) ([]model.VehicleRecord, error) {
	if !r.tablesAvailable(ctx, "vehicles") {
		return nil, nil
	}

	type row struct {
		ID           uuid.UUID
		Brand        *string
		Model        *string
		LicensePlate *string
		Company      *string
		Category     *string
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("vehicles v").
		Select(`v.id, v.brand, v.model, v.license_plate, v.company, v.category`).
		Order("v.brand, v.model").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	vehicles := make([]model.VehicleRecord, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, model.VehicleRecord{
			ID:           row.ID,
			Brand:        stringOrEmpty(row.Brand),
			Model:        stringOrEmpty(row.Model),
			LicensePlate: stringOrEmpty(row.LicensePlate),
			Company:      stringOrEmpty(row.Company),
			Category:     row.Category,
		})
	}
	return vehicles, nil
}

func (r *FleetRepository) relationExists(ctx context.Context, name string) bool {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (
			SELECT 1
			FROM pg_catalog.pg_class c
			JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
			WHERE c.relname = ? AND c.relkind IN ('r','m','v') AND n.nspname = 'public'
		)`, name).
		Scan(&exists).Error
	if err != nil {
		return false
	}
	return exists
}

func (r *FleetRepository) tablesAvailable(ctx context.Context, names ...string) bool {
	for _, name := range names {
		if !r.relationExists(ctx, name) {
			return false
		}
	}
	return true
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func timeOrZero(v *time.Time) time.Time {
	if v == nil {
		return time.Time{}
	}
	return *v
}
