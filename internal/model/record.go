package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const UnknownLabel = "unknown"

type ProtocolType string

const (
	ProtocolHandover ProtocolType = "handover"
	ProtocolReturn   ProtocolType = "return"
)

// RentalRecord is a single rental as supplied by the data layer. Price and
// commission may be absent on legacy rows; absent values count as zero.
type RentalRecord struct {
	ID             uuid.UUID  `json:"id"`
	VehicleID      uuid.UUID  `json:"vehicle_id"`
	CustomerID     *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName   *string    `json:"customer_name,omitempty"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	TotalPrice     *float64   `json:"total_price,omitempty"`
	Commission     *float64   `json:"commission,omitempty"`
	PaymentMethod  *string    `json:"payment_method,omitempty"`
	Paid           bool       `json:"paid"`
	VehicleCompany *string    `json:"vehicle_company,omitempty"`
}

func (r RentalRecord) Price() float64 {
	return valueOrZero(r.TotalPrice)
}

func (r RentalRecord) CommissionValue() float64 {
	return valueOrZero(r.Commission)
}

func (r RentalRecord) Payment() string {
	return labelOrUnknown(r.PaymentMethod)
}

// CustomerKey returns the grouping key for customer aggregation: the customer
// id when assigned, the customer name snapshot otherwise. Rentals with neither
// report ok=false and are skipped by the customer aggregator only.
func (r RentalRecord) CustomerKey() (string, bool) {
	if r.CustomerID != nil && *r.CustomerID != uuid.Nil {
		return r.CustomerID.String(), true
	}
	if r.CustomerName != nil && strings.TrimSpace(*r.CustomerName) != "" {
		return strings.TrimSpace(*r.CustomerName), true
	}
	return "", false
}

func (r RentalRecord) CustomerLabel() string {
	if r.CustomerName != nil && strings.TrimSpace(*r.CustomerName) != "" {
		return strings.TrimSpace(*r.CustomerName)
	}
	if r.CustomerID != nil && *r.CustomerID != uuid.Nil {
		return r.CustomerID.String()
	}
	return UnknownLabel
}

// Days is the inclusive calendar span of the rental; a same-day rental
// counts as one day.
func (r RentalRecord) Days() int {
	start := truncateToDay(r.StartDate)
	end := truncateToDay(r.EndDate)
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

type ExpenseRecord struct {
	ID       uuid.UUID `json:"id"`
	Amount   *float64  `json:"amount,omitempty"`
	Date     time.Time `json:"date"`
	Company  string    `json:"company"`
	Category string    `json:"category"`
}

func (e ExpenseRecord) AmountValue() float64 {
	return valueOrZero(e.Amount)
}

// ProtocolRecord documents a physical vehicle handover or return authored by
// an employee. RentalTotalPrice carries the rental price snapshot embedded at
// protocol creation time; it is the fallback revenue source when the rental
// row itself is no longer resolvable.
type ProtocolRecord struct {
	ID               uuid.UUID    `json:"id"`
	Type             ProtocolType `json:"type"`
	RentalID         uuid.UUID    `json:"rental_id"`
	CreatedBy        *string      `json:"created_by,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	RentalTotalPrice *float64     `json:"rental_total_price,omitempty"`
}

func (p ProtocolRecord) Employee() string {
	return labelOrUnknown(p.CreatedBy)
}

type VehicleRecord struct {
	ID           uuid.UUID `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	LicensePlate string    `json:"license_plate"`
	Company      string    `json:"company"`
	Category     *string   `json:"category,omitempty"`
}

// Categorized reports whether the vehicle takes part in vehicle aggregation.
func (v VehicleRecord) Categorized() bool {
	return v.Category != nil && strings.TrimSpace(*v.Category) != ""
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func labelOrUnknown(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return UnknownLabel
	}
	return strings.TrimSpace(*v)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
