package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType represents the type of planned order
type OrderType int

const (
	ProductionOrder OrderType = iota
	PurchaseOrder
	TransferOrder
)

// String method for OrderType enum
func (o OrderType) String() string {
	switch o {
	case ProductionOrder:
		return "Production"
	case PurchaseOrder:
		return "Purchase"
	case TransferOrder:
		return "Transfer"
	default:
		return "Unknown"
	}
}

func (o OrderType) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// OrderTypeFor maps a procurement type to the order it generates. Phantom
// components never generate physical orders.
func OrderTypeFor(p ProcurementType) (OrderType, bool) {
	switch p {
	case Make:
		return ProductionOrder, true
	case Buy:
		return PurchaseOrder, true
	case Transfer:
		return TransferOrder, true
	default:
		return ProductionOrder, false
	}
}

// PlannedOrder represents a system-generated replenishment suggestion
type PlannedOrder struct {
	ID          uuid.UUID       `json:"id"`
	ComponentID ComponentID     `json:"component_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	ReleaseDate time.Time       `json:"release_date"`
	DueDate     time.Time       `json:"due_date"`
	OrderType   OrderType       `json:"order_type"`
	Pegging     []PeggingRecord `json:"pegging,omitempty"`
}

// PeggingRecord links part of a planned order to the demand it covers
type PeggingRecord struct {
	OrderID      uuid.UUID       `json:"order_id"`
	DemandSource string          `json:"demand_source"`
	RequiredDate time.Time       `json:"required_date"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// NewPlannedOrder creates a validated PlannedOrder
func NewPlannedOrder(
	componentID ComponentID,
	quantity decimal.Decimal,
	releaseDate, dueDate time.Time,
	orderType OrderType,
) (*PlannedOrder, error) {
	if string(componentID) == "" {
		return nil, fmt.Errorf("component id cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be positive, got %s", quantity)
	}
	if releaseDate.After(dueDate) {
		return nil, fmt.Errorf("release date %v cannot be after due date %v", releaseDate, dueDate)
	}

	return &PlannedOrder{
		ID:          uuid.New(),
		ComponentID: componentID,
		Quantity:    quantity,
		ReleaseDate: releaseDate,
		DueDate:     dueDate,
		OrderType:   orderType,
	}, nil
}

// PegDemands allocates the order quantity to demands in the order given. Each
// demand takes what it needs until the order is used up; demands beyond that
// are left unpegged.
func (o *PlannedOrder) PegDemands(demands []*Demand) {
	o.Pegging = o.Pegging[:0]
	remaining := o.Quantity
	for _, d := range demands {
		if !remaining.IsPositive() {
			break
		}
		if !d.Quantity.IsPositive() {
			continue
		}
		pegged := decimal.Min(d.Quantity, remaining)
		o.Pegging = append(o.Pegging, PeggingRecord{
			OrderID:      o.ID,
			DemandSource: d.Source,
			RequiredDate: d.RequiredDate,
			Quantity:     pegged,
		})
		remaining = remaining.Sub(pegged)
	}
}

// UnpeggedQuantity is the part of the order not allocated to any demand,
// e.g. safety stock replenishment or lot-size rounding
func (o *PlannedOrder) UnpeggedQuantity() decimal.Decimal {
	pegged := decimal.Zero
	for _, p := range o.Pegging {
		pegged = pegged.Add(p.Quantity)
	}
	return o.Quantity.Sub(pegged)
}
