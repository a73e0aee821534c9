package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Demand represents a gross requirement for a component on a date
type Demand struct {
	ComponentID  ComponentID     `json:"component_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	RequiredDate time.Time       `json:"required_date"`
	Source       string          `json:"source"`
}

// ScheduledReceipt represents supply already on order
type ScheduledReceipt struct {
	ComponentID   ComponentID     `json:"component_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	AvailableDate time.Time       `json:"available_date"`
	Reference     string          `json:"reference"`
}

// OnHandBalance is the starting inventory position of a component
type OnHandBalance struct {
	ComponentID ComponentID     `json:"component_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}
