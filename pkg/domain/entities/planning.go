package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanningRegime names the two operating modes selected by the
// allow-negative-inventory flag
type PlanningRegime int

const (
	// StockDriven triggers whenever projected inventory dips below safety stock
	StockDriven PlanningRegime = iota
	// DemandDriven triggers only once projected inventory would go negative
	DemandDriven
)

// String method for PlanningRegime enum
func (r PlanningRegime) String() string {
	switch r {
	case StockDriven:
		return "StockDriven"
	case DemandDriven:
		return "DemandDriven"
	default:
		return "Unknown"
	}
}

func (r PlanningRegime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// BucketProjection is one row of a component's time-phased plan
type BucketProjection struct {
	Date               time.Time       `json:"date"`
	GrossRequirement   decimal.Decimal `json:"gross_requirement"`
	ScheduledReceipt   decimal.Decimal `json:"scheduled_receipt"`
	ProjectedOnHand    decimal.Decimal `json:"projected_on_hand"`
	EffectiveThreshold decimal.Decimal `json:"effective_threshold"`
	Triggered          bool            `json:"triggered"`
	NetRequirement     decimal.Decimal `json:"net_requirement"`
	PlannedReceipt     decimal.Decimal `json:"planned_receipt"`
}

// ComponentPlan is the projection of one component across the run's buckets
type ComponentPlan struct {
	ComponentID   ComponentID        `json:"component_id"`
	Regime        PlanningRegime     `json:"regime"`
	Buckets       []BucketProjection `json:"buckets"`
	PlannedOrders []PlannedOrder     `json:"planned_orders"`
}

// TriggeredBuckets returns the number of buckets that required a planned order
func (p *ComponentPlan) TriggeredBuckets() int {
	count := 0
	for _, b := range p.Buckets {
		if b.Triggered {
			count++
		}
	}
	return count
}
