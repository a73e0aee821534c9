package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

// TriggerDecision is the outcome of evaluating one projected inventory value
type TriggerDecision struct {
	ComponentID        entities.ComponentID    `json:"component_id"`
	ProjectedOnHand    decimal.Decimal         `json:"projected_on_hand"`
	EffectiveThreshold decimal.Decimal         `json:"effective_threshold"`
	Regime             entities.PlanningRegime `json:"regime"`
	Triggered          bool                    `json:"triggered"`
	NetRequirement     decimal.Decimal         `json:"net_requirement"`
}
