package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

const (
	ConfigLoadedEvent   = "config.loaded"
	ConfigRejectedEvent = "config.rejected"

	TriggerFiredEvent = "trigger.fired"
	OrderPlannedEvent = "order.planned"

	ComponentSkippedEvent  = "component.skipped"
	PlanningCompletedEvent = "planning.completed"
)

type ConfigLoaded struct {
	Config entities.ComponentPlanningConfig `json:"config"`
	Source string                           `json:"source"`
}

type ConfigRejected struct {
	ComponentID entities.ComponentID `json:"component_id"`
	Source      string               `json:"source"`
	Reason      string               `json:"reason"`
}

type TriggerFired struct {
	ComponentID        entities.ComponentID    `json:"component_id"`
	BucketDate         time.Time               `json:"bucket_date"`
	ProjectedOnHand    decimal.Decimal         `json:"projected_on_hand"`
	EffectiveThreshold decimal.Decimal         `json:"effective_threshold"`
	NetRequirement     decimal.Decimal         `json:"net_requirement"`
	Regime             entities.PlanningRegime `json:"regime"`
}

type OrderPlanned struct {
	PlannedOrder   entities.PlannedOrder `json:"planned_order"`
	NetRequirement decimal.Decimal       `json:"net_requirement"`
}

type ComponentSkipped struct {
	ComponentID entities.ComponentID `json:"component_id"`
	Reason      string               `json:"reason"`
}

type PlanningCompleted struct {
	RunID           uuid.UUID     `json:"run_id"`
	ComponentCount  int           `json:"component_count"`
	PlannedOrders   int           `json:"planned_orders"`
	TriggeredCount  int           `json:"triggered_buckets"`
	CalculationTime time.Duration `json:"calculation_time"`
}

func NewConfigLoadedEvent(config entities.ComponentPlanningConfig, source string) Event {
	return NewEvent(ConfigLoadedEvent, string(config.ComponentID()), ConfigLoaded{Config: config, Source: source})
}

func NewConfigRejectedEvent(componentID entities.ComponentID, source string, err error) Event {
	return NewEvent(ConfigRejectedEvent, string(componentID), ConfigRejected{
		ComponentID: componentID,
		Source:      source,
		Reason:      err.Error(),
	})
}

func NewTriggerFiredEvent(
	config entities.ComponentPlanningConfig,
	bucket entities.BucketProjection,
	regime entities.PlanningRegime,
) Event {
	return NewEvent(TriggerFiredEvent, string(config.ComponentID()), TriggerFired{
		ComponentID:        config.ComponentID(),
		BucketDate:         bucket.Date,
		ProjectedOnHand:    bucket.ProjectedOnHand,
		EffectiveThreshold: bucket.EffectiveThreshold,
		NetRequirement:     bucket.NetRequirement,
		Regime:             regime,
	})
}

func NewOrderPlannedEvent(order entities.PlannedOrder, netRequirement decimal.Decimal) Event {
	return NewEvent(OrderPlannedEvent, string(order.ComponentID), OrderPlanned{
		PlannedOrder:   order,
		NetRequirement: netRequirement,
	})
}

func NewComponentSkippedEvent(componentID entities.ComponentID, reason string) Event {
	return NewEvent(ComponentSkippedEvent, string(componentID), ComponentSkipped{
		ComponentID: componentID,
		Reason:      reason,
	})
}

func NewPlanningCompletedEvent(completed PlanningCompleted) Event {
	return NewEvent(PlanningCompletedEvent, completed.RunID.String(), completed)
}
