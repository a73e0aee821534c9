package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

// PlanningResult contains the complete output of one planning run
type PlanningResult struct {
	RunID         uuid.UUID                `json:"run_id"`
	StartedAt     time.Time                `json:"started_at"`
	CompletedAt   time.Time                `json:"completed_at"`
	Plans         []entities.ComponentPlan `json:"plans"`
	PlannedOrders []entities.PlannedOrder  `json:"planned_orders"`
	Skipped       []entities.ComponentID   `json:"skipped,omitempty"`
}

// Duration returns how long the run took
func (r *PlanningResult) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// TriggeredBuckets returns the number of triggered buckets across all plans
func (r *PlanningResult) TriggeredBuckets() int {
	total := 0
	for i := range r.Plans {
		total += r.Plans[i].TriggeredBuckets()
	}
	return total
}

// Plan returns the plan for a component, or nil when it was not planned
func (r *PlanningResult) Plan(componentID entities.ComponentID) *entities.ComponentPlan {
	for i := range r.Plans {
		if r.Plans[i].ComponentID == componentID {
			return &r.Plans[i]
		}
	}
	return nil
}
