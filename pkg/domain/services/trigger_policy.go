package services

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

// EffectiveThreshold returns the quantity projected inventory is compared
// against: zero when negative inventory is allowed, the safety stock otherwise.
func EffectiveThreshold(config entities.ComponentPlanningConfig) decimal.Decimal {
	if config.AllowNegativeInventory() {
		return decimal.Zero
	}
	return config.SafetyStock()
}

// RegimeOf reports which operating regime the config's flag selects
func RegimeOf(config entities.ComponentPlanningConfig) entities.PlanningRegime {
	if config.AllowNegativeInventory() {
		return entities.DemandDriven
	}
	return entities.StockDriven
}

// DecideTrigger reports whether a planned order must be generated for a bucket
// whose projected inventory is projected. The comparison is strict: a
// projection equal to the threshold does not trigger. Procurement type does not
// influence the outcome beyond being validated.
//
// The function is pure and safe for concurrent use.
func DecideTrigger(projected decimal.Decimal, config entities.ComponentPlanningConfig) (bool, error) {
	if err := config.ValidateTriggerInputs(); err != nil {
		return false, err
	}
	return projected.LessThan(EffectiveThreshold(config)), nil
}

// NetRequirement returns the quantity needed to bring projected inventory back
// up to the effective threshold, or zero when the bucket does not trigger.
func NetRequirement(projected decimal.Decimal, config entities.ComponentPlanningConfig) (decimal.Decimal, error) {
	triggered, err := DecideTrigger(projected, config)
	if err != nil {
		return decimal.Zero, err
	}
	if !triggered {
		return decimal.Zero, nil
	}
	return EffectiveThreshold(config).Sub(projected), nil
}
