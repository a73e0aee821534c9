package planning

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

// uncoveredDemands consumes available supply against a bucket's demands in
// required-date order and returns what is left of each demand. Fully covered
// demands are dropped. The input demands are not modified.
func uncoveredDemands(available decimal.Decimal, demands []*entities.Demand) []*entities.Demand {
	if available.IsNegative() {
		available = decimal.Zero
	}

	var uncovered []*entities.Demand
	for _, d := range demands {
		covered := decimal.Min(available, d.Quantity)
		available = available.Sub(covered)

		if open := d.Quantity.Sub(covered); open.IsPositive() {
			rest := *d
			rest.Quantity = open
			uncovered = append(uncovered, &rest)
		}
	}
	return uncovered
}
