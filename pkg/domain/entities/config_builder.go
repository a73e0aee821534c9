package entities

import "github.com/shopspring/decimal"

// ConfigBuilder assembles a ComponentPlanningConfig. Nothing reaches a planning
// run until Build has validated the complete value.
type ConfigBuilder struct {
	config ComponentPlanningConfig
}

// NewConfigBuilder starts a config with the defaults: LotForLot sizing, zero
// safety stock, negative inventory disallowed, a 90 day horizon and MRP enabled.
func NewConfigBuilder(componentID ComponentID, leadTimeDays int, procurementType ProcurementType) *ConfigBuilder {
	return &ConfigBuilder{
		config: ComponentPlanningConfig{
			componentID:         componentID,
			leadTimeDays:        leadTimeDays,
			procurementType:     procurementType,
			safetyStock:         decimal.Zero,
			lotSizingRule:       LotForLot,
			planningHorizonDays: DefaultPlanningHorizonDays,
			mrpEnabled:          true,
		},
	}
}

func (b *ConfigBuilder) WithLotSizingRule(rule LotSizingRule) *ConfigBuilder {
	b.config.lotSizingRule = rule
	return b
}

func (b *ConfigBuilder) WithFixedLotSize(size decimal.Decimal) *ConfigBuilder {
	b.config.fixedLotSize = decimal.NewNullDecimal(size)
	return b
}

func (b *ConfigBuilder) WithMinimumOrderQty(qty decimal.Decimal) *ConfigBuilder {
	b.config.minimumOrderQty = decimal.NewNullDecimal(qty)
	return b
}

func (b *ConfigBuilder) WithMaximumOrderQty(qty decimal.Decimal) *ConfigBuilder {
	b.config.maximumOrderQty = decimal.NewNullDecimal(qty)
	return b
}

func (b *ConfigBuilder) WithOrderMultiple(multiple decimal.Decimal) *ConfigBuilder {
	b.config.orderMultiple = decimal.NewNullDecimal(multiple)
	return b
}

func (b *ConfigBuilder) WithSafetyStock(stock decimal.Decimal) *ConfigBuilder {
	b.config.safetyStock = stock
	return b
}

func (b *ConfigBuilder) WithPlanningHorizon(days int) *ConfigBuilder {
	b.config.planningHorizonDays = days
	return b
}

// WithAllowNegativeInventory selects the demand-driven regime when allow is
// true: safety stock is ignored and orders trigger only below zero.
func (b *ConfigBuilder) WithAllowNegativeInventory(allow bool) *ConfigBuilder {
	b.config.allowNegativeInventory = allow
	return b
}

func (b *ConfigBuilder) WithMRPEnabled(enabled bool) *ConfigBuilder {
	b.config.mrpEnabled = enabled
	return b
}

// Build validates the accumulated fields and returns the config by value.
// Later builder calls do not affect configs that were already built.
func (b *ConfigBuilder) Build() (ComponentPlanningConfig, error) {
	if err := b.config.Validate(); err != nil {
		return ComponentPlanningConfig{}, err
	}
	return b.config, nil
}
