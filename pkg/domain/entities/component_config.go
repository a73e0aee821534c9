package entities

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ComponentID represents a unique material/part identifier
type ComponentID string

// DefaultPlanningHorizonDays is used when a config does not set a horizon
const DefaultPlanningHorizonDays = 90

// ProcurementType represents how a component is replenished
type ProcurementType int

const (
	ProcurementUnspecified ProcurementType = iota
	Make
	Buy
	Phantom
	Transfer
)

// String method for ProcurementType enum
func (p ProcurementType) String() string {
	switch p {
	case Make:
		return "Make"
	case Buy:
		return "Buy"
	case Phantom:
		return "Phantom"
	case Transfer:
		return "Transfer"
	default:
		return "Unknown"
	}
}

// IsValid reports whether p is one of the recognized procurement types
func (p ProcurementType) IsValid() bool {
	return p >= Make && p <= Transfer
}

// ParseProcurementType converts a source-system string into a ProcurementType
func ParseProcurementType(s string) (ProcurementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "make":
		return Make, nil
	case "buy":
		return Buy, nil
	case "phantom":
		return Phantom, nil
	case "transfer":
		return Transfer, nil
	default:
		return ProcurementUnspecified, &ConfigurationError{
			Field:  "procurement_type",
			Reason: fmt.Sprintf("unrecognized procurement type %q (expected: Make, Buy, Phantom, or Transfer)", s),
		}
	}
}

// LotSizingRule represents the lot sizing rule for a component.
// It affects order quantity only, never the trigger decision.
type LotSizingRule int

const (
	LotForLot LotSizingRule = iota
	FixedOrderQuantity
	EconomicOrderQuantity
	PeriodOrderQuantity
	MinMax
)

// String method for LotSizingRule enum
func (l LotSizingRule) String() string {
	switch l {
	case LotForLot:
		return "LotForLot"
	case FixedOrderQuantity:
		return "FixedOrderQuantity"
	case EconomicOrderQuantity:
		return "EconomicOrderQuantity"
	case PeriodOrderQuantity:
		return "PeriodOrderQuantity"
	case MinMax:
		return "MinMax"
	default:
		return "Unknown"
	}
}

// IsValid reports whether l is a known lot sizing rule
func (l LotSizingRule) IsValid() bool {
	return l >= LotForLot && l <= MinMax
}

// ParseLotSizingRule accepts full rule names and the common abbreviations
func ParseLotSizingRule(s string) (LotSizingRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lotforlot", "lfl":
		return LotForLot, nil
	case "fixedorderquantity", "foq":
		return FixedOrderQuantity, nil
	case "economicorderquantity", "eoq":
		return EconomicOrderQuantity, nil
	case "periodorderquantity", "poq":
		return PeriodOrderQuantity, nil
	case "minmax":
		return MinMax, nil
	default:
		return LotForLot, &ConfigurationError{
			Field:  "lot_sizing_rule",
			Reason: fmt.Sprintf("unrecognized lot sizing rule %q", s),
		}
	}
}

// ComponentPlanningConfig holds the MRP parameters of one component for one
// planning run. Values are produced by ConfigBuilder.Build and cannot be
// changed afterwards; all reads go through accessor methods.
type ComponentPlanningConfig struct {
	componentID            ComponentID
	leadTimeDays           int
	procurementType        ProcurementType
	allowNegativeInventory bool
	safetyStock            decimal.Decimal
	lotSizingRule          LotSizingRule
	fixedLotSize           decimal.NullDecimal
	minimumOrderQty        decimal.NullDecimal
	maximumOrderQty        decimal.NullDecimal
	orderMultiple          decimal.NullDecimal
	planningHorizonDays    int
	mrpEnabled             bool
}

func (c ComponentPlanningConfig) ComponentID() ComponentID { return c.componentID }
func (c ComponentPlanningConfig) LeadTimeDays() int { return c.leadTimeDays }
func (c ComponentPlanningConfig) ProcurementType() ProcurementType { return c.procurementType }
func (c ComponentPlanningConfig) AllowNegativeInventory() bool { return c.allowNegativeInventory }
func (c ComponentPlanningConfig) SafetyStock() decimal.Decimal { return c.safetyStock }
func (c ComponentPlanningConfig) LotSizingRule() LotSizingRule { return c.lotSizingRule }
func (c ComponentPlanningConfig) FixedLotSize() decimal.NullDecimal { return c.fixedLotSize }
func (c ComponentPlanningConfig) MinimumOrderQty() decimal.NullDecimal { return c.minimumOrderQty }
func (c ComponentPlanningConfig) MaximumOrderQty() decimal.NullDecimal { return c.maximumOrderQty }
func (c ComponentPlanningConfig) OrderMultiple() decimal.NullDecimal { return c.orderMultiple }
func (c ComponentPlanningConfig) PlanningHorizonDays() int { return c.planningHorizonDays }

// NeedsMRP reports whether the component takes part in planning runs
func (c ComponentPlanningConfig) NeedsMRP() bool {
	return c.mrpEnabled
}

// Validate checks every invariant of the configuration
func (c ComponentPlanningConfig) Validate() error {
	if err := c.ValidateTriggerInputs(); err != nil {
		return err
	}
	if strings.TrimSpace(string(c.componentID)) == "" {
		return c.invalid("component_id", "component id cannot be empty")
	}
	if !c.lotSizingRule.IsValid() {
		return c.invalid("lot_sizing_rule", "unrecognized lot sizing rule")
	}
	if c.planningHorizonDays < 0 {
		return c.invalid("planning_horizon_days", fmt.Sprintf("planning horizon cannot be negative, got %d", c.planningHorizonDays))
	}

	sizing := []struct {
		field string
		value decimal.NullDecimal
	}{
		{"fixed_lot_size", c.fixedLotSize},
		{"minimum_order_qty", c.minimumOrderQty},
		{"maximum_order_qty", c.maximumOrderQty},
		{"order_multiple", c.orderMultiple},
	}
	for _, s := range sizing {
		if s.value.Valid && s.value.Decimal.IsNegative() {
			return c.invalid(s.field, fmt.Sprintf("%s cannot be negative, got %s", s.field, s.value.Decimal))
		}
	}

	if c.minimumOrderQty.Valid && c.maximumOrderQty.Valid &&
		c.maximumOrderQty.Decimal.LessThan(c.minimumOrderQty.Decimal) {
		return c.invalid("maximum_order_qty", fmt.Sprintf(
			"maximum order quantity (%s) cannot be less than minimum order quantity (%s)",
			c.maximumOrderQty.Decimal, c.minimumOrderQty.Decimal,
		))
	}
	if c.lotSizingRule == FixedOrderQuantity && (!c.fixedLotSize.Valid || !c.fixedLotSize.Decimal.IsPositive()) {
		return c.invalid("fixed_lot_size", "lot sizing rule FixedOrderQuantity requires a positive fixed lot size")
	}

	return nil
}

// ValidateTriggerInputs checks only the fields the trigger decision depends on:
// safety stock, lead time and procurement type.
func (c ComponentPlanningConfig) ValidateTriggerInputs() error {
	if c.safetyStock.IsNegative() {
		return c.invalid("safety_stock", fmt.Sprintf("safety stock cannot be negative, got %s", c.safetyStock))
	}
	if c.leadTimeDays < 0 {
		return c.invalid("lead_time_days", fmt.Sprintf("lead time cannot be negative, got %d", c.leadTimeDays))
	}
	if !c.procurementType.IsValid() {
		return c.invalid("procurement_type", fmt.Sprintf("unrecognized procurement type %d", int(c.procurementType)))
	}
	return nil
}

// AdjustOrderQuantity applies the minimum order quantity, the order multiple
// and the maximum order quantity to a raw requirement, in that order.
func (c ComponentPlanningConfig) AdjustOrderQuantity(quantity decimal.Decimal) decimal.Decimal {
	if c.minimumOrderQty.Valid && quantity.LessThan(c.minimumOrderQty.Decimal) {
		quantity = c.minimumOrderQty.Decimal
	}

	if c.orderMultiple.Valid && c.orderMultiple.Decimal.IsPositive() {
		remainder := quantity.Mod(c.orderMultiple.Decimal)
		if remainder.IsPositive() {
			quantity = quantity.Sub(remainder).Add(c.orderMultiple.Decimal)
		}
	}

	if c.maximumOrderQty.Valid && quantity.GreaterThan(c.maximumOrderQty.Decimal) {
		quantity = c.maximumOrderQty.Decimal
	}

	return quantity
}

func (c ComponentPlanningConfig) invalid(field, reason string) error {
	return &ConfigurationError{ComponentID: c.componentID, Field: field, Reason: reason}
}

type componentConfigJSON struct {
	ComponentID            ComponentID      `json:"component_id"`
	LeadTimeDays           int              `json:"lead_time_days"`
	ProcurementType        string           `json:"procurement_type"`
	AllowNegativeInventory bool             `json:"allow_negative_inventory"`
	SafetyStock            decimal.Decimal  `json:"safety_stock"`
	LotSizingRule          string           `json:"lot_sizing_rule"`
	FixedLotSize           *decimal.Decimal `json:"fixed_lot_size,omitempty"`
	MinimumOrderQty        *decimal.Decimal `json:"minimum_order_qty,omitempty"`
	MaximumOrderQty        *decimal.Decimal `json:"maximum_order_qty,omitempty"`
	OrderMultiple          *decimal.Decimal `json:"order_multiple,omitempty"`
	PlanningHorizonDays    int              `json:"planning_horizon_days"`
	MRPEnabled             bool             `json:"mrp_enabled"`
}

// MarshalJSON renders the config for reports; there is no matching unmarshal,
// configs are always built through ConfigBuilder.
func (c ComponentPlanningConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(componentConfigJSON{
		ComponentID:            c.componentID,
		LeadTimeDays:           c.leadTimeDays,
		ProcurementType:        c.procurementType.String(),
		AllowNegativeInventory: c.allowNegativeInventory,
		SafetyStock:            c.safetyStock,
		LotSizingRule:          c.lotSizingRule.String(),
		FixedLotSize:           optional(c.fixedLotSize),
		MinimumOrderQty:        optional(c.minimumOrderQty),
		MaximumOrderQty:        optional(c.maximumOrderQty),
		OrderMultiple:          optional(c.orderMultiple),
		PlanningHorizonDays:    c.planningHorizonDays,
		MRPEnabled:             c.mrpEnabled,
	})
}

func optional(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
