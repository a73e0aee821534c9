// Package hcl reads and writes component planning configs as HCL files:
//
//	component "PRODUCT-MTS-001" {
//	  lead_time_days           = 5
//	  procurement_type         = "Make"
//	  allow_negative_inventory = false
//	  safety_stock             = 50
//	  lot_sizing_rule          = "FixedOrderQuantity"
//	  fixed_lot_size           = 100
//	}
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

type componentFile struct {
	Components []componentBlock `hcl:"component,block"`
}

// Quantities are kept as expressions and converted straight to decimals so
// values like 0.1 are not routed through float64.
type componentBlock struct {
	ID                     string         `hcl:"id,label"`
	LeadTimeDays           int            `hcl:"lead_time_days"`
	ProcurementType        string         `hcl:"procurement_type"`
	AllowNegativeInventory *bool          `hcl:"allow_negative_inventory,optional"`
	SafetyStock            hcl.Expression `hcl:"safety_stock,optional"`
	LotSizingRule          *string        `hcl:"lot_sizing_rule,optional"`
	FixedLotSize           hcl.Expression `hcl:"fixed_lot_size,optional"`
	MinimumOrderQty        hcl.Expression `hcl:"minimum_order_qty,optional"`
	MaximumOrderQty        hcl.Expression `hcl:"maximum_order_qty,optional"`
	OrderMultiple          hcl.Expression `hcl:"order_multiple,optional"`
	PlanningHorizonDays    *int           `hcl:"planning_horizon_days,optional"`
	MRPEnabled             *bool          `hcl:"mrp_enabled,optional"`
}

// Loader parses HCL component files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// LoadFile reads every component block in an HCL file
func (l *Loader) LoadFile(filename string) ([]entities.ComponentPlanningConfig, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read component file %s: %w", filename, err)
	}
	return l.Parse(src, filename)
}

// Parse decodes HCL source. filename is used only in diagnostics.
func (l *Loader) Parse(src []byte, filename string) ([]entities.ComponentPlanningConfig, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var doc componentFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	configs := make([]entities.ComponentPlanningConfig, 0, len(doc.Components))
	for _, block := range doc.Components {
		config, err := block.toConfig()
		if err != nil {
			return nil, fmt.Errorf("%s: component %q: %w", filename, block.ID, err)
		}
		configs = append(configs, config)
	}

	return configs, nil
}

func (b componentBlock) toConfig() (entities.ComponentPlanningConfig, error) {
	procurement, err := entities.ParseProcurementType(b.ProcurementType)
	if err != nil {
		return entities.ComponentPlanningConfig{}, err
	}

	builder := entities.NewConfigBuilder(entities.ComponentID(b.ID), b.LeadTimeDays, procurement)

	if b.AllowNegativeInventory != nil {
		builder.WithAllowNegativeInventory(*b.AllowNegativeInventory)
	}
	if b.LotSizingRule != nil {
		rule, err := entities.ParseLotSizingRule(*b.LotSizingRule)
		if err != nil {
			return entities.ComponentPlanningConfig{}, err
		}
		builder.WithLotSizingRule(rule)
	}

	quantities := []struct {
		name string
		expr hcl.Expression
		set  func(decimal.Decimal) *entities.ConfigBuilder
	}{
		{"safety_stock", b.SafetyStock, builder.WithSafetyStock},
		{"fixed_lot_size", b.FixedLotSize, builder.WithFixedLotSize},
		{"minimum_order_qty", b.MinimumOrderQty, builder.WithMinimumOrderQty},
		{"maximum_order_qty", b.MaximumOrderQty, builder.WithMaximumOrderQty},
		{"order_multiple", b.OrderMultiple, builder.WithOrderMultiple},
	}
	for _, q := range quantities {
		value, err := quantity(q.expr, q.name)
		if err != nil {
			return entities.ComponentPlanningConfig{}, err
		}
		if value.Valid {
			q.set(value.Decimal)
		}
	}

	if b.PlanningHorizonDays != nil {
		builder.WithPlanningHorizon(*b.PlanningHorizonDays)
	}
	if b.MRPEnabled != nil {
		builder.WithMRPEnabled(*b.MRPEnabled)
	}

	return builder.Build()
}

// quantity evaluates an optional numeric attribute. A missing attribute
// yields an invalid NullDecimal.
func quantity(expr hcl.Expression, name string) (decimal.NullDecimal, error) {
	if expr == nil {
		return decimal.NullDecimal{}, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return decimal.NullDecimal{}, fmt.Errorf("%s: %s", name, diags.Error())
	}
	if !val.IsKnown() {
		return decimal.NullDecimal{}, fmt.Errorf("%s: value is not known", name)
	}
	if val.IsNull() {
		return decimal.NullDecimal{}, nil
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%s: expected a number, got %s", name, val.Type().FriendlyName())
	}

	d, err := decimal.NewFromString(num.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%s: %w", name, err)
	}
	return decimal.NewNullDecimal(d), nil
}
