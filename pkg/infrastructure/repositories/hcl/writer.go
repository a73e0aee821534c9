package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/zclconf/go-cty/cty"
)

// Render produces an HCL document with one component block per config.
// Defaults are written out explicitly so the file documents the whole policy.
func Render(configs []entities.ComponentPlanningConfig) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	root := file.Body()

	for i, config := range configs {
		if i > 0 {
			root.AppendNewline()
		}
		body := root.AppendNewBlock("component", []string{string(config.ComponentID())}).Body()

		body.SetAttributeValue("lead_time_days", cty.NumberIntVal(int64(config.LeadTimeDays())))
		body.SetAttributeValue("procurement_type", cty.StringVal(config.ProcurementType().String()))
		body.SetAttributeValue("allow_negative_inventory", cty.BoolVal(config.AllowNegativeInventory()))

		safetyStock, err := numberVal(config.SafetyStock())
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", config.ComponentID(), err)
		}
		body.SetAttributeValue("safety_stock", safetyStock)
		body.SetAttributeValue("lot_sizing_rule", cty.StringVal(config.LotSizingRule().String()))

		optional := []struct {
			name  string
			value decimal.NullDecimal
		}{
			{"fixed_lot_size", config.FixedLotSize()},
			{"minimum_order_qty", config.MinimumOrderQty()},
			{"maximum_order_qty", config.MaximumOrderQty()},
			{"order_multiple", config.OrderMultiple()},
		}
		for _, opt := range optional {
			if !opt.value.Valid {
				continue
			}
			v, err := numberVal(opt.value.Decimal)
			if err != nil {
				return nil, fmt.Errorf("component %s: %w", config.ComponentID(), err)
			}
			body.SetAttributeValue(opt.name, v)
		}

		body.SetAttributeValue("planning_horizon_days", cty.NumberIntVal(int64(config.PlanningHorizonDays())))
		body.SetAttributeValue("mrp_enabled", cty.BoolVal(config.NeedsMRP()))
	}

	return file.Bytes(), nil
}

// WriteFile renders configs to filename
func WriteFile(filename string, configs []entities.ComponentPlanningConfig) error {
	data, err := Render(configs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write component file %s: %w", filename, err)
	}
	return nil
}

func numberVal(d decimal.Decimal) (cty.Value, error) {
	v, err := cty.ParseNumberVal(d.String())
	if err != nil {
		return cty.NilVal, fmt.Errorf("invalid quantity %s: %w", d, err)
	}
	return v, nil
}
