package entities

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConfigBuilder_Defaults(t *testing.T) {
	config, err := NewConfigBuilder("BIKE-001", 5, Make).Build()
	if err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}

	if config.ComponentID() != "BIKE-001" {
		t.Errorf("Expected component id BIKE-001, got %s", config.ComponentID())
	}
	if config.LeadTimeDays() != 5 {
		t.Errorf("Expected lead time 5, got %d", config.LeadTimeDays())
	}
	if config.LotSizingRule() != LotForLot {
		t.Errorf("Expected LotForLot, got %s", config.LotSizingRule())
	}
	if config.AllowNegativeInventory() {
		t.Error("Expected negative inventory to be disallowed by default")
	}
	if !config.SafetyStock().IsZero() {
		t.Errorf("Expected zero safety stock, got %s", config.SafetyStock())
	}
	if config.PlanningHorizonDays() != DefaultPlanningHorizonDays {
		t.Errorf("Expected horizon %d, got %d", DefaultPlanningHorizonDays, config.PlanningHorizonDays())
	}
	if !config.NeedsMRP() {
		t.Error("Expected MRP to be enabled by default")
	}
	if config.FixedLotSize().Valid || config.MinimumOrderQty().Valid {
		t.Error("Expected optional sizing fields to be unset")
	}
}

func TestConfigBuilder_Setters(t *testing.T) {
	config, err := NewConfigBuilder("FRAME-001", 7, Buy).
		WithLotSizingRule(FixedOrderQuantity).
		WithFixedLotSize(decimal.NewFromInt(100)).
		WithMinimumOrderQty(decimal.NewFromInt(50)).
		WithSafetyStock(decimal.NewFromInt(20)).
		WithAllowNegativeInventory(true).
		WithPlanningHorizon(30).
		WithMRPEnabled(false).
		Build()
	if err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}

	if config.LotSizingRule() != FixedOrderQuantity {
		t.Errorf("Expected FixedOrderQuantity, got %s", config.LotSizingRule())
	}
	if !config.FixedLotSize().Valid || !config.FixedLotSize().Decimal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected fixed lot size 100, got %v", config.FixedLotSize())
	}
	if !config.MinimumOrderQty().Decimal.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected minimum order qty 50, got %v", config.MinimumOrderQty())
	}
	if !config.SafetyStock().Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected safety stock 20, got %s", config.SafetyStock())
	}
	if !config.AllowNegativeInventory() {
		t.Error("Expected negative inventory to be allowed")
	}
	if config.PlanningHorizonDays() != 30 {
		t.Errorf("Expected horizon 30, got %d", config.PlanningHorizonDays())
	}
	if config.NeedsMRP() {
		t.Error("Expected MRP to be disabled")
	}
}

func TestConfigBuilder_BuiltValueIsIsolated(t *testing.T) {
	builder := NewConfigBuilder("PART-001", 3, Buy).WithSafetyStock(decimal.NewFromInt(10))
	first, err := builder.Build()
	if err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}

	builder.WithSafetyStock(decimal.NewFromInt(99))

	if !first.SafetyStock().Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected earlier config to keep safety stock 10, got %s", first.SafetyStock())
	}
}

func TestConfigBuilder_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		builder     *ConfigBuilder
		expectField string
		expectError string
	}{
		{
			"negative safety stock",
			NewConfigBuilder("PART", 1, Buy).WithSafetyStock(decimal.NewFromInt(-5)),
			"safety_stock",
			"invalid configuration: component PART: safety stock cannot be negative, got -5",
		},
		{
			"negative lead time",
			NewConfigBuilder("PART", -1, Buy),
			"lead_time_days",
			"invalid configuration: component PART: lead time cannot be negative, got -1",
		},
		{
			"unspecified procurement",
			NewConfigBuilder("PART", 1, ProcurementUnspecified),
			"procurement_type",
			"invalid configuration: component PART: unrecognized procurement type 0",
		},
		{
			"out of range procurement",
			NewConfigBuilder("PART", 1, ProcurementType(42)),
			"procurement_type",
			"invalid configuration: component PART: unrecognized procurement type 42",
		},
		{
			"empty component id",
			NewConfigBuilder(" ", 1, Buy),
			"component_id",
			"invalid configuration: component  : component id cannot be empty",
		},
		{
			"negative horizon",
			NewConfigBuilder("PART", 1, Buy).WithPlanningHorizon(-1),
			"planning_horizon_days",
			"invalid configuration: component PART: planning horizon cannot be negative, got -1",
		},
		{
			"unknown lot sizing rule",
			NewConfigBuilder("PART", 1, Buy).WithLotSizingRule(LotSizingRule(9)),
			"lot_sizing_rule",
			"invalid configuration: component PART: unrecognized lot sizing rule",
		},
		{
			"negative minimum order qty",
			NewConfigBuilder("PART", 1, Buy).WithMinimumOrderQty(decimal.NewFromInt(-1)),
			"minimum_order_qty",
			"invalid configuration: component PART: minimum_order_qty cannot be negative, got -1",
		},
		{
			"max below min",
			NewConfigBuilder("PART", 1, Buy).
				WithMinimumOrderQty(decimal.NewFromInt(10)).
				WithMaximumOrderQty(decimal.NewFromInt(5)),
			"maximum_order_qty",
			"invalid configuration: component PART: maximum order quantity (5) cannot be less than minimum order quantity (10)",
		},
		{
			"FOQ without lot size",
			NewConfigBuilder("PART", 1, Buy).WithLotSizingRule(FixedOrderQuantity),
			"fixed_lot_size",
			"invalid configuration: component PART: lot sizing rule FixedOrderQuantity requires a positive fixed lot size",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.builder.Build()
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
			}

			var configErr *ConfigurationError
			if !errors.As(err, &configErr) {
				t.Fatalf("Expected *ConfigurationError, got %T", err)
			}
			if configErr.Field != tc.expectField {
				t.Errorf("Expected field %s, got %s", tc.expectField, configErr.Field)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestComponentPlanningConfig_ZeroValueIsInvalid(t *testing.T) {
	var config ComponentPlanningConfig
	err := config.ValidateTriggerInputs()
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Expected zero-value config to be rejected, got %v", err)
	}
}

func TestAdjustOrderQuantity(t *testing.T) {
	config, err := NewConfigBuilder("WHEEL-001", 3, Buy).
		WithMinimumOrderQty(decimal.NewFromInt(50)).
		WithMaximumOrderQty(decimal.NewFromInt(500)).
		WithOrderMultiple(decimal.NewFromInt(10)).
		Build()
	if err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}

	testCases := []struct {
		name     string
		input    int64
		expected int64
	}{
		{"below minimum", 30, 50},
		{"rounded to multiple", 75, 80},
		{"capped at maximum", 600, 500},
		{"already aligned", 120, 120},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := config.AdjustOrderQuantity(decimal.NewFromInt(tc.input))
			if !got.Equal(decimal.NewFromInt(tc.expected)) {
				t.Errorf("Expected %d, got %s", tc.expected, got)
			}
		})
	}
}

func TestAdjustOrderQuantity_OrderMultipleOnly(t *testing.T) {
	config, err := NewConfigBuilder("SCREW-001", 1, Buy).
		WithOrderMultiple(decimal.NewFromInt(100)).
		Build()
	if err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}

	if got := config.AdjustOrderQuantity(decimal.NewFromInt(123)); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected 123 to round up to 200, got %s", got)
	}
	if got := config.AdjustOrderQuantity(decimal.NewFromInt(200)); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected 200 to stay 200, got %s", got)
	}
	if got := config.AdjustOrderQuantity(decimal.RequireFromString("0.5")); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected 0.5 to round up to 100, got %s", got)
	}
}

func TestParseProcurementType(t *testing.T) {
	testCases := []struct {
		input    string
		expected ProcurementType
	}{
		{"Make", Make},
		{"buy", Buy},
		{" PHANTOM ", Phantom},
		{"Transfer", Transfer},
	}
	for _, tc := range testCases {
		got, err := ParseProcurementType(tc.input)
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("Expected %s for %q, got %s", tc.expected, tc.input, got)
		}
	}

	_, err := ParseProcurementType("Borrow")
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for unknown procurement, got %v", err)
	}
}

func TestParseLotSizingRule(t *testing.T) {
	testCases := []struct {
		input    string
		expected LotSizingRule
	}{
		{"", LotForLot},
		{"LotForLot", LotForLot},
		{"FOQ", FixedOrderQuantity},
		{"eoq", EconomicOrderQuantity},
		{"PeriodOrderQuantity", PeriodOrderQuantity},
		{"MinMax", MinMax},
	}
	for _, tc := range testCases {
		got, err := ParseLotSizingRule(tc.input)
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("Expected %s for %q, got %s", tc.expected, tc.input, got)
		}
	}

	if _, err := ParseLotSizingRule("Weekly"); err == nil {
		t.Error("Expected error for unknown lot sizing rule")
	}
}

func TestComponentPlanningConfig_MarshalJSON(t *testing.T) {
	config, err := NewConfigBuilder("PRODUCT-MTS-001", 5, Make).
		WithLotSizingRule(FixedOrderQuantity).
		WithFixedLotSize(decimal.NewFromInt(100)).
		WithSafetyStock(decimal.NewFromInt(50)).
		Build()
	if err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}

	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"component_id":"PRODUCT-MTS-001"`,
		`"procurement_type":"Make"`,
		`"lot_sizing_rule":"FixedOrderQuantity"`,
		`"safety_stock":"50"`,
		`"fixed_lot_size":"100"`,
		`"allow_negative_inventory":false`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected JSON to contain %s, got %s", want, out)
		}
	}
	if strings.Contains(out, "minimum_order_qty") {
		t.Errorf("Expected unset minimum_order_qty to be omitted, got %s", out)
	}
}
