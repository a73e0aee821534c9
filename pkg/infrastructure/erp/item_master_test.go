package erp

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"go.uber.org/zap"
)

func TestAllowsNegativeInventory(t *testing.T) {
	testCases := []struct {
		mrpType  string
		expected bool
	}{
		{"MTS", false},
		{"PD", false},
		{"MTO", true},
		{"mto", true},
		{" PTO ", true},
		{"ND", true},
	}

	for _, tc := range testCases {
		t.Run(tc.mrpType, func(t *testing.T) {
			got, err := AllowsNegativeInventory(tc.mrpType)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %v for %q, got %v", tc.expected, tc.mrpType, got)
			}
		})
	}

	if _, err := AllowsNegativeInventory("VB"); !errors.Is(err, ErrUnknownMRPType) {
		t.Errorf("Expected ErrUnknownMRPType, got %v", err)
	}
}

func TestAdapter_Adapt_ERPLoad(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	adapter := NewAdapter(logger)

	records := []ItemMasterRecord{
		{ComponentID: "FG-BIKE-001", LeadTimeDays: 7, Procurement: "Make", MRPType: "MTS", SafetyStock: decimal.NewFromInt(20)},
		{ComponentID: "SG-SPECIAL-ORDER", LeadTimeDays: 15, Procurement: "Make", MRPType: "MTO", SafetyStock: decimal.Zero},
	}

	configs, err := adapter.Adapt(records)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}

	if configs[0].AllowNegativeInventory() {
		t.Error("Expected MTS item to disallow negative inventory")
	}
	if !configs[0].SafetyStock().Equal(decimal.NewFromInt(20)) {
		t.Errorf("Expected safety stock 20, got %s", configs[0].SafetyStock())
	}
	if !configs[1].AllowNegativeInventory() {
		t.Error("Expected MTO item to allow negative inventory")
	}
	if configs[1].LeadTimeDays() != 15 {
		t.Errorf("Expected lead time 15, got %d", configs[1].LeadTimeDays())
	}
}

func TestAdapter_ToConfig_SizingFields(t *testing.T) {
	adapter := NewAdapter(nil)

	config, err := adapter.ToConfig(ItemMasterRecord{
		ComponentID:     "PRODUCT-MTS-001",
		LeadTimeDays:    5,
		Procurement:     "Make",
		MRPType:         "MTS",
		SafetyStock:     decimal.NewFromInt(50),
		LotSizingRule:   "FOQ",
		FixedLotSize:    decimal.NewNullDecimal(decimal.NewFromInt(100)),
		MinimumOrderQty: decimal.NewNullDecimal(decimal.NewFromInt(100)),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.LotSizingRule() != entities.FixedOrderQuantity {
		t.Errorf("Expected FixedOrderQuantity, got %s", config.LotSizingRule())
	}
	if !config.FixedLotSize().Decimal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected fixed lot size 100, got %v", config.FixedLotSize())
	}
	if !config.MinimumOrderQty().Valid {
		t.Error("Expected minimum order qty to be set")
	}
}

func TestAdapter_Adapt_CollectsRowErrors(t *testing.T) {
	adapter := NewAdapter(zap.NewNop())

	records := []ItemMasterRecord{
		{ComponentID: "GOOD", LeadTimeDays: 1, Procurement: "Buy", MRPType: "MTS"},
		{ComponentID: "BAD-TYPE", LeadTimeDays: 1, Procurement: "Buy", MRPType: "XX"},
		{ComponentID: "BAD-STOCK", LeadTimeDays: 1, Procurement: "Buy", MRPType: "MTS", SafetyStock: decimal.NewFromInt(-5)},
		{ComponentID: "BAD-PROC", LeadTimeDays: 1, Procurement: "Lease", MRPType: "MTS"},
	}

	configs, err := adapter.Adapt(records)
	if len(configs) != 1 || configs[0].ComponentID() != "GOOD" {
		t.Fatalf("Expected only GOOD to be adapted, got %d configs", len(configs))
	}
	if err == nil {
		t.Fatal("Expected an error for rejected rows")
	}
	if !errors.Is(err, ErrUnknownMRPType) {
		t.Errorf("Expected ErrUnknownMRPType in joined error, got %v", err)
	}
	if !errors.Is(err, entities.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration in joined error, got %v", err)
	}

	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Row != 2 {
		t.Errorf("Expected first row error to point at row 2, got %v", rowErr)
	}
}

func TestAdapter_WithDefaultMRPType(t *testing.T) {
	record := ItemMasterRecord{ComponentID: "LEGACY-VB", LeadTimeDays: 3, Procurement: "Buy", MRPType: "VB"}

	testCases := []struct {
		name          string
		defaultType   string
		expectErr     bool
		allowNegative bool
	}{
		{"no default rejects", "", true, false},
		{"stock default", "MTS", false, false},
		{"order default", "mto", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, err := NewAdapter(zap.NewNop()).WithDefaultMRPType(tc.defaultType)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			config, err := adapter.ToConfig(record)
			if tc.expectErr {
				if !errors.Is(err, ErrUnknownMRPType) {
					t.Errorf("Expected ErrUnknownMRPType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if config.AllowNegativeInventory() != tc.allowNegative {
				t.Errorf("Expected allow negative %v, got %v", tc.allowNegative, config.AllowNegativeInventory())
			}
		})
	}
}

func TestAdapter_WithDefaultMRPType_KnownTypeWins(t *testing.T) {
	adapter, err := NewAdapter(nil).WithDefaultMRPType("MTO")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	config, err := adapter.ToConfig(ItemMasterRecord{ComponentID: "STOCKED", LeadTimeDays: 1, Procurement: "Make", MRPType: "MTS"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.AllowNegativeInventory() {
		t.Error("Expected MTS record to keep its own mapping")
	}
}

func TestAdapter_WithDefaultMRPType_InvalidDefault(t *testing.T) {
	if _, err := NewAdapter(nil).WithDefaultMRPType("VB"); !errors.Is(err, ErrUnknownMRPType) {
		t.Errorf("Expected ErrUnknownMRPType for an invalid default, got %v", err)
	}
}
