package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoader_LoadItemMaster(t *testing.T) {
	path := writeFile(t, "items.csv", `component_id,lead_time_days,procurement_type,mrp_type,safety_stock,lot_sizing_rule,fixed_lot_size,minimum_order_qty
PRODUCT-MTS-001,5,Make,MTS,50,FOQ,100,100
PRODUCT-MTO-001,10,Make,MTO,0,LotForLot,,
PHANTOM-SUBASSY-001,0,Phantom,MTO,,LotForLot,,
`)

	items, err := NewLoader().LoadItemMaster(path)
	if err != nil {
		t.Fatalf("Failed to load items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	mts := items[0]
	if mts.ComponentID != "PRODUCT-MTS-001" || mts.LeadTimeDays != 5 || mts.MRPType != "MTS" {
		t.Errorf("Unexpected first record: %+v", mts)
	}
	if !mts.SafetyStock.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected safety stock 50, got %s", mts.SafetyStock)
	}
	if !mts.FixedLotSize.Valid || !mts.FixedLotSize.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected fixed lot size 100, got %v", mts.FixedLotSize)
	}

	if items[1].FixedLotSize.Valid || items[1].MinimumOrderQty.Valid {
		t.Error("Expected empty sizing columns to stay unset")
	}
	if !items[2].SafetyStock.IsZero() {
		t.Errorf("Expected blank safety stock to default to zero, got %s", items[2].SafetyStock)
	}
}

func TestLoader_LoadItemMaster_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expectError string
	}{
		{
			"header only",
			"component_id,lead_time_days,procurement_type,mrp_type,safety_stock,lot_sizing_rule,fixed_lot_size,minimum_order_qty\n",
			"items CSV must have header and at least one data row",
		},
		{
			"wrong header",
			"part_number,lead_time_days\nX,1\n",
			"items CSV header mismatch",
		},
		{
			"bad lead time",
			"component_id,lead_time_days,procurement_type,mrp_type,safety_stock,lot_sizing_rule,fixed_lot_size,minimum_order_qty\nX,soon,Make,MTS,0,,,\n",
			"items CSV row 2: invalid lead_time_days: soon",
		},
		{
			"bad safety stock",
			"component_id,lead_time_days,procurement_type,mrp_type,safety_stock,lot_sizing_rule,fixed_lot_size,minimum_order_qty\nX,1,Make,MTS,lots,,,\n",
			"items CSV row 2: invalid safety_stock: lots",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "items.csv", tc.content)
			_, err := NewLoader().LoadItemMaster(path)
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestLoader_LoadDemandsAndReceipts(t *testing.T) {
	demandsPath := writeFile(t, "demands.csv", `component_id,quantity,required_date,source
TEST-001,100,2025-11-01,SO-1
TEST-001,50,2025-11-05,SO-2
`)
	receiptsPath := writeFile(t, "receipts.csv", `component_id,quantity,available_date,reference
TEST-001,30,2025-11-05,PO-1
`)

	loader := NewLoader()
	demands, err := loader.LoadDemands(demandsPath)
	if err != nil {
		t.Fatalf("Failed to load demands: %v", err)
	}
	if len(demands) != 2 {
		t.Fatalf("Expected 2 demands, got %d", len(demands))
	}
	if !demands[0].RequiredDate.Equal(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected required date %v", demands[0].RequiredDate)
	}
	if demands[1].Source != "SO-2" {
		t.Errorf("Expected source SO-2, got %s", demands[1].Source)
	}

	receipts, err := loader.LoadReceipts(receiptsPath)
	if err != nil {
		t.Fatalf("Failed to load receipts: %v", err)
	}
	if len(receipts) != 1 || !receipts[0].Quantity.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Unexpected receipts: %+v", receipts)
	}
}

func TestLoader_LoadDemands_BadDate(t *testing.T) {
	path := writeFile(t, "demands.csv", "component_id,quantity,required_date,source\nTEST-001,10,11/01/2025,SO-1\n")

	_, err := NewLoader().LoadDemands(path)
	if err == nil || !strings.Contains(err.Error(), "invalid required_date format") {
		t.Errorf("Expected date format error, got %v", err)
	}
}

func TestLoader_TrimsComponentIDs(t *testing.T) {
	demandsPath := writeFile(t, "demands.csv", "component_id,quantity,required_date,source\n PART-1 ,10,2025-11-01, SO-1\n")
	receiptsPath := writeFile(t, "receipts.csv", "component_id,quantity,available_date,reference\n\tPART-1,5,2025-11-02,PO-1\n")
	inventoryPath := writeFile(t, "inventory.csv", "component_id,on_hand\nPART-1 ,20\n")

	loader := NewLoader()
	demands, err := loader.LoadDemands(demandsPath)
	if err != nil {
		t.Fatalf("Failed to load demands: %v", err)
	}
	if demands[0].ComponentID != "PART-1" {
		t.Errorf("Expected demand component PART-1, got %q", demands[0].ComponentID)
	}
	if demands[0].Source != "SO-1" {
		t.Errorf("Expected source SO-1, got %q", demands[0].Source)
	}

	receipts, err := loader.LoadReceipts(receiptsPath)
	if err != nil {
		t.Fatalf("Failed to load receipts: %v", err)
	}
	if receipts[0].ComponentID != "PART-1" {
		t.Errorf("Expected receipt component PART-1, got %q", receipts[0].ComponentID)
	}

	balances, err := loader.LoadInventory(inventoryPath)
	if err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}
	if balances[0].ComponentID != "PART-1" {
		t.Errorf("Expected inventory component PART-1, got %q", balances[0].ComponentID)
	}
}

func TestLoader_RejectsInvalidRows(t *testing.T) {
	loader := NewLoader()
	testCases := []struct {
		name     string
		load     func(string) error
		file     string
		content  string
		expected string
	}{
		{
			name: "negative demand",
			load: func(path string) error { _, err := loader.LoadDemands(path); return err },
			file: "demands.csv",
			content: "component_id,quantity,required_date,source\nPART-1,-10,2025-11-01,SO-1\n",
			expected: "demands CSV row 2: quantity cannot be negative",
		},
		{
			name: "negative receipt",
			load: func(path string) error { _, err := loader.LoadReceipts(path); return err },
			file: "receipts.csv",
			content: "component_id,quantity,available_date,reference\nPART-1,5,2025-11-01,PO-1\nPART-1,-0.5,2025-11-02,PO-2\n",
			expected: "receipts CSV row 3: quantity cannot be negative",
		},
		{
			name: "blank demand component",
			load: func(path string) error { _, err := loader.LoadDemands(path); return err },
			file: "demands.csv",
			content: "component_id,quantity,required_date,source\n  ,10,2025-11-01,SO-1\n",
			expected: "component_id cannot be empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.load(writeFile(t, tc.file, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestLoader_LoadInventory(t *testing.T) {
	path := writeFile(t, "inventory.csv", "component_id,on_hand\nTEST-001,20\nBACKORDERED,-5.5\n")

	balances, err := NewLoader().LoadInventory(path)
	if err != nil {
		t.Fatalf("Failed to load inventory: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("Expected 2 balances, got %d", len(balances))
	}
	if !balances[1].Quantity.Equal(decimal.RequireFromString("-5.5")) {
		t.Errorf("Expected -5.5, got %s", balances[1].Quantity)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadInventory(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil || !strings.Contains(err.Error(), "failed to open inventory file") {
		t.Errorf("Expected open error, got %v", err)
	}
}
