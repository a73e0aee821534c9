package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/erp"
)

// DateLayout is the date format used in every CSV input
const DateLayout = "2006-01-02"

var (
	itemMasterHeader = []string{"component_id", "lead_time_days", "procurement_type", "mrp_type", "safety_stock", "lot_sizing_rule", "fixed_lot_size", "minimum_order_qty"}
	demandsHeader    = []string{"component_id", "quantity", "required_date", "source"}
	receiptsHeader   = []string{"component_id", "quantity", "available_date", "reference"}
	inventoryHeader  = []string{"component_id", "on_hand"}
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadItemMaster loads item master records from a CSV file. Records are
// returned in source vocabulary; erp.Adapter turns them into configs.
func (l *Loader) LoadItemMaster(filename string) ([]erp.ItemMasterRecord, error) {
	records, err := readRecords(filename, "items", itemMasterHeader)
	if err != nil {
		return nil, err
	}

	items := make([]erp.ItemMasterRecord, 0, len(records))
	for i, record := range records {
		item, err := parseItemMaster(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// LoadDemands loads gross requirements from a CSV file
func (l *Loader) LoadDemands(filename string) ([]*entities.Demand, error) {
	records, err := readRecords(filename, "demands", demandsHeader)
	if err != nil {
		return nil, err
	}

	var demands []*entities.Demand
	for i, record := range records {
		id, err := parseComponentID(record[0])
		if err != nil {
			return nil, fmt.Errorf("demands CSV row %d: %w", i+2, err)
		}
		quantity, date, err := parseQuantityAndDate(record, "required_date")
		if err != nil {
			return nil, fmt.Errorf("demands CSV row %d: %w", i+2, err)
		}

		demands = append(demands, &entities.Demand{
			ComponentID:  id,
			Quantity:     quantity,
			RequiredDate: date,
			Source:       strings.TrimSpace(record[3]),
		})
	}

	return demands, nil
}

// LoadReceipts loads scheduled receipts from a CSV file
func (l *Loader) LoadReceipts(filename string) ([]*entities.ScheduledReceipt, error) {
	records, err := readRecords(filename, "receipts", receiptsHeader)
	if err != nil {
		return nil, err
	}

	var receipts []*entities.ScheduledReceipt
	for i, record := range records {
		id, err := parseComponentID(record[0])
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: %w", i+2, err)
		}
		quantity, date, err := parseQuantityAndDate(record, "available_date")
		if err != nil {
			return nil, fmt.Errorf("receipts CSV row %d: %w", i+2, err)
		}

		receipts = append(receipts, &entities.ScheduledReceipt{
			ComponentID:   id,
			Quantity:      quantity,
			AvailableDate: date,
			Reference:     strings.TrimSpace(record[3]),
		})
	}

	return receipts, nil
}

// LoadInventory loads on-hand balances from a CSV file. Balances may be
// negative when the source already carries backorders.
func (l *Loader) LoadInventory(filename string) ([]*entities.OnHandBalance, error) {
	records, err := readRecords(filename, "inventory", inventoryHeader)
	if err != nil {
		return nil, err
	}

	var balances []*entities.OnHandBalance
	for i, record := range records {
		id, err := parseComponentID(record[0])
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		onHand, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid on_hand: %s", i+2, record[1])
		}

		balances = append(balances, &entities.OnHandBalance{
			ComponentID: id,
			Quantity:    onHand,
		})
	}

	return balances, nil
}

// readRecords opens a CSV file, validates its header and column counts and
// returns the data rows
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseItemMaster(record []string) (erp.ItemMasterRecord, error) {
	leadTimeDays, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return erp.ItemMasterRecord{}, fmt.Errorf("invalid lead_time_days: %s", record[1])
	}

	safetyStock := decimal.Zero
	if s := strings.TrimSpace(record[4]); s != "" {
		safetyStock, err = decimal.NewFromString(s)
		if err != nil {
			return erp.ItemMasterRecord{}, fmt.Errorf("invalid safety_stock: %s", record[4])
		}
	}

	fixedLotSize, err := parseOptionalDecimal(record[6], "fixed_lot_size")
	if err != nil {
		return erp.ItemMasterRecord{}, err
	}

	minimumOrderQty, err := parseOptionalDecimal(record[7], "minimum_order_qty")
	if err != nil {
		return erp.ItemMasterRecord{}, err
	}

	return erp.ItemMasterRecord{
		ComponentID:     strings.TrimSpace(record[0]),
		LeadTimeDays:    leadTimeDays,
		Procurement:     record[2],
		MRPType:         record[3],
		SafetyStock:     safetyStock,
		LotSizingRule:   record[5],
		FixedLotSize:    fixedLotSize,
		MinimumOrderQty: minimumOrderQty,
	}, nil
}

func parseOptionalDecimal(s, field string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s: %s", field, s)
	}
	return decimal.NewNullDecimal(d), nil
}

func parseComponentID(s string) (entities.ComponentID, error) {
	id := strings.TrimSpace(s)
	if id == "" {
		return "", fmt.Errorf("component_id cannot be empty")
	}
	return entities.ComponentID(id), nil
}

// parseQuantityAndDate reads the quantity and date columns of demand and
// receipt rows. Quantities cannot be negative.
func parseQuantityAndDate(record []string, dateField string) (decimal.Decimal, time.Time, error) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid quantity: %s", record[1])
	}
	if quantity.IsNegative() {
		return decimal.Zero, time.Time{}, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(record[2]))
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid %s format: %s (expected YYYY-MM-DD)", dateField, record[2])
	}

	return quantity, date, nil
}
