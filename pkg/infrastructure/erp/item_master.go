package erp

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"go.uber.org/zap"
)

// ItemMasterRecord is one row of an item master extract, still in the source
// system's vocabulary
type ItemMasterRecord struct {
	ComponentID     string
	LeadTimeDays    int
	Procurement     string
	MRPType         string
	SafetyStock     decimal.Decimal
	LotSizingRule   string
	FixedLotSize    decimal.NullDecimal
	MinimumOrderQty decimal.NullDecimal
}

// RowError ties an adapter failure to the record that caused it
type RowError struct {
	Row         int
	ComponentID string
	Err         error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("item master row %d (%s): %v", e.Row, e.ComponentID, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Adapter converts item master records into component planning configs
type Adapter struct {
	logger         *zap.Logger
	defaultMRPType string
}

// NewAdapter creates an item master adapter
func NewAdapter(logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{logger: logger}
}

// WithDefaultMRPType maps records with an unrecognized MRP type code as if
// they carried code instead of rejecting them. An empty code restores
// rejection.
func (a *Adapter) WithDefaultMRPType(code string) (*Adapter, error) {
	if code != "" {
		if _, err := AllowsNegativeInventory(code); err != nil {
			return nil, fmt.Errorf("default mrp type: %w", err)
		}
	}
	a.defaultMRPType = code
	return a, nil
}

// ToConfig converts a single record through the config builder
func (a *Adapter) ToConfig(record ItemMasterRecord) (entities.ComponentPlanningConfig, error) {
	allowNegative, err := AllowsNegativeInventory(record.MRPType)
	if errors.Is(err, ErrUnknownMRPType) && a.defaultMRPType != "" {
		a.logger.Warn("unknown mrp type, using default",
			zap.String("op", "erp.ToConfig"),
			zap.String("component_id", record.ComponentID),
			zap.String("mrp_type", record.MRPType),
			zap.String("default_mrp_type", a.defaultMRPType),
		)
		allowNegative, err = AllowsNegativeInventory(a.defaultMRPType)
	}
	if err != nil {
		return entities.ComponentPlanningConfig{}, err
	}

	procurement, err := entities.ParseProcurementType(record.Procurement)
	if err != nil {
		return entities.ComponentPlanningConfig{}, err
	}

	lotRule, err := entities.ParseLotSizingRule(record.LotSizingRule)
	if err != nil {
		return entities.ComponentPlanningConfig{}, err
	}

	builder := entities.NewConfigBuilder(entities.ComponentID(record.ComponentID), record.LeadTimeDays, procurement).
		WithAllowNegativeInventory(allowNegative).
		WithSafetyStock(record.SafetyStock).
		WithLotSizingRule(lotRule)
	if record.FixedLotSize.Valid {
		builder.WithFixedLotSize(record.FixedLotSize.Decimal)
	}
	if record.MinimumOrderQty.Valid {
		builder.WithMinimumOrderQty(record.MinimumOrderQty.Decimal)
	}

	config, err := builder.Build()
	if err != nil {
		return entities.ComponentPlanningConfig{}, err
	}

	a.logger.Debug("mapped item master record",
		zap.String("op", "erp.ToConfig"),
		zap.String("component_id", record.ComponentID),
		zap.String("mrp_type", record.MRPType),
		zap.Bool("allow_negative_inventory", allowNegative),
	)
	return config, nil
}

// Adapt converts every record. Rows that fail are skipped and reported
// together in the returned error; valid rows are still returned.
func (a *Adapter) Adapt(records []ItemMasterRecord) ([]entities.ComponentPlanningConfig, error) {
	configs := make([]entities.ComponentPlanningConfig, 0, len(records))
	var errs []error

	for i, record := range records {
		config, err := a.ToConfig(record)
		if err != nil {
			a.logger.Warn("rejected item master record",
				zap.String("op", "erp.Adapt"),
				zap.Int("row", i+1),
				zap.String("component_id", record.ComponentID),
				zap.Error(err),
			)
			errs = append(errs, &RowError{Row: i + 1, ComponentID: record.ComponentID, Err: err})
			continue
		}
		configs = append(configs, config)
	}

	a.logger.Info("adapted item master",
		zap.String("op", "erp.Adapt"),
		zap.Int("records", len(records)),
		zap.Int("configs", len(configs)),
		zap.Int("rejected", len(errs)),
	)
	return configs, errors.Join(errs...)
}
