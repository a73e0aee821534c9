package commands

import (
	"errors"

	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/services"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/erp"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/events"
	csvrepo "github.com/vsinha/mrp-policy/pkg/infrastructure/repositories/csv"
	hclrepo "github.com/vsinha/mrp-policy/pkg/infrastructure/repositories/hcl"
	"go.uber.org/zap"
)

// loadConfigs reads component configs from an item master CSV and/or an HCL
// components file. Item master rows that cannot be mapped are reported as
// rejected events and skipped unless strict is set. A non-empty
// defaultMRPType stands in for unrecognized MRP type codes.
func (a *app) loadConfigs(
	itemsFile, componentsFile, defaultMRPType string,
	strict bool,
	store events.EventStore,
) ([]entities.ComponentPlanningConfig, []*erp.RowError, error) {
	var configs []entities.ComponentPlanningConfig
	var rejected []*erp.RowError

	if itemsFile != "" {
		records, err := csvrepo.NewLoader().LoadItemMaster(itemsFile)
		if err != nil {
			return nil, nil, err
		}

		adapter, err := erp.NewAdapter(a.logger).WithDefaultMRPType(defaultMRPType)
		if err != nil {
			return nil, nil, err
		}
		adapted, err := adapter.Adapt(records)
		if err != nil {
			if strict {
				return nil, nil, err
			}
			rejected = rowErrors(err)
			for _, rowErr := range rejected {
				publish(store, events.NewConfigRejectedEvent(entities.ComponentID(rowErr.ComponentID), itemsFile, rowErr.Err), a.logger)
			}
		}
		for _, config := range adapted {
			publish(store, events.NewConfigLoadedEvent(config, itemsFile), a.logger)
		}
		configs = append(configs, adapted...)
	}

	if componentsFile != "" {
		loaded, err := hclrepo.NewLoader().LoadFile(componentsFile)
		if err != nil {
			return nil, nil, err
		}
		for _, config := range loaded {
			publish(store, events.NewConfigLoadedEvent(config, componentsFile), a.logger)
		}
		configs = append(configs, loaded...)
	}

	if err := services.NewConfigValidator().ValidateConfigs(configs).Err(); err != nil {
		return nil, nil, err
	}
	return configs, rejected, nil
}

func rowErrors(err error) []*erp.RowError {
	var result []*erp.RowError
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var rowErr *erp.RowError
		if errors.As(err, &rowErr) {
			result = append(result, rowErr)
		}
		return result
	}
	for _, e := range joined.Unwrap() {
		result = append(result, rowErrors(e)...)
	}
	return result
}

func publish(store events.EventStore, event events.Event, logger *zap.Logger) {
	if store == nil {
		return
	}
	if err := store.AppendEvent(event.StreamID(), event); err != nil {
		logger.Warn("failed to publish event", zap.String("type", event.Type()), zap.Error(err))
	}
}
