package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/repositories"
)

// ConfigRepository provides in-memory component config storage
type ConfigRepository struct {
	mu         sync.RWMutex
	configs    []entities.ComponentPlanningConfig
	configsMap map[entities.ComponentID]int
}

// NewConfigRepository creates a new in-memory config repository
func NewConfigRepository(expectedConfigs int) *ConfigRepository {
	return &ConfigRepository{
		configs:    make([]entities.ComponentPlanningConfig, 0, expectedConfigs),
		configsMap: make(map[entities.ComponentID]int, expectedConfigs),
	}
}

// Verify interface compliance
var _ repositories.ConfigRepository = (*ConfigRepository)(nil)

// LoadConfigs loads configs into the repository, rejecting duplicates
func (r *ConfigRepository) LoadConfigs(configs []entities.ComponentPlanningConfig) error {
	for _, config := range configs {
		if err := r.SaveConfig(config); err != nil {
			return err
		}
	}
	return nil
}

// SaveConfig adds a validated config to the repository
func (r *ConfigRepository) SaveConfig(config entities.ComponentPlanningConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configsMap[config.ComponentID()]; exists {
		return fmt.Errorf("duplicate component id: %s", config.ComponentID())
	}
	r.configsMap[config.ComponentID()] = len(r.configs)
	r.configs = append(r.configs, config)
	return nil
}

// GetConfig returns the planning config for a component
func (r *ConfigRepository) GetConfig(componentID entities.ComponentID) (entities.ComponentPlanningConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.configsMap[componentID]
	if !exists {
		return entities.ComponentPlanningConfig{}, fmt.Errorf("config not found: %s", componentID)
	}
	return r.configs[index], nil
}

// GetAllConfigs returns all configs ordered by component id
func (r *ConfigRepository) GetAllConfigs() ([]entities.ComponentPlanningConfig, error) {
	r.mu.RLock()
	configs := make([]entities.ComponentPlanningConfig, len(r.configs))
	copy(configs, r.configs)
	r.mu.RUnlock()

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ComponentID() < configs[j].ComponentID()
	})
	return configs, nil
}

// Count returns the number of stored configs
func (r *ConfigRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.configs)
}
