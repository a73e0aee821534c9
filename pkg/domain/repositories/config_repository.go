package repositories

import "github.com/vsinha/mrp-policy/pkg/domain/entities"

// ConfigRepository provides access to component planning configs
type ConfigRepository interface {
	GetConfig(componentID entities.ComponentID) (entities.ComponentPlanningConfig, error)
	GetAllConfigs() ([]entities.ComponentPlanningConfig, error)
	LoadConfigs(configs []entities.ComponentPlanningConfig) error
}
