package repositories

import "github.com/vsinha/mrp-policy/pkg/domain/entities"

// DemandRepository provides access to gross requirements
type DemandRepository interface {
	GetDemands(componentID entities.ComponentID) ([]*entities.Demand, error)
	GetAllDemands() ([]*entities.Demand, error)
	LoadDemands(demands []*entities.Demand) error
}
