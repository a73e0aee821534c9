package memory

import (
	"sort"
	"sync"

	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/repositories"
)

// DemandRepository provides in-memory demand storage
type DemandRepository struct {
	mu      sync.RWMutex
	demands map[entities.ComponentID][]entities.Demand
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{
		demands: make(map[entities.ComponentID][]entities.Demand),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemands loads demands into the repository
func (r *DemandRepository) LoadDemands(demands []*entities.Demand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, demand := range demands {
		r.demands[demand.ComponentID] = append(r.demands[demand.ComponentID], *demand)
	}
	return nil
}

// GetDemands returns a component's demands ordered by required date
func (r *DemandRepository) GetDemands(componentID entities.ComponentID) ([]*entities.Demand, error) {
	r.mu.RLock()
	stored := r.demands[componentID]
	demands := make([]*entities.Demand, 0, len(stored))
	for i := range stored {
		d := stored[i]
		demands = append(demands, &d)
	}
	r.mu.RUnlock()

	sort.SliceStable(demands, func(i, j int) bool {
		return demands[i].RequiredDate.Before(demands[j].RequiredDate)
	})
	return demands, nil
}

// GetAllDemands returns every stored demand
func (r *DemandRepository) GetAllDemands() ([]*entities.Demand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var demands []*entities.Demand
	for _, stored := range r.demands {
		for i := range stored {
			d := stored[i]
			demands = append(demands, &d)
		}
	}
	return demands, nil
}
