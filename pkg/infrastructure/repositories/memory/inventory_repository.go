package memory

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/repositories"
)

// InventoryRepository provides in-memory on-hand balances
type InventoryRepository struct {
	mu       sync.RWMutex
	balances map[entities.ComponentID]decimal.Decimal
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		balances: make(map[entities.ComponentID]decimal.Decimal),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadBalances adds balances to the repository; repeated components accumulate
func (r *InventoryRepository) LoadBalances(balances []*entities.OnHandBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, balance := range balances {
		current := r.balances[balance.ComponentID]
		r.balances[balance.ComponentID] = current.Add(balance.Quantity)
	}
	return nil
}

// GetOnHand returns the on-hand balance; unknown components have zero stock
func (r *InventoryRepository) GetOnHand(componentID entities.ComponentID) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	balance, exists := r.balances[componentID]
	if !exists {
		return decimal.Zero, nil
	}
	return balance, nil
}
