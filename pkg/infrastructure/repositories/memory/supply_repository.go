package memory

import (
	"sort"
	"sync"

	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/repositories"
)

// SupplyRepository provides in-memory scheduled receipt storage
type SupplyRepository struct {
	mu       sync.RWMutex
	receipts map[entities.ComponentID][]entities.ScheduledReceipt
}

// NewSupplyRepository creates a new in-memory supply repository
func NewSupplyRepository() *SupplyRepository {
	return &SupplyRepository{
		receipts: make(map[entities.ComponentID][]entities.ScheduledReceipt),
	}
}

// Verify interface compliance
var _ repositories.SupplyRepository = (*SupplyRepository)(nil)

// LoadReceipts loads scheduled receipts into the repository
func (r *SupplyRepository) LoadReceipts(receipts []*entities.ScheduledReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, receipt := range receipts {
		r.receipts[receipt.ComponentID] = append(r.receipts[receipt.ComponentID], *receipt)
	}
	return nil
}

// GetReceipts returns a component's receipts ordered by available date
func (r *SupplyRepository) GetReceipts(componentID entities.ComponentID) ([]*entities.ScheduledReceipt, error) {
	r.mu.RLock()
	stored := r.receipts[componentID]
	receipts := make([]*entities.ScheduledReceipt, 0, len(stored))
	for i := range stored {
		s := stored[i]
		receipts = append(receipts, &s)
	}
	r.mu.RUnlock()

	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].AvailableDate.Before(receipts[j].AvailableDate)
	})
	return receipts, nil
}
