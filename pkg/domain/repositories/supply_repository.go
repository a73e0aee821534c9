package repositories

import "github.com/vsinha/mrp-policy/pkg/domain/entities"

// SupplyRepository provides access to scheduled receipts
type SupplyRepository interface {
	GetReceipts(componentID entities.ComponentID) ([]*entities.ScheduledReceipt, error)
	LoadReceipts(receipts []*entities.ScheduledReceipt) error
}
