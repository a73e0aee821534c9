package repositories

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

// InventoryRepository provides access to on-hand balances
type InventoryRepository interface {
	GetOnHand(componentID entities.ComponentID) (decimal.Decimal, error)
	LoadBalances(balances []*entities.OnHandBalance) error
}
