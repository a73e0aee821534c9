// Package erp maps item-master vocabulary from source systems onto component
// planning configs. It is the only place that knows about MRP type codes.
package erp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMRPType is returned for MRP type codes with no known mapping
var ErrUnknownMRPType = errors.New("unknown mrp type")

// MRP type codes as they appear in item master extracts
const (
	MRPTypeMakeToStock  = "MTS"
	MRPTypeMakeToOrder  = "MTO"
	MRPTypePickToOrder  = "PTO"
	MRPTypeSAPPlanned   = "PD"
	MRPTypeSAPNoPlanned = "ND"
)

var negativeInventoryByMRPType = map[string]bool{
	MRPTypeMakeToStock:  false,
	MRPTypeSAPPlanned:   false,
	MRPTypeMakeToOrder:  true,
	MRPTypePickToOrder:  true,
	MRPTypeSAPNoPlanned: true,
}

// AllowsNegativeInventory maps an MRP type code to the allow-negative-inventory
// flag. Stocked types keep their buffer; order-driven types plan against zero.
func AllowsNegativeInventory(mrpType string) (bool, error) {
	code := strings.ToUpper(strings.TrimSpace(mrpType))
	allow, ok := negativeInventoryByMRPType[code]
	if !ok {
		return false, fmt.Errorf("%w: %q (expected: MTS, MTO, PTO, PD, or ND)", ErrUnknownMRPType, mrpType)
	}
	return allow, nil
}
