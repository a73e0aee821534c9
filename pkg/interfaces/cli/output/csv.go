package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vsinha/mrp-policy/pkg/domain/entities"
)

var (
	ordersHeader = []string{
		"component_id", "quantity", "release_date", "due_date", "order_type", "order_id", "pegged_quantity",
	}
	peggingHeader     = []string{"order_id", "component_id", "demand_source", "required_date", "quantity"}
	projectionsHeader = []string{
		"component_id", "date", "gross_requirement", "scheduled_receipt", "projected_on_hand",
		"effective_threshold", "triggered", "net_requirement", "planned_receipt",
	}
)

// WriteOrdersCSV writes planned orders with a header row
func WriteOrdersCSV(w io.Writer, orders []entities.PlannedOrder) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ordersHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, order := range orders {
		record := []string{
			string(order.ComponentID),
			order.Quantity.String(),
			order.ReleaseDate.Format(dateLayout),
			order.DueDate.Format(dateLayout),
			order.OrderType.String(),
			order.ID.String(),
			order.Quantity.Sub(order.UnpeggedQuantity()).String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write order for %s: %w", order.ComponentID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteProjectionsCSV writes one row per bucket of every plan
func WriteProjectionsCSV(w io.Writer, plans []entities.ComponentPlan) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(projectionsHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, plan := range plans {
		for _, b := range plan.Buckets {
			record := []string{
				string(plan.ComponentID),
				b.Date.Format(dateLayout),
				b.GrossRequirement.String(),
				b.ScheduledReceipt.String(),
				b.ProjectedOnHand.String(),
				b.EffectiveThreshold.String(),
				strconv.FormatBool(b.Triggered),
				b.NetRequirement.String(),
				b.PlannedReceipt.String(),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write bucket for %s: %w", plan.ComponentID, err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePeggingCSV writes one row per demand allocation of every order
func WritePeggingCSV(w io.Writer, orders []entities.PlannedOrder) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(peggingHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, order := range orders {
		for _, p := range order.Pegging {
			record := []string{
				p.OrderID.String(),
				string(order.ComponentID),
				p.DemandSource,
				p.RequiredDate.Format(dateLayout),
				p.Quantity.String(),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write pegging for %s: %w", order.ComponentID, err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
