package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vsinha/mrp-policy/pkg/application/dto"
)

// WriteText writes a human-readable summary of a planning run. Verbose output
// includes every bucket of every plan.
func WriteText(w io.Writer, result *dto.PlanningResult, verbose bool) error {
	fmt.Fprintf(w, "MRP Planning Results\n")
	fmt.Fprintf(w, "====================\n\n")
	fmt.Fprintf(w, "Run ID: %s\n", result.RunID)
	fmt.Fprintf(w, "Components Planned: %d\n", len(result.Plans))
	fmt.Fprintf(w, "Components Skipped: %d\n", len(result.Skipped))
	fmt.Fprintf(w, "Triggered Buckets: %d\n", result.TriggeredBuckets())
	fmt.Fprintf(w, "Planned Orders: %d\n", len(result.PlannedOrders))
	fmt.Fprintf(w, "Calculation Time: %v\n\n", result.Duration())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(result.PlannedOrders) > 0 {
		fmt.Fprintf(w, "Planned Orders:\n")
		fmt.Fprintln(tw, "Component\tQty\tRelease Date\tDue Date\tOrder Type")
		fmt.Fprintln(tw, "---------\t---\t------------\t--------\t----------")
		for _, order := range result.PlannedOrders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				order.ComponentID,
				order.Quantity,
				order.ReleaseDate.Format(dateLayout),
				order.DueDate.Format(dateLayout),
				order.OrderType)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped (MRP disabled):\n")
		for _, id := range result.Skipped {
			fmt.Fprintf(w, "  %s\n", id)
		}
		fmt.Fprintln(w)
	}

	if !verbose {
		return nil
	}

	pegged := false
	for _, order := range result.PlannedOrders {
		for _, p := range order.Pegging {
			if !pegged {
				fmt.Fprintf(w, "Pegging:\n")
				fmt.Fprintln(tw, "Component\tDue Date\tDemand\tRequired\tQty")
				pegged = true
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				order.ComponentID,
				order.DueDate.Format(dateLayout),
				p.DemandSource,
				p.RequiredDate.Format(dateLayout),
				p.Quantity)
		}
	}
	if pegged {
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	for _, plan := range result.Plans {
		fmt.Fprintf(w, "%s (%s):\n", plan.ComponentID, plan.Regime)
		fmt.Fprintln(tw, "Bucket\tDemand\tReceipts\tProjected\tThreshold\tTrigger\tNet\tPlanned")
		for _, b := range plan.Buckets {
			trigger := ""
			if b.Triggered {
				trigger = "YES"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				b.Date.Format(dateLayout),
				b.GrossRequirement,
				b.ScheduledReceipt,
				b.ProjectedOnHand,
				b.EffectiveThreshold,
				trigger,
				b.NetRequirement,
				b.PlannedReceipt)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	return nil
}
