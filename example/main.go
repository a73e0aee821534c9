package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/application/services/planning"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/services"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/erp"
	testhelpers "github.com/vsinha/mrp-policy/pkg/infrastructure/testing"
)

func main() {
	fmt.Println("🏭 Negative Inventory Planning Policy")
	fmt.Println()

	// Make-to-stock: keep a buffer of 50 on hand
	mts, err := entities.NewConfigBuilder("PRODUCT-MTS-001", 5, entities.Make).
		WithSafetyStock(decimal.NewFromInt(50)).
		Build()
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	evaluate("Make-to-stock", mts, 40, 50, 60)

	// Make-to-order: only react once the projection goes negative
	mto, err := entities.NewConfigBuilder("PRODUCT-MTO-001", 10, entities.Make).
		WithSafetyStock(decimal.NewFromInt(25)).
		WithAllowNegativeInventory(true).
		Build()
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	evaluate("Make-to-order", mto, -1, 0, 10)

	// Phantom assemblies are demand-driven
	phantom, err := entities.NewConfigBuilder("PHANTOM-SUBASSY-001", 0, entities.Phantom).
		WithAllowNegativeInventory(true).
		Build()
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	evaluate("Phantom", phantom, -15, 0)

	// Item master data decides the regime through the MRP type
	adapter := erp.NewAdapter(nil)
	configs, err := adapter.Adapt([]erp.ItemMasterRecord{
		{ComponentID: "ERP-MTS", LeadTimeDays: 7, Procurement: "Buy", MRPType: "MTS", SafetyStock: decimal.NewFromInt(20)},
		{ComponentID: "ERP-MTO", LeadTimeDays: 7, Procurement: "Buy", MRPType: "MTO", SafetyStock: decimal.NewFromInt(20)},
	})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	for _, config := range configs {
		evaluate("Item master "+string(config.ComponentID()), config, 10)
	}

	// A small planning run over weekly buckets
	configRepo, demandRepo, supplyRepo, inventoryRepo := testhelpers.BuildScenarioData()
	service := planning.NewService(configRepo, demandRepo, supplyRepo, inventoryRepo, nil, nil)

	opts := planning.DefaultOptions(testhelpers.ScenarioStart)
	opts.HorizonDays = 28

	result, err := service.Run(context.Background(), opts)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	fmt.Println("📊 Planning Run:")
	fmt.Printf("  Components: %d planned, %d skipped\n", len(result.Plans), len(result.Skipped))
	fmt.Printf("  Triggered Buckets: %d\n", result.TriggeredBuckets())
	for _, order := range result.PlannedOrders {
		fmt.Printf("  %-20s %6s %-10s release %s due %s\n",
			order.ComponentID,
			order.Quantity,
			order.OrderType,
			order.ReleaseDate.Format("2006-01-02"),
			order.DueDate.Format("2006-01-02"))
	}
}

func evaluate(label string, config entities.ComponentPlanningConfig, projections ...int64) {
	fmt.Printf("📦 %s (%s, threshold %s)\n",
		label, services.RegimeOf(config), services.EffectiveThreshold(config))

	for _, p := range projections {
		projected := decimal.NewFromInt(p)
		triggered, err := services.DecideTrigger(projected, config)
		if err != nil {
			fmt.Printf("  ❌ %v\n", err)
			continue
		}

		verdict := "ok"
		if triggered {
			verdict = "plan order"
		}
		fmt.Printf("  projected %5s -> %s\n", projected, verdict)
	}
	fmt.Println()
}
