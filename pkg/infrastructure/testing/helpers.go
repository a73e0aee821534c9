package testing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/repositories/memory"
)

// Component ids used by the scenario fixtures
const (
	MTSProduct   entities.ComponentID = "PRODUCT-MTS-001"
	MTOProduct   entities.ComponentID = "PRODUCT-MTO-001"
	PhantomAssy  entities.ComponentID = "PHANTOM-SUBASSY-001"
	RawMaterial  entities.ComponentID = "RAW-BUY-001"
	DisabledPart entities.ComponentID = "DISABLED-001"
)

// ScenarioStart is the planning start date of the scenario fixtures, a Monday
var ScenarioStart = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func mustBuild(b *entities.ConfigBuilder) entities.ComponentPlanningConfig {
	config, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("invalid fixture config: %v", err))
	}
	return config
}

// MTSConfig is a stock-driven make item: safety stock 50, minimum order 100
func MTSConfig() entities.ComponentPlanningConfig {
	return mustBuild(entities.NewConfigBuilder(MTSProduct, 5, entities.Make).
		WithSafetyStock(decimal.NewFromInt(50)).
		WithLotSizingRule(entities.FixedOrderQuantity).
		WithFixedLotSize(decimal.NewFromInt(100)).
		WithMinimumOrderQty(decimal.NewFromInt(100)))
}

// MTOConfig is a demand-driven make item whose safety stock is ignored
func MTOConfig() entities.ComponentPlanningConfig {
	return mustBuild(entities.NewConfigBuilder(MTOProduct, 10, entities.Make).
		WithSafetyStock(decimal.NewFromInt(25)).
		WithAllowNegativeInventory(true))
}

// PhantomConfig is a demand-driven phantom assembly
func PhantomConfig() entities.ComponentPlanningConfig {
	return mustBuild(entities.NewConfigBuilder(PhantomAssy, 0, entities.Phantom).
		WithAllowNegativeInventory(true))
}

// RawMaterialConfig is a stock-driven purchased item ordered in multiples of 25
func RawMaterialConfig() entities.ComponentPlanningConfig {
	return mustBuild(entities.NewConfigBuilder(RawMaterial, 3, entities.Buy).
		WithSafetyStock(decimal.NewFromInt(10)).
		WithOrderMultiple(decimal.NewFromInt(25)))
}

// DisabledConfig is excluded from planning runs
func DisabledConfig() entities.ComponentPlanningConfig {
	return mustBuild(entities.NewConfigBuilder(DisabledPart, 1, entities.Buy).
		WithMRPEnabled(false))
}

// ScenarioConfigs returns every scenario fixture config
func ScenarioConfigs() []entities.ComponentPlanningConfig {
	return []entities.ComponentPlanningConfig{
		MTSConfig(),
		MTOConfig(),
		PhantomConfig(),
		RawMaterialConfig(),
		DisabledConfig(),
	}
}

func day(offset int) time.Time {
	return ScenarioStart.AddDate(0, 0, offset)
}

// BuildScenarioData builds repositories holding the scenario configs with
// their demand, supply and on-hand positions.
func BuildScenarioData() (*memory.ConfigRepository, *memory.DemandRepository, *memory.SupplyRepository, *memory.InventoryRepository) {
	configRepo := memory.NewConfigRepository(5)
	demandRepo := memory.NewDemandRepository()
	supplyRepo := memory.NewSupplyRepository()
	inventoryRepo := memory.NewInventoryRepository()

	if err := configRepo.LoadConfigs(ScenarioConfigs()); err != nil {
		panic(fmt.Sprintf("failed to load fixture configs: %v", err))
	}

	demands := []*entities.Demand{
		{ComponentID: MTSProduct, Quantity: decimal.NewFromInt(40), RequiredDate: day(2), Source: "SO-1001"},
		{ComponentID: MTSProduct, Quantity: decimal.NewFromInt(60), RequiredDate: day(9), Source: "SO-1002"},
		{ComponentID: MTOProduct, Quantity: decimal.NewFromInt(30), RequiredDate: day(1), Source: "SO-2001"},
		{ComponentID: PhantomAssy, Quantity: decimal.NewFromInt(15), RequiredDate: day(3), Source: "PARENT"},
		{ComponentID: RawMaterial, Quantity: decimal.NewFromInt(100), RequiredDate: day(0), Source: "WO-3001"},
		{ComponentID: DisabledPart, Quantity: decimal.NewFromInt(500), RequiredDate: day(0), Source: "SO-9999"},
	}
	_ = demandRepo.LoadDemands(demands)

	receipts := []*entities.ScheduledReceipt{
		{ComponentID: MTSProduct, Quantity: decimal.NewFromInt(10), AvailableDate: day(20), Reference: "PO-5001"},
	}
	_ = supplyRepo.LoadReceipts(receipts)

	balances := []*entities.OnHandBalance{
		{ComponentID: MTSProduct, Quantity: decimal.NewFromInt(120)},
		{ComponentID: PhantomAssy, Quantity: decimal.NewFromInt(5)},
		{ComponentID: RawMaterial, Quantity: decimal.NewFromInt(20)},
	}
	_ = inventoryRepo.LoadBalances(balances)

	return configRepo, demandRepo, supplyRepo, inventoryRepo
}
