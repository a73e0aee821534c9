// Package planning projects component inventory over time buckets and applies
// the trigger policy to each bucket to produce planned orders.
package planning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vsinha/mrp-policy/pkg/application/dto"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/repositories"
	"github.com/vsinha/mrp-policy/pkg/domain/services"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/events"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/logging"
	"go.uber.org/zap"
)

// Options controls bucket generation and parallelism for a run
type Options struct {
	StartDate  time.Time
	BucketDays int
	// HorizonDays overrides each component's own planning horizon when positive
	HorizonDays int
	// Concurrency bounds how many components are projected at once
	Concurrency int
	// Calendar offsets release dates by working days; nil counts every day
	Calendar *entities.WorkCalendar
}

// DefaultOptions returns weekly buckets starting at start on a continuous calendar
func DefaultOptions(start time.Time) Options {
	return Options{
		StartDate:   start,
		BucketDays:  7,
		Concurrency: 4,
		Calendar:    entities.ContinuousCalendar(),
	}
}

func (o Options) calendar() *entities.WorkCalendar {
	if o.Calendar == nil {
		return entities.ContinuousCalendar()
	}
	return o.Calendar
}

func (o Options) validate() error {
	if o.BucketDays <= 0 {
		return fmt.Errorf("bucket length must be positive, got %d", o.BucketDays)
	}
	if o.HorizonDays < 0 {
		return fmt.Errorf("planning horizon cannot be negative, got %d", o.HorizonDays)
	}
	if o.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", o.Concurrency)
	}
	return nil
}

// Service runs single-level projections for every configured component
type Service struct {
	configs    repositories.ConfigRepository
	demands    repositories.DemandRepository
	supply     repositories.SupplyRepository
	inventory  repositories.InventoryRepository
	eventStore events.EventStore
	logger     *zap.Logger
}

// NewService creates a planning service. eventStore and logger may be nil.
func NewService(
	configs repositories.ConfigRepository,
	demands repositories.DemandRepository,
	supply repositories.SupplyRepository,
	inventory repositories.InventoryRepository,
	eventStore events.EventStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		configs:    configs,
		demands:    demands,
		supply:     supply,
		inventory:  inventory,
		eventStore: eventStore,
		logger:     logging.OrNop(logger),
	}
}

// Run projects every component with MRP enabled. Components are evaluated
// concurrently; cancellation is checked before each component starts.
func (s *Service) Run(ctx context.Context, opts Options) (*dto.PlanningResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	configs, err := s.configs.GetAllConfigs()
	if err != nil {
		return nil, fmt.Errorf("failed to load component configs: %w", err)
	}

	result := &dto.PlanningResult{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}
	logger := s.logger.With(zap.String("run_id", result.RunID.String()))
	logger.Info("planning run started",
		zap.String("op", "planning.run"),
		zap.Int("components", len(configs)),
		zap.Int("concurrency", opts.Concurrency))

	plans := make([]*entities.ComponentPlan, len(configs))
	errs := make([]error, len(configs))
	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup

	for i, config := range configs {
		if ctx.Err() != nil {
			break
		}
		if !config.NeedsMRP() {
			result.Skipped = append(result.Skipped, config.ComponentID())
			s.publish(events.NewComponentSkippedEvent(config.ComponentID(), "mrp disabled"))
			logger.Debug("component skipped",
				zap.String("op", "planning.run"),
				zap.String("component", string(config.ComponentID())))
			continue
		}

		wg.Add(1)
		go func(i int, config entities.ComponentPlanningConfig) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			plans[i], errs[i] = s.PlanComponent(ctx, config, opts)
		}(i, config)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn("planning run cancelled", zap.String("op", "planning.run"), zap.Error(err))
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for _, plan := range plans {
		if plan == nil {
			continue
		}
		result.Plans = append(result.Plans, *plan)
		result.PlannedOrders = append(result.PlannedOrders, plan.PlannedOrders...)
	}
	result.CompletedAt = time.Now().UTC()

	s.publish(events.NewPlanningCompletedEvent(events.PlanningCompleted{
		RunID:           result.RunID,
		ComponentCount:  len(result.Plans),
		PlannedOrders:   len(result.PlannedOrders),
		TriggeredCount:  result.TriggeredBuckets(),
		CalculationTime: result.Duration(),
	}))
	logger.Info("planning run completed",
		zap.String("op", "planning.run"),
		zap.Int("planned", len(result.Plans)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("planned_orders", len(result.PlannedOrders)),
		zap.Duration("duration", result.Duration()))

	return result, nil
}

// PlanComponent projects one component across its buckets in date order.
// For each bucket, projected = carried + receipts - demand; a triggered bucket
// gets a planned receipt covering the net requirement, sized by the config's
// order quantity constraints, and due on the bucket date. The order is pegged
// to the bucket's demands that carried stock and receipts could not cover.
func (s *Service) PlanComponent(
	ctx context.Context,
	config entities.ComponentPlanningConfig,
	opts Options,
) (*entities.ComponentPlan, error) {
	id := config.ComponentID()

	horizon := config.PlanningHorizonDays()
	if opts.HorizonDays > 0 {
		horizon = opts.HorizonDays
	}
	buckets, err := GenerateBuckets(opts.StartDate, opts.BucketDays, horizon)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", id, err)
	}

	phased, err := s.timePhase(id, buckets, opts.BucketDays)
	if err != nil {
		return nil, err
	}
	calendar := opts.calendar()

	carried, err := s.inventory.GetOnHand(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get on-hand for %s: %w", id, err)
	}

	regime := services.RegimeOf(config)
	threshold := services.EffectiveThreshold(config)
	orderType, physical := entities.OrderTypeFor(config.ProcurementType())

	plan := &entities.ComponentPlan{
		ComponentID: id,
		Regime:      regime,
		Buckets:     make([]entities.BucketProjection, 0, len(buckets)),
	}

	for i, date := range buckets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bucket := entities.BucketProjection{
			Date:               date,
			GrossRequirement:   phased.gross[i],
			ScheduledReceipt:   phased.receipts[i],
			ProjectedOnHand:    carried.Add(phased.receipts[i]).Sub(phased.gross[i]),
			EffectiveThreshold: threshold,
		}

		bucket.Triggered, err = services.DecideTrigger(bucket.ProjectedOnHand, config)
		if err != nil {
			return nil, fmt.Errorf("component %s bucket %s: %w", id, date.Format("2006-01-02"), err)
		}

		if bucket.Triggered {
			bucket.NetRequirement, err = services.NetRequirement(bucket.ProjectedOnHand, config)
			if err != nil {
				return nil, err
			}
			s.publish(events.NewTriggerFiredEvent(config, bucket, regime))

			if physical {
				open := uncoveredDemands(carried.Add(phased.receipts[i]), phased.demands[i])
				order, err := s.planOrder(config, orderType, bucket, calendar, open)
				if err != nil {
					return nil, err
				}
				if order != nil {
					bucket.PlannedReceipt = order.Quantity
					plan.PlannedOrders = append(plan.PlannedOrders, *order)
				}
			} else {
				// phantom requirements pass straight through to the components
				bucket.PlannedReceipt = bucket.NetRequirement
			}
		}

		plan.Buckets = append(plan.Buckets, bucket)
		carried = bucket.ProjectedOnHand.Add(bucket.PlannedReceipt)
	}

	s.logger.Debug("component planned",
		zap.String("op", "planning.component"),
		zap.String("component", string(id)),
		zap.Stringer("regime", regime),
		zap.Int("buckets", len(plan.Buckets)),
		zap.Int("triggered", plan.TriggeredBuckets()),
		zap.Int("planned_orders", len(plan.PlannedOrders)))

	return plan, nil
}

func (s *Service) planOrder(
	config entities.ComponentPlanningConfig,
	orderType entities.OrderType,
	bucket entities.BucketProjection,
	calendar *entities.WorkCalendar,
	demands []*entities.Demand,
) (*entities.PlannedOrder, error) {
	quantity := config.AdjustOrderQuantity(bucket.NetRequirement)
	if !quantity.IsPositive() {
		s.logger.Warn("order quantity capped to zero, no order planned",
			zap.String("op", "planning.order"),
			zap.String("component", string(config.ComponentID())),
			zap.Stringer("net_requirement", bucket.NetRequirement))
		return nil, nil
	}

	due := bucket.Date
	release := calendar.SubtractWorkingDays(due, config.LeadTimeDays())
	order, err := entities.NewPlannedOrder(config.ComponentID(), quantity, release, due, orderType)
	if err != nil {
		return nil, fmt.Errorf("failed to plan order for %s: %w", config.ComponentID(), err)
	}
	order.PegDemands(demands)

	s.publish(events.NewOrderPlannedEvent(*order, bucket.NetRequirement))
	return order, nil
}

// phasedRequirements holds demand and supply summed per bucket, plus the
// demands behind each bucket in required-date order for pegging
type phasedRequirements struct {
	gross    []decimal.Decimal
	receipts []decimal.Decimal
	demands  [][]*entities.Demand
}

// timePhase sums demand and scheduled receipts into buckets. Anything beyond
// the last bucket is outside the horizon and ignored.
func (s *Service) timePhase(
	id entities.ComponentID,
	buckets []time.Time,
	bucketDays int,
) (*phasedRequirements, error) {
	phased := &phasedRequirements{
		gross:    make([]decimal.Decimal, len(buckets)),
		receipts: make([]decimal.Decimal, len(buckets)),
		demands:  make([][]*entities.Demand, len(buckets)),
	}

	demands, err := s.demands.GetDemands(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get demands for %s: %w", id, err)
	}
	for _, d := range demands {
		if i := bucketIndex(buckets, bucketDays, d.RequiredDate); i >= 0 {
			phased.gross[i] = phased.gross[i].Add(d.Quantity)
			phased.demands[i] = append(phased.demands[i], d)
		}
	}

	scheduled, err := s.supply.GetReceipts(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled receipts for %s: %w", id, err)
	}
	for _, r := range scheduled {
		if i := bucketIndex(buckets, bucketDays, r.AvailableDate); i >= 0 {
			phased.receipts[i] = phased.receipts[i].Add(r.Quantity)
		}
	}

	return phased, nil
}

func (s *Service) publish(event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("op", "planning.publish"),
			zap.String("type", event.Type()),
			zap.Error(err))
	}
}
