package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/vsinha/mrp-policy/pkg/application/services/planning"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/config"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/events"
	csvrepo "github.com/vsinha/mrp-policy/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/mrp-policy/pkg/interfaces/cli/output"
	"go.uber.org/zap"
)

type planOptions struct {
	items       string
	components  string
	demands     string
	receipts    string
	inventory   string
	startDate   string
	bucketDays  int
	horizonDays int
	concurrency int
	format      string
	outputDir   string
	eventsFile  string
	defaultMRP  string
	strict      bool
}

func newPlanCommand(a *app) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Project inventory per time bucket and generate planned orders",
		Long: `Run a single-level planning pass over every component with MRP enabled.

Component configs come from an item master CSV (--items), an HCL components
file (--components), or both. Flags override the matching config file values.
Release dates are offset by lead time on the planning.calendar working days.

Examples:
  mrp-policy plan --items items.csv --demands demands.csv --inventory inventory.csv
  mrp-policy plan --components components.hcl --demands demands.csv --bucket-days 1 --horizon 30
  mrp-policy plan --config mrp-policy.yaml --format csv --output-dir ./out
  mrp-policy plan --items items.csv --demands demands.csv --events events.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.runPlan(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.items, "items", "", "item master CSV file")
	cmd.Flags().StringVar(&opts.components, "components", "", "HCL components file")
	cmd.Flags().StringVar(&opts.demands, "demands", "", "demands CSV file")
	cmd.Flags().StringVar(&opts.receipts, "receipts", "", "scheduled receipts CSV file")
	cmd.Flags().StringVar(&opts.inventory, "inventory", "", "on-hand inventory CSV file")
	cmd.Flags().StringVar(&opts.startDate, "start", "", "planning start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&opts.bucketDays, "bucket-days", 0, "bucket length in days")
	cmd.Flags().IntVar(&opts.horizonDays, "horizon", 0, "planning horizon in days (default: per component)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "components planned in parallel")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (text, json, csv)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "write results into this directory instead of stdout")
	cmd.Flags().StringVar(&opts.eventsFile, "events", "", "write the run's event log (JSON lines) to this file")
	cmd.Flags().StringVar(&opts.defaultMRP, "default-mrp-type", "", "MRP type used for unrecognized item master codes (default: reject the row)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any item master row is rejected")

	return cmd
}

// applyOverrides copies set flags over the loaded configuration
func (o *planOptions) applyOverrides(conf *config.Configuration) error {
	overrideString(&conf.Inputs.Items, o.items)
	overrideString(&conf.Inputs.Components, o.components)
	overrideString(&conf.Inputs.Demands, o.demands)
	overrideString(&conf.Inputs.Receipts, o.receipts)
	overrideString(&conf.Inputs.Inventory, o.inventory)
	overrideString(&conf.Planning.StartDate, o.startDate)
	overrideString(&conf.Output.Format, o.format)
	overrideString(&conf.Output.Dir, o.outputDir)
	overrideString(&conf.Output.Events, o.eventsFile)
	overrideString(&conf.Inputs.DefaultMRPType, o.defaultMRP)
	if o.bucketDays != 0 {
		conf.Planning.BucketDays = o.bucketDays
	}
	if o.horizonDays != 0 {
		conf.Planning.HorizonDays = o.horizonDays
	}
	if o.concurrency != 0 {
		conf.Planning.Concurrency = o.concurrency
	}
	return conf.Validate()
}

func overrideString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func (a *app) runPlan(ctx context.Context, cmd *cobra.Command, opts *planOptions) error {
	conf := *a.conf
	if err := opts.applyOverrides(&conf); err != nil {
		return err
	}
	if conf.Inputs.Items == "" && conf.Inputs.Components == "" {
		return fmt.Errorf("no component configs given: set --items or --components")
	}

	calendar, err := conf.Calendar()
	if err != nil {
		return err
	}

	store := events.NewInMemoryEventStore(a.logger)
	summary := newRunSummary()
	if err := store.Subscribe(summaryEventTypes, summary); err != nil {
		return fmt.Errorf("failed to subscribe run summary: %w", err)
	}
	defer store.Unsubscribe(summary)

	configs, rejected, err := a.loadConfigs(conf.Inputs.Items, conf.Inputs.Components, conf.Inputs.DefaultMRPType, opts.strict, store)
	if err != nil {
		return err
	}

	configRepo := memory.NewConfigRepository(len(configs))
	if err := configRepo.LoadConfigs(configs); err != nil {
		return fmt.Errorf("failed to load configs into repository: %w", err)
	}

	demandRepo := memory.NewDemandRepository()
	supplyRepo := memory.NewSupplyRepository()
	inventoryRepo := memory.NewInventoryRepository()
	loader := csvrepo.NewLoader()

	if conf.Inputs.Demands != "" {
		demands, err := loader.LoadDemands(conf.Inputs.Demands)
		if err != nil {
			return err
		}
		if err := demandRepo.LoadDemands(demands); err != nil {
			return fmt.Errorf("failed to load demands into repository: %w", err)
		}
	}
	if conf.Inputs.Receipts != "" {
		receipts, err := loader.LoadReceipts(conf.Inputs.Receipts)
		if err != nil {
			return err
		}
		if err := supplyRepo.LoadReceipts(receipts); err != nil {
			return fmt.Errorf("failed to load receipts into repository: %w", err)
		}
	}
	if conf.Inputs.Inventory != "" {
		balances, err := loader.LoadInventory(conf.Inputs.Inventory)
		if err != nil {
			return err
		}
		if err := inventoryRepo.LoadBalances(balances); err != nil {
			return fmt.Errorf("failed to load inventory into repository: %w", err)
		}
	}

	service := planning.NewService(configRepo, demandRepo, supplyRepo, inventoryRepo, store, a.logger)
	result, err := service.Run(ctx, planning.Options{
		StartDate:   conf.StartDate(time.Now()),
		BucketDays:  conf.Planning.BucketDays,
		HorizonDays: conf.Planning.HorizonDays,
		Concurrency: conf.Planning.Concurrency,
		Calendar:    calendar,
	})
	store.Wait()
	if err != nil {
		return fmt.Errorf("planning run failed: %w", err)
	}

	for _, e := range store.ReadEventsByType(events.ConfigRejectedEvent) {
		if rejectedConfig, ok := e.Data().(events.ConfigRejected); ok {
			a.logger.Warn("item master row rejected",
				zap.String("op", "cli.plan"),
				zap.String("component", string(rejectedConfig.ComponentID)),
				zap.String("reason", rejectedConfig.Reason))
		}
	}
	a.logger.Info("planning summary",
		append([]zap.Field{
			zap.String("op", "cli.plan"),
			zap.String("run_id", result.RunID.String()),
			zap.String("calendar", calendar.CalendarID()),
			zap.Int("rejected_rows", len(rejected)),
		}, summary.fields()...)...)

	if conf.Output.Events != "" {
		log, err := store.ReadAllEvents(0)
		if err != nil {
			return fmt.Errorf("failed to read event log: %w", err)
		}
		if err := output.WriteEventLogFile(conf.Output.Events, log); err != nil {
			return err
		}
	}

	return output.Generate(cmd.OutOrStdout(), result, output.Config{
		Format:    conf.Output.Format,
		OutputDir: conf.Output.Dir,
		Verbose:   a.verbose,
	})
}
