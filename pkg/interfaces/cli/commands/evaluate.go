package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/vsinha/mrp-policy/pkg/application/dto"
	"github.com/vsinha/mrp-policy/pkg/domain/entities"
	"github.com/vsinha/mrp-policy/pkg/domain/services"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/erp"
	hclrepo "github.com/vsinha/mrp-policy/pkg/infrastructure/repositories/hcl"
	"github.com/vsinha/mrp-policy/pkg/interfaces/cli/output"
	"go.uber.org/zap"
)

type evaluateOptions struct {
	projected      string
	componentID    string
	componentsFile string
	leadTimeDays   int
	procurement    string
	safetyStock    string
	allowNegative  bool
	mrpType        string
	format         string
}

func newEvaluateCommand(a *app) *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Decide whether a projected inventory level triggers a planned order",
		Long: `Evaluate the trigger policy for one projected inventory value.

The component is described either by flags or by looking it up in an HCL
components file with --components and --component.

Examples:
  mrp-policy evaluate --projected 40 --safety-stock 50
  mrp-policy evaluate --projected -1 --allow-negative
  mrp-policy evaluate --projected 0 --mrp-type MTO --procurement Buy
  mrp-policy evaluate --projected 12 --components components.hcl --component PRODUCT-MTS-001`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEvaluate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.projected, "projected", "", "projected inventory for the bucket (required)")
	cmd.Flags().StringVar(&opts.componentID, "component", "ADHOC", "component id")
	cmd.Flags().StringVar(&opts.componentsFile, "components", "", "HCL components file to look the component up in")
	cmd.Flags().IntVar(&opts.leadTimeDays, "lead-time", 0, "lead time in days")
	cmd.Flags().StringVar(&opts.procurement, "procurement", "Make", "procurement type (Make, Buy, Phantom, Transfer)")
	cmd.Flags().StringVar(&opts.safetyStock, "safety-stock", "0", "safety stock quantity")
	cmd.Flags().BoolVar(&opts.allowNegative, "allow-negative", false, "allow negative projected inventory (demand-driven)")
	cmd.Flags().StringVar(&opts.mrpType, "mrp-type", "", "derive --allow-negative from an item master MRP type (MTS, MTO, PTO, PD, ND)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (text, json); defaults to output.format from config")
	_ = cmd.MarkFlagRequired("projected")

	return cmd
}

func (a *app) runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	projected, err := decimal.NewFromString(opts.projected)
	if err != nil {
		return fmt.Errorf("invalid --projected value %q: %w", opts.projected, err)
	}

	config, err := a.evaluationConfig(cmd, opts)
	if err != nil {
		return err
	}

	triggered, err := services.DecideTrigger(projected, config)
	if err != nil {
		return err
	}
	net, err := services.NetRequirement(projected, config)
	if err != nil {
		return err
	}

	decision := dto.TriggerDecision{
		ComponentID:        config.ComponentID(),
		ProjectedOnHand:    projected,
		EffectiveThreshold: services.EffectiveThreshold(config),
		Regime:             services.RegimeOf(config),
		Triggered:          triggered,
		NetRequirement:     net,
	}

	a.logger.Debug("trigger evaluated",
		zap.String("op", "cli.evaluate"),
		zap.String("component", string(decision.ComponentID)),
		zap.Stringer("projected", projected),
		zap.Stringer("threshold", decision.EffectiveThreshold),
		zap.Bool("triggered", triggered))

	format := opts.format
	if format == "" {
		format = a.conf.Output.Format
	}
	return output.WriteDecision(cmd.OutOrStdout(), decision, format)
}

func (a *app) evaluationConfig(cmd *cobra.Command, opts *evaluateOptions) (entities.ComponentPlanningConfig, error) {
	if opts.componentsFile != "" {
		configs, err := hclrepo.NewLoader().LoadFile(opts.componentsFile)
		if err != nil {
			return entities.ComponentPlanningConfig{}, err
		}
		for _, config := range configs {
			if string(config.ComponentID()) == opts.componentID {
				return config, nil
			}
		}
		return entities.ComponentPlanningConfig{}, fmt.Errorf("component %s not found in %s", opts.componentID, opts.componentsFile)
	}

	procurement, err := entities.ParseProcurementType(opts.procurement)
	if err != nil {
		return entities.ComponentPlanningConfig{}, err
	}
	safetyStock, err := decimal.NewFromString(opts.safetyStock)
	if err != nil {
		return entities.ComponentPlanningConfig{}, fmt.Errorf("invalid --safety-stock value %q: %w", opts.safetyStock, err)
	}

	allowNegative := opts.allowNegative
	if opts.mrpType != "" {
		if cmd.Flags().Changed("allow-negative") {
			return entities.ComponentPlanningConfig{}, fmt.Errorf("--mrp-type and --allow-negative are mutually exclusive")
		}
		allowNegative, err = erp.AllowsNegativeInventory(opts.mrpType)
		if err != nil {
			return entities.ComponentPlanningConfig{}, err
		}
	}

	return entities.NewConfigBuilder(entities.ComponentID(opts.componentID), opts.leadTimeDays, procurement).
		WithSafetyStock(safetyStock).
		WithAllowNegativeInventory(allowNegative).
		Build()
}
