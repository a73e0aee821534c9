package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	hclrepo "github.com/vsinha/mrp-policy/pkg/infrastructure/repositories/hcl"
	"go.uber.org/zap"
)

type importOptions struct {
	items      string
	out        string
	defaultMRP string
	strict     bool
}

func newImportCommand(a *app) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert an item master CSV into an HCL components file",
		Long: `Map item master rows onto component planning configs and write them as
HCL component blocks. The MRP type column decides allow_negative_inventory:
MTS and PD are stock-driven, MTO, PTO and ND are demand-driven. Rows with any
other code are rejected unless --default-mrp-type names a fallback.

Examples:
  mrp-policy import --items items.csv --out components.hcl
  mrp-policy import --items legacy.csv --default-mrp-type MTS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.items, "items", "", "item master CSV file (required)")
	cmd.Flags().StringVar(&opts.out, "out", "components.hcl", "HCL file to write")
	cmd.Flags().StringVar(&opts.defaultMRP, "default-mrp-type", "", "MRP type used for unrecognized codes (default: inputs.default_mrp_type)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any row is rejected")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

func (a *app) runImport(cmd *cobra.Command, opts *importOptions) error {
	defaultMRP := a.conf.Inputs.DefaultMRPType
	overrideString(&defaultMRP, opts.defaultMRP)

	configs, rejected, err := a.loadConfigs(opts.items, "", defaultMRP, opts.strict, nil)
	if err != nil {
		return err
	}

	if err := hclrepo.WriteFile(opts.out, configs); err != nil {
		return err
	}

	a.logger.Info("item master imported",
		zap.String("op", "cli.import"),
		zap.String("items", opts.items),
		zap.String("out", opts.out),
		zap.Int("components", len(configs)),
		zap.Int("rejected", len(rejected)))

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d components to %s", len(configs), opts.out)
	if len(rejected) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d rows rejected)", len(rejected))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	for _, rowErr := range rejected {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", rowErr)
	}
	return nil
}
