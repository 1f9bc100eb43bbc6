package compose

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/cmdutil"
	"github.com/IObundle/versat-ai/internal/output"
)

// NewVetCmd creates the vet command.
func NewVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var bf cmdutil.BuildFlags

	c := &cobra.Command{
		Use:   "vet [target...]",
		Short: "Validate every flag combination of targets",
		Long: `Validate targets without writing any IR.

Each target is assembled once per combination of its feature flags, so
every conditional branch is proven valid on its own. --flag values are
ignored; all other build parameters apply.

Arguments:
  target    Target names (default: every known target)

Examples:
  # Vet every target
  hwcompose vet

  # Vet one target with a parameter override
  hwcompose vet iob_zybo_z7 --set AXI_DATA_W=64`,
		RunE: func(c *cobra.Command, args []string) error {
			return runVet(args, cfg, &bf)
		},
	}

	bf.AddTo(c)
	return c
}

func runVet(args []string, cfg *cmdtypes.GlobalConfig, bf *cmdutil.BuildFlags) error {
	ws, err := cmdutil.LoadWorkspace(cfg.DescriptionFiles())
	if err != nil {
		return err
	}
	targets, err := ws.SelectTargets(args)
	if err != nil {
		return err
	}
	params, err := bf.Params(ws.Loader)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	if len(params.Flags) > 0 {
		output.Warn("vet enumerates every flag combination; --flag values are ignored")
	}

	total, failed := 0, 0
	for _, t := range targets {
		results, err := ws.Assembler.Vet(t, params)
		if len(results) == 0 && err != nil {
			output.ModuleLogger(t.Name).Error(err.Error())
			failed++
			total++
			continue
		}
		for _, r := range results {
			total++
			status := output.StatusValid
			if r.Err != nil {
				status = output.StatusFailed
				failed++
			}
			output.Info(output.FormatTargetLine(t.Name, r.Label(), status))
			if r.Err != nil {
				cmdutil.PrintBuildError(t.Name+" ("+r.Label()+")", r.Err)
			}
		}
	}

	if failed > 0 {
		output.Error(fmt.Sprintf("%d of %d builds failed", failed, total))
		return &cmdtypes.ExitError{
			Code:    cmdtypes.ExitValidationError,
			Err:     fmt.Errorf("vet failed: %d of %d builds failed", failed, total),
			Printed: true,
		}
	}
	output.Info(output.FormatCheckmark(fmt.Sprintf("%d builds valid", total)))
	return nil
}
