// Package compose provides the commands that assemble targets: build, vet,
// diff, tree and targets.
package compose

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/batch"
	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/cmdutil"
	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		bf   cmdutil.BuildFlags
		of   cmdutil.OutputFlags
		jobs int
	)

	c := &cobra.Command{
		Use:   "build [target...]",
		Short: "Assemble targets and write their IR",
		Long: `Assemble one or more targets and write the validated IR.

Each target is built with the same build parameters. Builds run
concurrently; a failing build does not stop the others, but no IR is
written for it.

Arguments:
  target    Target names (default: every known target)

Examples:
  # Build the Zybo Z7 wrapper
  hwcompose build iob_zybo_z7

  # Enable external memory and rename the wrapped SoC
  hwcompose build iob_zybo_z7 --flag use_extmem --instantiator my_soc

  # Override parameters from a file and the command line
  hwcompose build iob_zybo_z7 -f params.yaml --set AXI_DATA_W=64

  # Write JSON to a file
  hwcompose build iob_zybo_z7 -o json --out build/zybo.json`,
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c.Context(), args, cfg, &bf, &of, c.OutOrStdout())
		},
	}

	bf.AddTo(c)
	of.AddTo(c)
	c.Flags().IntVar(&jobs, "jobs", 0, "Maximum concurrent builds (default: from config)")

	return c
}

func runBuild(ctx context.Context, args []string, cfg *cmdtypes.GlobalConfig, bf *cmdutil.BuildFlags, of *cmdutil.OutputFlags, stdout io.Writer) error {
	format, err := output.ParseFormat(cfg.OutputFormat())
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

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

	jobs := make([]batch.Job, len(targets))
	for i, t := range targets {
		jobs[i] = batch.Job{Target: t, Params: params.Clone()}
	}

	var results []batch.Result
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		results = batch.Run(ctx, ws.Assembler, jobs, cfg.Jobs())
		return nil
	}, output.WithTitle(fmt.Sprintf("Building %d target(s)", len(jobs))))
	if err != nil {
		return err
	}

	failure := cmdutil.ReportResults(results)

	irs := make([]*core.IR, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			irs = append(irs, r.Build.IR)
		}
	}
	if len(irs) > 0 {
		if err := writeIRs(irs, format, of.Out, stdout); err != nil {
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
		}
		for _, r := range results {
			if r.Err == nil {
				if err := r.Build.MarkEmitted(); err != nil {
					return err
				}
			}
		}
	}

	return failure
}

// writeIRs writes irs to path, or to stdout when path is empty.
func writeIRs(irs []*core.IR, format output.Format, path string, stdout io.Writer) error {
	if path == "" {
		return output.WriteIRs(irs, output.IROptions{Format: format, Writer: stdout})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := output.WriteIRs(irs, output.IROptions{Format: format, Writer: f}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	output.Info(output.FormatCheckmark(fmt.Sprintf("wrote %d IR(s) to %s", len(irs), path)))
	return nil
}
