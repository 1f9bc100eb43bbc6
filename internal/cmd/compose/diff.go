package compose

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/cmdutil"
	oerrors "github.com/IObundle/versat-ai/internal/errors"
	"github.com/IObundle/versat-ai/internal/irdiff"
	"github.com/IObundle/versat-ai/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var bf cmdutil.BuildFlags

	c := &cobra.Command{
		Use:   "diff <target> <ir-file>",
		Short: "Compare a fresh build with a previously written IR",
		Long: `Assemble a target and compare the result with an IR file written by an
earlier 'hwcompose build'.

Parameters, ports, wires, subblocks and snippets are compared by name and
reported as added, removed or modified.

Examples:
  # What changes when external memory is enabled?
  hwcompose build iob_zybo_z7 > before.yaml
  hwcompose diff iob_zybo_z7 before.yaml --flag use_extmem`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], cfg, &bf, c.OutOrStdout())
		},
	}

	bf.AddTo(c)
	return c
}

func runDiff(targetName, irFile string, cfg *cmdtypes.GlobalConfig, bf *cmdutil.BuildFlags, stdout io.Writer) error {
	data, err := os.ReadFile(irFile)
	if err != nil {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err:  oerrors.NewNotFoundError(err.Error(), irFile, "Write one with 'hwcompose build <target> --out <file>'."),
		}
	}
	before, err := irdiff.Load(data)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: fmt.Errorf("%s: %w", irFile, err)}
	}

	ws, err := cmdutil.LoadWorkspace(cfg.DescriptionFiles())
	if err != nil {
		return err
	}
	t, err := ws.Target(targetName)
	if err != nil {
		return err
	}
	params, err := bf.Params(ws.Loader)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	build, err := ws.Assembler.Assemble(t, params)
	if err != nil {
		return cmdutil.CompositionExitError(targetName, err)
	}

	styles := cmdutil.Styles()
	result, err := irdiff.Compare(before, build.IR, output.IsTTY())
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("comparing IR: %w", err)}
	}

	if !result.HasChanges {
		output.Info(output.FormatCheckmark("no differences"))
		return nil
	}

	entries := make([]output.DiffEntry, 0, len(result.Added)+len(result.Removed)+len(result.Modified))
	for _, key := range result.Added {
		entries = append(entries, output.DiffEntry{Key: key, Change: output.ChangeAdded})
	}
	for _, key := range result.Removed {
		entries = append(entries, output.DiffEntry{Key: key, Change: output.ChangeRemoved})
	}
	for _, m := range result.Modified {
		entries = append(entries, output.DiffEntry{Key: m.Name, Change: output.ChangeModified, Diff: m.Diff})
	}
	fmt.Fprint(stdout, output.RenderIRDiff(entries, styles))
	return nil
}
