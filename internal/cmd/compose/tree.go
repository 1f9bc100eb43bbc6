package compose

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/cmdutil"
	"github.com/IObundle/versat-ai/internal/output"
)

// NewTreeCmd creates the tree command.
func NewTreeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		bf     cmdutil.BuildFlags
		tables bool
	)

	c := &cobra.Command{
		Use:   "tree <target>",
		Short: "Show the module hierarchy of a target",
		Long: `Assemble a target and print its hierarchy: parameters, ports, wires and
subblocks with the bundle each child port is connected to.

Examples:
  hwcompose tree iob_zybo_z7 --flag use_extmem

  # Also print parameter and binding tables
  hwcompose tree iob_zybo_z7 --tables`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runTree(args[0], cfg, &bf, tables, c.OutOrStdout())
		},
	}

	bf.AddTo(c)
	c.Flags().BoolVar(&tables, "tables", false, "Also print parameter and binding tables")
	return c
}

func runTree(targetName string, cfg *cmdtypes.GlobalConfig, bf *cmdutil.BuildFlags, tables bool, stdout io.Writer) error {
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

	fmt.Fprintln(stdout, output.RenderModuleTree(build.IR, cmdutil.Styles()))
	if tables {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, output.RenderParameterTable(build.IR.Parameters))
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, output.RenderBindingTable(build.IR.Subblocks))
	}
	return nil
}
