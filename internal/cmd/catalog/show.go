package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/cmdutil"
	oerrors "github.com/IObundle/versat-ai/internal/errors"
	"github.com/IObundle/versat-ai/internal/output"
)

// showFlags holds the expansion arguments of catalog show.
type showFlags struct {
	prefix  string
	set     []string
	options string
}

// NewShowCmd creates the catalog show command.
func NewShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var sf showFlags

	c := &cobra.Command{
		Use:   "show <type>",
		Short: "Show the signals an interface type expands to",
		Long: `Expand an interface type and print its signals with widths and
directions, as seen by the manager side.

Examples:
  hwcompose catalog show iob_clk --options c_a
  hwcompose catalog show axi --prefix axi_ --set ADDR_W=30 --set DATA_W=32`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runShow(args[0], cfg, &sf, c.OutOrStdout())
		},
	}

	c.Flags().StringVar(&sf.prefix, "prefix", "", "Signal name prefix")
	c.Flags().StringArrayVar(&sf.set, "set", nil, "Template parameter NAME=N (can be repeated)")
	c.Flags().StringVar(&sf.options, "options", "", "Option letters, e.g. c_a (default: the type's defaults)")
	return c
}

func runShow(typeName string, cfg *cmdtypes.GlobalConfig, sf *showFlags, w io.Writer) error {
	ws, err := cmdutil.LoadWorkspace(cfg.DescriptionFiles())
	if err != nil {
		return err
	}

	t, ok := ws.Catalog.Lookup(typeName)
	if !ok {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err: oerrors.NewNotFoundError(
				fmt.Sprintf("interface type %q not found", typeName),
				"",
				"Run 'hwcompose catalog list' to see the available interface types.",
			),
		}
	}

	raw, err := cmdutil.ParseSet(sf.set)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	args := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("--set %s: %q is not an integer", k, v)}
		}
		args[k] = n
	}

	signals, err := ws.Catalog.Expand(typeName, sf.prefix, args, sf.options)
	if err != nil {
		return cmdutil.CompositionExitError(typeName, err)
	}

	if t.Descr != "" {
		fmt.Fprintln(w, output.StyleNoun.Render(t.Name)+": "+t.Descr)
	}
	tbl := output.NewTable("SIGNAL", "WIDTH", "DIRECTION").AlignRight(1)
	total := 0
	for _, s := range signals {
		tbl.Row(s.Name, strconv.Itoa(s.Width), string(s.Direction))
		total += s.Width
	}
	fmt.Fprintln(w, tbl.String())
	fmt.Fprintln(w, output.StyleSummary.Render(fmt.Sprintf("%d signals, %d bits", len(signals), total)))

	if len(t.Options) > 0 {
		letters := make([]string, len(t.Options))
		for i, o := range t.Options {
			letters[i] = o.Letter + ": " + o.Descr
		}
		fmt.Fprintln(w, output.StyleDim.Render("options: "+strings.Join(letters, "; ")))
	}
	return nil
}
