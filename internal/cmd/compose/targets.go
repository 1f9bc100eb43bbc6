package compose

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/cmdutil"
	"github.com/IObundle/versat-ai/internal/output"
)

// NewTargetsCmd creates the targets command.
func NewTargetsCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List buildable targets",
		Long: `List the built-in targets and those loaded from description files,
with their feature flags and defaults.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ws, err := cmdutil.LoadWorkspace(cfg.DescriptionFiles())
			if err != nil {
				return err
			}

			tbl := output.NewTable("TARGET", "FLAGS", "DESCRIPTION")
			for _, name := range ws.Targets.Names() {
				t, _ := ws.Targets.Lookup(name)
				flags := make([]string, len(t.Flags))
				for i, f := range t.Flags {
					flags[i] = fmt.Sprintf("%s=%t", f.Name, f.Default)
				}
				tbl.Row(name, strings.Join(flags, ", "), t.Descr)
			}
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			return nil
		},
	}
}
