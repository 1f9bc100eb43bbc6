package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/cmdutil"
	"github.com/IObundle/versat-ai/internal/output"
)

// NewListCmd creates the catalog list command.
func NewListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List interface types",
		Long: `List the built-in interface types and those loaded from description
files, with their template parameters and option letters.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ws, err := cmdutil.LoadWorkspace(cfg.DescriptionFiles())
			if err != nil {
				return err
			}

			tbl := output.NewTable("TYPE", "PARAMS", "SIGNALS", "OPTIONS", "DESCRIPTION").AlignRight(2)
			for _, name := range ws.Catalog.Names() {
				t, _ := ws.Catalog.Lookup(name)

				params := make([]string, len(t.Params))
				for i, p := range t.Params {
					params[i] = p.Name + "=" + strconv.FormatInt(p.Default, 10)
				}
				options := make([]string, len(t.Options))
				for i, o := range t.Options {
					options[i] = o.Letter
				}
				tbl.Row(name, strings.Join(params, ", "), strconv.Itoa(len(t.Members)), strings.Join(options, ""), t.Descr)
			}
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			return nil
		},
	}
}
