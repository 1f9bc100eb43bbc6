// Package catalog provides the catalog command group.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
)

// NewCatalogCmd creates the catalog command group.
func NewCatalogCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect interface types",
		Long:  `Commands for listing interface types and previewing their signal expansion.`,
	}

	c.AddCommand(
		NewListCmd(cfg),
		NewShowCmd(cfg),
	)

	return c
}
