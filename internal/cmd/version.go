package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show hwcompose version information.

Displays:
  - hwcompose version, commit, and build date
  - CUE SDK version used to evaluate descriptions`,
		Annotations: map[string]string{cmdtypes.AnnotationSkipConfig: "true"},
		Args:        cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()
			w := c.OutOrStdout()
			fmt.Fprintf(w, "hwcompose version %s\n", info.Version)
			fmt.Fprintf(w, "  Commit:    %s\n", info.GitCommit)
			fmt.Fprintf(w, "  Built:     %s\n", info.BuildDate)
			fmt.Fprintf(w, "  Go:        %s\n", info.GoVersion)
			fmt.Fprintf(w, "  CUE SDK:   %s\n", info.CUESDKVersion)
			return nil
		},
	}
}
