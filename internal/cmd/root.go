// Package cmd provides the hwcompose command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/cmd/catalog"
	"github.com/IObundle/versat-ai/internal/cmd/compose"
	configcmd "github.com/IObundle/versat-ai/internal/cmd/config"
	"github.com/IObundle/versat-ai/internal/cmdtypes"
	"github.com/IObundle/versat-ai/internal/config"
	"github.com/IObundle/versat-ai/internal/output"
)

// rootFlags holds the global flag values.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
	catalogs   []string
}

// NewRootCmd creates the root command for hwcompose.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "hwcompose",
		Short: "Declarative hardware module composer",
		Long: `hwcompose assembles hardware modules from declarative descriptions.

A target lists parameters, ports, internal wires and child instances, some of
them guarded by feature flags. hwcompose resolves the parameters, expands
interface types into signals, checks every connection and writes a validated
intermediate representation for a Verilog emitter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: HWCOMPOSE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	rootCmd.PersistentFlags().StringArrayVar(&flags.catalogs, "catalog", nil,
		"Extra description file with interfaces, modules or targets (can be repeated)")

	rootCmd.AddCommand(
		compose.NewBuildCmd(cfg),
		compose.NewVetCmd(cfg),
		compose.NewDiffCmd(cfg),
		compose.NewTreeCmd(cfg),
		compose.NewTargetsCmd(cfg),
		catalog.NewCatalogCmd(cfg),
		configcmd.NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals loads the config file, resolves every setting and
// sets up logging.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *rootFlags) error {
	var timestamps *bool
	if c.Flags().Changed("timestamps") {
		timestamps = output.BoolPtr(flags.timestamps)
	}
	output.SetupLogging(output.LogConfig{Verbose: flags.verbose, Timestamps: timestamps})

	pathResult, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	cfg.ConfigPath = pathResult.ConfigPath
	cfg.Catalogs = flags.catalogs
	cfg.Verbose = flags.verbose

	// The config commands inspect the file themselves and must work
	// when it is broken.
	if c.Annotations[cmdtypes.AnnotationSkipConfig] == "true" {
		cfg.Config = &config.Config{}
		return nil
	}

	loaded, err := config.NewLoader().Load(cfg.ConfigPath)
	if err != nil {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err:  fmt.Errorf("loading config %s: %w (run 'hwcompose config vet')", cfg.ConfigPath, err),
		}
	}
	cfg.Config = loaded

	opts := config.ResolveOptions{
		Config:           loaded,
		TimestampsFlag:   timestamps,
		DescriptionFlags: flags.catalogs,
	}
	if f := c.Flags().Lookup("output"); f != nil && f.Changed {
		opts.OutputFlag = f.Value.String()
	}
	if f := c.Flags().Lookup("jobs"); f != nil && f.Changed {
		if opts.JobsFlag, err = c.Flags().GetInt("jobs"); err != nil {
			return err
		}
		if opts.JobsFlag < 1 {
			return fmt.Errorf("--jobs must be at least 1, got %d", opts.JobsFlag)
		}
	}

	resolved, err := config.Resolve(opts)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err}
	}
	cfg.Resolved = resolved

	output.SetupLogging(output.LogConfig{
		Verbose:    flags.verbose,
		Timestamps: output.BoolPtr(resolved.TimestampsEnabled()),
	})

	output.Debug("initializing CLI",
		"config", cfg.ConfigPath,
		"config_source", pathResult.Source,
	)
	config.LogResolvedValues(resolved.Values())

	return nil
}
