// Package config provides configuration loading and management.
package config

// DefaultJobs is the default number of concurrent builds.
const DefaultJobs = 4

// Configuration keys, as written in the config file.
const (
	KeyCatalogs   = "catalogs"
	KeyModules    = "modules"
	KeyTargets    = "targets"
	KeyOutput     = "output"
	KeyJobs       = "jobs"
	KeyTimestamps = "log.timestamps"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config is the hwcompose CLI configuration, read from
// ~/.hwcompose/config.yaml and HWCOMPOSE_* environment variables.
type Config struct {
	// Catalogs lists description files holding interface types.
	// Env: HWCOMPOSE_CATALOGS (comma separated)
	Catalogs []string `json:"catalogs,omitempty" yaml:"catalogs,omitempty" mapstructure:"catalogs"`

	// Modules lists description files holding child modules.
	// Env: HWCOMPOSE_MODULES
	Modules []string `json:"modules,omitempty" yaml:"modules,omitempty" mapstructure:"modules"`

	// Targets lists description files holding build targets.
	// Env: HWCOMPOSE_TARGETS
	Targets []string `json:"targets,omitempty" yaml:"targets,omitempty" mapstructure:"targets"`

	// Output is the default IR format: yaml or json.
	// Env: HWCOMPOSE_OUTPUT, Default: yaml
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`

	// Jobs bounds concurrent builds.
	// Env: HWCOMPOSE_JOBS, Default: 4
	Jobs int `json:"jobs,omitempty" yaml:"jobs,omitempty" mapstructure:"jobs"`

	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`

	// sources records where each key was set. Filled by Loader.
	sources map[string]ConfigSource
}

// DefaultConfig returns a Config with all default values populated.
// Used by `hwcompose config init`.
func DefaultConfig() *Config {
	return &Config{
		Output: "yaml",
		Jobs:   DefaultJobs,
	}
}

// WithDefaults returns a copy of c with unset fields defaulted.
func (c *Config) WithDefaults() *Config {
	out := *c
	d := DefaultConfig()
	if out.Output == "" {
		out.Output = d.Output
	}
	if out.Jobs == 0 {
		out.Jobs = d.Jobs
	}
	return &out
}

// DescriptionFiles returns every configured description file: catalogs,
// then modules, then targets.
func (c *Config) DescriptionFiles() []string {
	files := make([]string, 0, len(c.Catalogs)+len(c.Modules)+len(c.Targets))
	files = append(files, c.Catalogs...)
	files = append(files, c.Modules...)
	return append(files, c.Targets...)
}

// Source reports where key was set, or SourceDefault.
func (c *Config) Source(key string) ConfigSource {
	if s, ok := c.sources[key]; ok {
		return s
	}
	return SourceDefault
}
