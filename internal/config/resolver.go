package config

import (
	"fmt"
	"os"

	"github.com/IObundle/versat-ai/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value with its provenance.
type ResolvedValue struct {
	Key    string
	Value  interface{}
	Source ConfigSource

	// Shadowed holds values overridden by a higher precedence source.
	Shadowed map[ConfigSource]interface{}
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	ConfigPath string
	Source     ConfigSource
	Shadowed   map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) HWCOMPOSE_CONFIG env, (3) ~/.hwcompose/config.yaml.
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{Shadowed: make(map[ConfigSource]string)}

	envValue := os.Getenv(EnvConfig)
	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case flagValue != "":
		result.ConfigPath = flagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}
	return result, nil
}

// ResolveOptions carries the flag values that may override the config.
// Zero values mean the flag was not given.
type ResolveOptions struct {
	Config *Config

	OutputFlag     string
	JobsFlag       int
	TimestampsFlag *bool

	// DescriptionFlags are extra description files; they add to the
	// configured ones rather than replace them.
	DescriptionFlags []string
}

// Resolved is the effective CLI configuration.
type Resolved struct {
	Output       ResolvedValue
	Jobs         ResolvedValue
	Timestamps   ResolvedValue
	Descriptions ResolvedValue
}

// Resolve applies flag > env > config > default precedence.
func Resolve(opts ResolveOptions) (*Resolved, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	defaults := DefaultConfig()

	r := &Resolved{}

	r.Output = pick(KeyOutput, opts.OutputFlag != "", opts.OutputFlag, cfg.Source(KeyOutput), cfg.Output, defaults.Output)
	switch r.Output.Value {
	case "yaml", "json":
	default:
		return nil, fmt.Errorf("%s (from %s): unknown output format %q", KeyOutput, r.Output.Source, r.Output.Value)
	}

	r.Jobs = pick(KeyJobs, opts.JobsFlag != 0, opts.JobsFlag, cfg.Source(KeyJobs), cfg.Jobs, defaults.Jobs)
	if jobs := r.Jobs.Value.(int); jobs < 1 {
		return nil, fmt.Errorf("%s (from %s): must be at least 1, got %d", KeyJobs, r.Jobs.Source, jobs)
	}

	var cfgTimestamps interface{} = true
	if cfg.Log.Timestamps != nil {
		cfgTimestamps = *cfg.Log.Timestamps
	}
	var flagTimestamps interface{}
	if opts.TimestampsFlag != nil {
		flagTimestamps = *opts.TimestampsFlag
	}
	r.Timestamps = pick(KeyTimestamps, opts.TimestampsFlag != nil, flagTimestamps, cfg.Source(KeyTimestamps), cfgTimestamps, true)

	files := append(cfg.DescriptionFiles(), opts.DescriptionFlags...)
	r.Descriptions = ResolvedValue{Key: "descriptions", Value: files, Source: SourceDefault}
	if len(opts.DescriptionFlags) > 0 {
		r.Descriptions.Source = SourceFlag
	} else if len(files) > 0 {
		r.Descriptions.Source = SourceConfig
	}

	return r, nil
}

// pick chooses the flag value when set, else the loaded value when its
// source is env or config, else the default.
func pick(key string, flagSet bool, flagValue interface{}, loadedSource ConfigSource, loaded, def interface{}) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]interface{})}
	switch {
	case flagSet:
		rv.Value, rv.Source = flagValue, SourceFlag
		if loadedSource != SourceDefault {
			rv.Shadowed[loadedSource] = loaded
		}
	case loadedSource != SourceDefault:
		rv.Value, rv.Source = loaded, loadedSource
	default:
		rv.Value, rv.Source = def, SourceDefault
	}
	return rv
}

// Values lists every resolved value.
func (r *Resolved) Values() []ResolvedValue {
	return []ResolvedValue{r.Output, r.Jobs, r.Timestamps, r.Descriptions}
}

// OutputFormat returns the resolved output format.
func (r *Resolved) OutputFormat() string { return r.Output.Value.(string) }

// JobCount returns the resolved concurrency bound.
func (r *Resolved) JobCount() int { return r.Jobs.Value.(int) }

// TimestampsEnabled returns the resolved timestamp setting.
func (r *Resolved) TimestampsEnabled() bool { return r.Timestamps.Value.(bool) }

// DescriptionFiles returns the resolved description files.
func (r *Resolved) DescriptionFiles() []string { return r.Descriptions.Value.([]string) }

// LogResolvedValues logs configuration resolution at debug level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
