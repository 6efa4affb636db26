package config

import (
	"fmt"
	"os"
	"strconv"

	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/output"
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

// Environment variables read by the resolver.
const (
	EnvRoot       = "TPLMIGRATE_ROOT"
	EnvPattern    = "TPLMIGRATE_PATTERN"
	EnvMarkupExt  = "TPLMIGRATE_MARKUP_EXT"
	EnvModuleExt  = "TPLMIGRATE_MODULE_EXT"
	EnvReferences = "TPLMIGRATE_REFERENCES"
	EnvVerify     = "TPLMIGRATE_VERIFY"
)

// ResolvedValue is one configuration value with its source.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// FlagValue is a command-line flag value and whether the user set it.
type FlagValue struct {
	Value string
	Set   bool
}

// RunFlags carries the `run` command flags into resolution.
type RunFlags struct {
	Root       FlagValue
	Pattern    FlagValue
	MarkupExt  FlagValue
	ModuleExt  FlagValue
	References FlagValue
	// NoVerify is set when --no-verify was passed.
	NoVerify bool
}

// RunSettings is the fully resolved configuration of a run.
type RunSettings struct {
	Root       string
	Pattern    string
	MarkupExt  string
	ModuleExt  string
	References string
	Verify     bool

	// Values lists each setting with its source, in a stable order.
	Values []ResolvedValue
}

// ResolveRun resolves every run setting using precedence:
// (1) flag, (2) TPLMIGRATE_* env, (3) config file, (4) built-in default.
func ResolveRun(cfg *Config, flags RunFlags) (*RunSettings, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	values := []ResolvedValue{
		resolveString("root", flags.Root, EnvRoot, cfg.Root, DefaultRoot),
		resolveString("pattern", flags.Pattern, EnvPattern, cfg.Pattern, DefaultPattern),
		resolveString("markupExt", flags.MarkupExt, EnvMarkupExt, cfg.MarkupExt, DefaultMarkupExt),
		resolveString("moduleExt", flags.ModuleExt, EnvModuleExt, cfg.ModuleExt, DefaultModuleExt),
		resolveString("references", flags.References, EnvReferences, cfg.References, DefaultReferences),
	}

	var verifyFlag FlagValue
	if flags.NoVerify {
		verifyFlag = FlagValue{Value: "false", Set: true}
	}
	var verifyConfig string
	if cfg.Verify != nil {
		verifyConfig = strconv.FormatBool(*cfg.Verify)
	}
	verifyValue := resolveString("verify", verifyFlag, EnvVerify, verifyConfig, "true")
	verify, err := strconv.ParseBool(verifyValue.Value)
	if err != nil {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("invalid boolean %q", verifyValue.Value),
			string(verifyValue.Source), "verify", "Use true or false.")
	}
	values = append(values, verifyValue)

	return &RunSettings{
		Root:       values[0].Value,
		Pattern:    values[1].Value,
		MarkupExt:  values[2].Value,
		ModuleExt:  values[3].Value,
		References: values[4].Value,
		Verify:     verify,
		Values:     values,
	}, nil
}

func resolveString(key string, flag FlagValue, envVar, configValue, defaultValue string) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}
	envValue := os.Getenv(envVar)

	switch {
	case flag.Set:
		result.Value = flag.Value
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		if configValue != "" {
			result.Shadowed[SourceConfig] = configValue
		}
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
		if configValue != "" {
			result.Shadowed[SourceConfig] = configValue
		}
	case configValue != "":
		result.Value = configValue
		result.Source = SourceConfig
	default:
		result.Value = defaultValue
		result.Source = SourceDefault
	}

	return result
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) TPLMIGRATE_CONFIG env, (3) ~/.tplmigrate/config.yaml
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

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

// LogResolvedValues logs configuration resolution at DEBUG level.
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
