// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/tplmigrate/internal/config"
	"github.com/opmodel/tplmigrate/internal/output"
	"github.com/opmodel/tplmigrate/internal/version"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded config file, or an empty Config when there is none.
	Config *config.Config

	// ConfigPath is the resolved config file path.
	ConfigPath string

	// ConfigSource is where ConfigPath came from.
	ConfigSource config.ConfigSource

	// LoadErr is set when the config file exists but could not be read.
	// Commands that depend on the config fail with it; the others ignore it.
	LoadErr error

	Verbose bool
}

type rootFlags struct {
	config     string
	envFile    string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for tplmigrate.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cfg := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "tplmigrate",
		Short: "Migrate HTML templates to JavaScript modules",
		Long: `tplmigrate converts *.template.html files into JavaScript modules that
export the template text as a default string, rewrites the imports that
reference them and removes the originals.

Run it once per project, commit the result and drop the bundler plugin that
used to load HTML templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, flags, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: TPLMIGRATE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Load TPLMIGRATE_* variables from a dotenv file")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewRunCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads the env file and config, then sets up logging.
func initializeGlobals(cmd *cobra.Command, flags *rootFlags, cfg *GlobalConfig) error {
	if flags.envFile != "" {
		if err := config.LoadEnvFile(flags.envFile); err != nil {
			return exitWith(err)
		}
	}

	pathResult, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return exitWith(err)
	}
	cfg.ConfigPath = pathResult.ConfigPath
	cfg.ConfigSource = pathResult.Source
	cfg.Verbose = flags.verbose

	loaded, err := config.NewLoader().Load(cfg.ConfigPath)
	if err != nil {
		// Don't fail here: config init and vet must work on a broken file.
		cfg.LoadErr = err
		loaded = &config.Config{}
	}
	cfg.Config = loaded

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("tplmigrate started",
		"version", info.Version,
		"config", cfg.ConfigPath,
		"config_source", cfg.ConfigSource,
	)
	if cfg.LoadErr != nil {
		output.Debug("config load error", "error", cfg.LoadErr)
	}

	return nil
}
