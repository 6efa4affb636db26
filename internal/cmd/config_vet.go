package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/tplmigrate/internal/cmdutil"
	"github.com/opmodel/tplmigrate/internal/config"
	"github.com/opmodel/tplmigrate/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the tplmigrate configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Every key is known and has the right type (embedded CUE schema)
  4. The pattern is a valid glob and the extensions differ

The config path is resolved using precedence:
  --config flag > TPLMIGRATE_CONFIG env > ~/.tplmigrate/config.yaml

Examples:
  # Validate default configuration
  tplmigrate config vet

  # Validate custom config path
  tplmigrate config vet --config ./tplmigrate.yaml`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *GlobalConfig) error {
	output.Debug("validating config",
		"path", cfg.ConfigPath,
		"source", cfg.ConfigSource,
	)

	validator, err := config.NewValidator()
	if err != nil {
		return exitWith(err)
	}

	if err := validator.ValidateFile(cfg.ConfigPath); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			cmdutil.PrintValidationError("config is invalid", err)
			return reported(err)
		}
		return exitWith(err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+cfg.ConfigPath))
	return nil
}
