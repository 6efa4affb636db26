package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/tplmigrate/internal/config"
	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/output"
)

const configHeader = `# tplmigrate configuration.
# Every key can be overridden by a TPLMIGRATE_* environment variable or a
# flag of the run command.
`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the tplmigrate configuration.

Writes the default configuration to ~/.tplmigrate/config.yaml, or to the
path given by --config or TPLMIGRATE_CONFIG.

Examples:
  # Initialize configuration
  tplmigrate config init

  # Overwrite existing configuration
  tplmigrate config init --force`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(c *cobra.Command, cfg *GlobalConfig, force bool) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return exitWith(err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return exitWith(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		})
	}

	data, err := renderDefaultConfig()
	if err != nil {
		return exitWith(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return exitWith(fmt.Errorf("creating config directory: %w", err))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return exitWith(fmt.Errorf("writing %s: %w", path, err))
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Configuration initialized at "+path))
	fmt.Fprintln(out, "Validate with: tplmigrate config vet")
	return nil
}

func renderDefaultConfig() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	return buf.Bytes(), nil
}
