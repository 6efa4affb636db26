package cmd

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for tplmigrate.`,
	}

	cmd.AddCommand(NewConfigInitCmd(cfg))
	cmd.AddCommand(NewConfigVetCmd(cfg))

	return cmd
}
