package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/tplmigrate/internal/cmdutil"
	"github.com/opmodel/tplmigrate/internal/config"
	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/migrate"
	"github.com/opmodel/tplmigrate/internal/references"
)

// resolveMigrateOptions resolves the run flags against env, config and
// defaults, and maps the result to migrator options.
func resolveMigrateOptions(c *cobra.Command, args []string, flags *cmdutil.MigrateFlags, cfg *GlobalConfig) (migrate.Options, error) {
	runFlags, err := flags.RunFlags(c, args)
	if err != nil {
		return migrate.Options{}, err
	}

	settings, err := config.ResolveRun(cfg.Config, runFlags)
	if err != nil {
		return migrate.Options{}, err
	}
	config.LogResolvedValues(settings.Values)

	scope, err := references.ParseScope(settings.References)
	if err != nil {
		return migrate.Options{}, oerrors.NewValidationError(err.Error(), "", "references", "")
	}

	return migrate.Options{
		Root:      settings.Root,
		Pattern:   settings.Pattern,
		MarkupExt: settings.MarkupExt,
		ModuleExt: settings.ModuleExt,
		Scope:     scope,
		Verify:    settings.Verify,
	}, nil
}
