package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/tplmigrate/internal/cmdutil"
	"github.com/opmodel/tplmigrate/internal/config"
	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/migrate"
	"github.com/opmodel/tplmigrate/internal/output"
)

// runOptions holds the flags for the run command.
type runOptions struct {
	migrate cmdutil.MigrateFlags
	output  cmdutil.OutputFlags
}

// NewRunCmd creates the run command.
func NewRunCmd(cfg *GlobalConfig) *cobra.Command {
	opts := &runOptions{}

	c := &cobra.Command{
		Use:   "run [root]",
		Short: "Convert templates into JavaScript modules",
		Long: `Convert every template matching the pattern below the project root.

For each template the command:
  1. Writes <name>.template.js exporting the escaped template text
  2. Rewrites imports of <name>.template.html in the module files around it
  3. Deletes the original template

A template that fails at any step is left in place and reported; the run
continues with the next one. Reference rewrite failures are warnings.

Examples:
  # Convert src/**/*.template.html in the current directory
  tplmigrate run

  # Convert another project and print a JSON report
  tplmigrate run ../web -o json

  # Only rewrite imports in the template's own directory
  tplmigrate run --references flat`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runMigrate(c, args, cfg, opts)
		},
	}

	opts.migrate.AddTo(c)
	opts.output.AddTo(c)

	return c
}

func runMigrate(c *cobra.Command, args []string, cfg *GlobalConfig, opts *runOptions) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := opts.output.ParseFormat()
	if err != nil {
		return exitWith(err)
	}

	if cfg.Config == nil {
		cfg.Config = &config.Config{}
	}
	if cfg.LoadErr != nil {
		return exitWith(oerrors.NewValidationError(cfg.LoadErr.Error(), cfg.ConfigPath, "",
			"Fix the file or check it with 'tplmigrate config vet'."))
	}
	validator, err := config.NewValidator()
	if err != nil {
		return exitWith(err)
	}
	if err := validator.Validate(cfg.Config); err != nil {
		cmdutil.PrintValidationError("config is invalid", err)
		return reported(err)
	}

	migrateOpts, err := resolveMigrateOptions(c, args, &opts.migrate, cfg)
	if err != nil {
		return exitWith(err)
	}

	m, err := migrate.New(migrateOpts)
	if err != nil {
		return exitWith(err)
	}

	var paths []string
	err = output.RunWithSpinner(ctx, func() error {
		var discoverErr error
		paths, discoverErr = m.Discover()
		return discoverErr
	}, output.WithTitle("Discovering templates"))
	if err != nil {
		return exitWith(err)
	}

	report := m.Migrate(ctx, paths)

	nextSteps := cfg.Config.WithDefaults().NextSteps
	if err := cmdutil.PrintReport(c.OutOrStdout(), report, format, nextSteps); err != nil {
		return exitWith(fmt.Errorf("printing report: %w", err))
	}

	if report.Interrupted {
		output.Warn("run interrupted; remaining templates were not processed")
		return reported(fmt.Errorf("run interrupted: %w", ctx.Err()))
	}
	if report.HasFailures() && opts.output.FailOnError {
		err := oerrors.Wrap(oerrors.ErrPartial,
			fmt.Sprintf("%d of %d templates failed", report.Discovered-report.ConvertedCount(), report.Discovered))
		output.Error(err.Error())
		return reported(err)
	}

	return nil
}
