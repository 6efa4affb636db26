// Package cmdutil provides shared command utilities for the run and config
// commands. It centralizes flag groups, flag-to-config mapping and report
// printing.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/tplmigrate/internal/config"
	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/output"
	"github.com/opmodel/tplmigrate/internal/references"
)

// MigrateFlags holds the flags that shape a migration run.
type MigrateFlags struct {
	Root       string
	Pattern    string
	MarkupExt  string
	ModuleExt  string
	References string
	NoVerify   bool
}

// AddTo registers the migration flags on the given cobra command.
func (f *MigrateFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Root, "root", "",
		"Project root (env: TPLMIGRATE_ROOT, default: current directory)")
	cmd.Flags().StringVarP(&f.Pattern, "pattern", "p", "",
		"Glob selecting templates below the root (env: TPLMIGRATE_PATTERN, default: "+config.DefaultPattern+")")
	cmd.Flags().StringVar(&f.MarkupExt, "markup-ext", "",
		"Template extension to replace (env: TPLMIGRATE_MARKUP_EXT, default: "+config.DefaultMarkupExt+")")
	cmd.Flags().StringVar(&f.ModuleExt, "module-ext", "",
		"Generated module extension (env: TPLMIGRATE_MODULE_EXT, default: "+config.DefaultModuleExt+")")
	cmd.Flags().StringVar(&f.References, "references", "",
		"Reference search scope: "+strings.Join(references.ValidScopes(), ", ")+" (env: TPLMIGRATE_REFERENCES)")
	cmd.Flags().BoolVar(&f.NoVerify, "no-verify", false,
		"Skip evaluating generated modules before writing them")
}

// RunFlags maps the flags to resolver input. A positional root argument
// counts as a set --root flag and must not conflict with it.
func (f *MigrateFlags) RunFlags(cmd *cobra.Command, args []string) (config.RunFlags, error) {
	root := config.FlagValue{Value: f.Root, Set: cmd.Flags().Changed("root")}
	if len(args) > 0 {
		if root.Set && root.Value != args[0] {
			return config.RunFlags{}, oerrors.NewValidationError(
				fmt.Sprintf("root given twice: %q and --root %q", args[0], f.Root),
				"", "root", "Pass the project root either as an argument or with --root.")
		}
		root = config.FlagValue{Value: args[0], Set: true}
	}

	return config.RunFlags{
		Root:       root,
		Pattern:    changed(cmd, "pattern", f.Pattern),
		MarkupExt:  changed(cmd, "markup-ext", f.MarkupExt),
		ModuleExt:  changed(cmd, "module-ext", f.ModuleExt),
		References: changed(cmd, "references", f.References),
		NoVerify:   f.NoVerify,
	}, nil
}

func changed(cmd *cobra.Command, name, value string) config.FlagValue {
	return config.FlagValue{Value: value, Set: cmd.Flags().Changed(name)}
}

// OutputFlags holds the report format flags.
type OutputFlags struct {
	Format      string
	FailOnError bool
}

// AddTo registers the output flags on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", "text",
		"Report format: "+strings.Join(output.ValidFormats(), ", "))
	cmd.Flags().BoolVar(&f.FailOnError, "fail-on-error", false,
		"Exit with code 6 when any template failed")
}

// ParseFormat validates the --output value.
func (f *OutputFlags) ParseFormat() (output.OutputFormat, error) {
	format := output.ParseOutputFormat(f.Format)
	if !format.IsValid() {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("unknown output format %q", f.Format),
			"", "output", "Use one of: "+strings.Join(output.ValidFormats(), ", "))
	}
	return format, nil
}
