package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/opmodel/tplmigrate/internal/discovery"
	oerrors "github.com/opmodel/tplmigrate/internal/errors"
	"github.com/opmodel/tplmigrate/internal/references"
)

//go:embed schema.cue
var schemaFS embed.FS

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for i := range e {
		sb.WriteString("  ")
		sb.WriteString(e[i].Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Unwrap lets callers match validation failures with errors.Is.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaData, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		return nil, fmt.Errorf("looking up #Config: %w", def.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	errs := v.unify(v.ctx.Encode(cfg))
	errs = append(errs, checkSemantics(cfg)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFile validates a YAML configuration file at the given path.
// Unknown keys are reported, which Validate cannot see once the file has
// been decoded into a Config.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return oerrors.NewNotFoundError("configuration file not found", expanded,
				"Run 'tplmigrate config init' to create default configuration")
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	file, err := cueyaml.Extract(expanded, data)
	if err != nil {
		return ValidationErrors{{Message: "invalid YAML: " + cueErrorMessage(err)}}
	}
	value := v.ctx.BuildFile(file)
	if errs := mergeFieldErrors(v.unknownFields(value), v.unify(value)); len(errs) > 0 {
		return errs
	}

	cfg, err := NewLoader().Load(expanded)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	if errs := checkSemantics(cfg); len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *Validator) unify(data cue.Value) ValidationErrors {
	if data.Err() != nil {
		return cueValidationErrors(data.Err())
	}
	unified := v.schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueValidationErrors(err)
	}
	return nil
}

// unknownFields reports top-level keys the schema does not allow. CUE
// reports closedness only when no other constraint fails, so the keys are
// checked on their own.
func (v *Validator) unknownFields(data cue.Value) ValidationErrors {
	iter, err := data.Fields()
	if err != nil {
		return nil
	}

	var errs ValidationErrors
	for iter.Next() {
		sel := iter.Selector()
		if !v.schema.Allows(sel) {
			errs = append(errs, ValidationError{Field: sel.String(), Message: "field not allowed"})
		}
	}
	return errs
}

// mergeFieldErrors appends the schema errors to the unknown-key errors,
// dropping schema errors for keys already reported as unknown.
func mergeFieldErrors(unknown, schema ValidationErrors) ValidationErrors {
	reported := make(map[string]bool, len(unknown))
	for _, e := range unknown {
		reported[e.Field] = true
	}

	merged := unknown
	for _, e := range schema {
		if e.Field != "" && reported[e.Field] {
			continue
		}
		merged = append(merged, e)
	}
	return merged
}

// checkSemantics covers what the schema cannot express.
func checkSemantics(cfg *Config) ValidationErrors {
	var errs ValidationErrors

	if cfg.Pattern != "" {
		if err := discovery.ValidatePattern(cfg.Pattern); err != nil {
			errs = append(errs, ValidationError{Field: "pattern", Message: firstLine(err)})
		}
	}
	if cfg.References != "" {
		if _, err := references.ParseScope(cfg.References); err != nil {
			errs = append(errs, ValidationError{Field: "references", Message: firstLine(err)})
		}
	}

	d := cfg.WithDefaults()
	if d.MarkupExt == d.ModuleExt {
		errs = append(errs, ValidationError{
			Field:   "moduleExt",
			Message: fmt.Sprintf("must differ from markupExt (both are %q)", d.MarkupExt),
		})
	}

	return errs
}

func cueValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{
			Field:   fieldPath(e.Path()),
			Message: cueErrorMessage(e),
		}
		key := ve.Field + "\x00" + ve.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		errs = append(errs, ve)
	}
	if len(errs) == 0 {
		errs = append(errs, ValidationError{Message: err.Error()})
	}
	return errs
}

// fieldPath joins a CUE error path, dropping the leading #Config
// definition so fields read as they appear in the config file.
func fieldPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return strings.Join(path, ".")
}

func cueErrorMessage(err error) string {
	var parts []string
	current := err

	for current != nil {
		cueErr, ok := current.(cueerrors.Error) //nolint:errorlint // walks the CUE chain by hand
		if !ok {
			parts = append(parts, current.Error())
			break
		}

		format, args := cueErr.Msg()
		if format != "" {
			parts = append(parts, fmt.Sprintf(format, args...))
		}

		current = cueerrors.Unwrap(current)
	}

	return strings.Join(parts, ": ")
}

// firstLine trims multi-line detail errors to their message line.
func firstLine(err error) string {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return detail.Message
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
