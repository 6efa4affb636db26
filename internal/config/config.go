// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the tplmigrate configuration.
// Loaded from ~/.tplmigrate/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Root is the project root.
	// Env: TPLMIGRATE_ROOT, Default: "."
	Root string `json:"root,omitempty" yaml:"root,omitempty" mapstructure:"root"`

	// Pattern is the doublestar glob selecting templates below Root.
	// Env: TPLMIGRATE_PATTERN, Default: "src/**/*.template.html"
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" mapstructure:"pattern"`

	// MarkupExt is the template extension replaced on each path.
	// Env: TPLMIGRATE_MARKUP_EXT, Default: ".html"
	MarkupExt string `json:"markupExt,omitempty" yaml:"markupExt,omitempty" mapstructure:"markupExt"`

	// ModuleExt is the generated module extension.
	// Env: TPLMIGRATE_MODULE_EXT, Default: ".js"
	ModuleExt string `json:"moduleExt,omitempty" yaml:"moduleExt,omitempty" mapstructure:"moduleExt"`

	// References is the reference search scope: "recursive" or "flat".
	// Env: TPLMIGRATE_REFERENCES, Default: "recursive"
	References string `json:"references,omitempty" yaml:"references,omitempty" mapstructure:"references"`

	// Verify evaluates each generated module before writing it.
	// Env: TPLMIGRATE_VERIFY, Default: true
	Verify *bool `json:"verify,omitempty" yaml:"verify,omitempty" mapstructure:"verify"`

	// NextSteps is the operator checklist printed after a text report.
	NextSteps []string `json:"nextSteps,omitempty" yaml:"nextSteps,omitempty" mapstructure:"nextSteps"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// Built-in defaults.
const (
	DefaultRoot       = "."
	DefaultPattern    = "src/**/*.template.html"
	DefaultMarkupExt  = ".html"
	DefaultModuleExt  = ".js"
	DefaultReferences = "recursive"
)

// DefaultNextSteps is printed after a successful text report.
var DefaultNextSteps = []string{
	"Remove the HTML template plugin from your bundler config (e.g. vite.config.ts)",
	"Run: npm run build",
	"Test the application",
}

// DefaultConfig returns a Config with all default values populated.
// Used by `tplmigrate config init` to generate the initial config file.
func DefaultConfig() *Config {
	verify := true
	timestamps := true
	return &Config{
		Root:       DefaultRoot,
		Pattern:    DefaultPattern,
		MarkupExt:  DefaultMarkupExt,
		ModuleExt:  DefaultModuleExt,
		References: DefaultReferences,
		Verify:     &verify,
		NextSteps:  append([]string(nil), DefaultNextSteps...),
		Log:        LogConfig{Timestamps: &timestamps},
	}
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
// Log.Timestamps is left nil so logging keeps its own default.
func (c *Config) WithDefaults() *Config {
	out := &Config{}
	if c != nil {
		*out = *c
	}
	d := DefaultConfig()

	if out.Root == "" {
		out.Root = d.Root
	}
	if out.Pattern == "" {
		out.Pattern = d.Pattern
	}
	if out.MarkupExt == "" {
		out.MarkupExt = d.MarkupExt
	}
	if out.ModuleExt == "" {
		out.ModuleExt = d.ModuleExt
	}
	if out.References == "" {
		out.References = d.References
	}
	if out.Verify == nil {
		out.Verify = d.Verify
	}
	if out.NextSteps == nil {
		out.NextSteps = d.NextSteps
	}
	return out
}
