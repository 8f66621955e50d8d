package macro

import "strings"

const (
	DefaultPrivacyMarker = "_"
	DefaultIndent        = "  "
)

// Options configure a single macro application.
//
// Name                 – constructor name, "" for the unnamed constructor.
// SkipInitialized      – leave out every field that has an initializer.
// Const                – emit a const constructor.
// ExtraNamedParameters – raw parameters appended to the named block verbatim,
// for fields produced by other macros in the same phase.
// PrivacyMarker        – identifier prefix selecting positional treatment.
// Indent               – indentation of emitted parameter lines.
type Options struct {
	Name                 string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name,omitempty"`
	SkipInitialized      bool     `json:"skip_initialized,omitempty" yaml:"skip_initialized,omitempty" toml:"skip_initialized,omitempty" mapstructure:"skip_initialized,omitempty"`
	Const                bool     `json:"const,omitempty" yaml:"const,omitempty" toml:"const,omitempty" mapstructure:"const,omitempty"`
	ExtraNamedParameters []string `json:"extra_named_parameters,omitempty" yaml:"extra_named_parameters,omitempty" toml:"extra_named_parameters,omitempty" mapstructure:"extra_named_parameters,omitempty"`
	PrivacyMarker        string   `json:"privacy_marker,omitempty" yaml:"privacy_marker,omitempty" toml:"privacy_marker,omitempty" mapstructure:"privacy_marker,omitempty"`
	Indent               string   `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty" mapstructure:"indent,omitempty"`
}

func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, fn := range opts {
		fn(o)
	}
	o.Normalize()
	return o
}

// Normalize fills defaults and trims user input.
func (o *Options) Normalize() {
	o.Name = strings.TrimSpace(o.Name)
	if o.PrivacyMarker == "" {
		o.PrivacyMarker = DefaultPrivacyMarker
	}
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	var extras []string
	for _, p := range o.ExtraNamedParameters {
		p = strings.TrimSuffix(strings.TrimSpace(p), ",")
		if p != "" {
			extras = append(extras, p)
		}
	}
	o.ExtraNamedParameters = extras
}

// IsPrivate reports whether name carries the privacy marker.
func (o *Options) IsPrivate(name string) bool {
	marker := o.PrivacyMarker
	if marker == "" {
		marker = DefaultPrivacyMarker
	}
	return strings.HasPrefix(name, marker)
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithName(n string) Option          { return func(o *Options) { o.Name = n } }
func WithSkipInitialized() Option       { return func(o *Options) { o.SkipInitialized = true } }
func WithConst() Option                 { return func(o *Options) { o.Const = true } }
func WithPrivacyMarker(m string) Option { return func(o *Options) { o.PrivacyMarker = m } }
func WithIndent(s string) Option        { return func(o *Options) { o.Indent = s } }
func WithExtraNamedParameters(params ...string) Option {
	return func(o *Options) { o.ExtraNamedParameters = append(o.ExtraNamedParameters, params...) }
}
