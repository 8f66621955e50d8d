package generate

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/macrogen/pkg/macro"
)

type MacroKind string

const (
	MacroConstructor MacroKind = "constructor"
	MacroGetter      MacroKind = "getter"
)

// Target is one macro application.
type Target struct {
	Class string    `json:"class" yaml:"class" toml:"class" mapstructure:"class"`
	Macro MacroKind `json:"macro,omitempty" yaml:"macro,omitempty" toml:"macro,omitempty" mapstructure:"macro,omitempty"`
	// Field is the getter source field; unused by the constructor macro.
	Field string `json:"field,omitempty" yaml:"field,omitempty" toml:"field,omitempty" mapstructure:"field,omitempty"`

	macro.Options `json:",inline" yaml:",inline" toml:",inline" mapstructure:",squash"`
}

func (t Target) String() string {
	if t.Macro == MacroGetter {
		return string(t.Macro) + " " + t.Class + "." + t.Field
	}
	if t.Name != "" {
		return string(t.Macro) + " " + t.Class + "." + t.Name
	}
	return string(t.Macro) + " " + t.Class
}

// Config drives a generate run.
//
// Descriptors – descriptor files or directories to load classes from.
// OutDir      – output directory.
// OutFile     – output filename.
// Header      – comment written at the top of the output file.
// Targets     – macro applications, run in order.
type Config struct {
	Descriptors []string `json:"descriptors,omitempty" yaml:"descriptors,omitempty" toml:"descriptors,omitempty" mapstructure:"descriptors,omitempty"`
	OutDir      string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile     string   `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Header      string   `json:"header,omitempty" yaml:"header,omitempty" toml:"header,omitempty" mapstructure:"header,omitempty"`
	Targets     []Target `json:"targets,omitempty" yaml:"targets,omitempty" toml:"targets,omitempty" mapstructure:"targets,omitempty"`
}

const DefaultHeader = "Code generated by macrogen. DO NOT EDIT."

func NewConfig() *Config {
	return &Config{
		OutDir:  "gen",
		OutFile: "macros.g.dart",
		Header:  DefaultHeader,
	}
}

// Normalize fills defaults and validates targets.
func (c *Config) Normalize() error {
	if len(c.OutDir) == 0 {
		c.OutDir = "gen"
	}
	if len(c.OutFile) == 0 {
		c.OutFile = "macros.g.dart"
	}
	if len(c.Descriptors) == 0 {
		return errors.WithHint(errors.New("no descriptors configured"), "set descriptors in the config file or pass --descriptor")
	}
	for i := range c.Targets {
		t := &c.Targets[i]
		t.Class = strings.TrimSpace(t.Class)
		if t.Macro == "" {
			t.Macro = MacroConstructor
		}
		if t.Class == "" {
			return errors.Newf("target %d has no class", i)
		}
		switch t.Macro {
		case MacroConstructor:
		case MacroGetter:
			if t.Field == "" {
				return errors.Newf("getter target %d for %s has no field", i, t.Class)
			}
		default:
			return errors.Newf("target %d for %s: unknown macro %q", i, t.Class, t.Macro)
		}
		t.Options.Normalize()
	}
	return nil
}

// OutPath is the generated file location.
func (c *Config) OutPath() string {
	return filepath.Clean(filepath.Join(c.OutDir, c.OutFile))
}
