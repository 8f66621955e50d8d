package host

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/macrogen/pkg/model"
)

// Descriptor file shape, shared by the yaml, toml and json decoders.
//
//	root: Object
//	classes:
//	  - name: B
//	    superclass: A
//	    fields:
//	      - { name: _z, type: int }
//	      - { name: w, type: "String?" }
//	    constructors:
//	      - name: ""
//	        positional: [{ name: x, type: int, required: true }]
type fileDescriptor struct {
	Root    string            `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty"`
	Classes []classDescriptor `json:"classes" yaml:"classes" toml:"classes"`
}

type classDescriptor struct {
	Name         string                  `json:"name" yaml:"name" toml:"name"`
	Superclass   string                  `json:"superclass,omitempty" yaml:"superclass,omitempty" toml:"superclass,omitempty"`
	Fields       []fieldDescriptor       `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
	Constructors []constructorDescriptor `json:"constructors,omitempty" yaml:"constructors,omitempty" toml:"constructors,omitempty"`
	Getters      []string                `json:"getters,omitempty" yaml:"getters,omitempty" toml:"getters,omitempty"`
}

type fieldDescriptor struct {
	Name           string `json:"name" yaml:"name" toml:"name"`
	Type           string `json:"type" yaml:"type" toml:"type"`
	Nullable       bool   `json:"nullable,omitempty" yaml:"nullable,omitempty" toml:"nullable,omitempty"`
	Static         bool   `json:"static,omitempty" yaml:"static,omitempty" toml:"static,omitempty"`
	Final          bool   `json:"final,omitempty" yaml:"final,omitempty" toml:"final,omitempty"`
	HasInitializer bool   `json:"has_initializer,omitempty" yaml:"has_initializer,omitempty" toml:"has_initializer,omitempty"`
}

type paramDescriptor struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Type     string `json:"type" yaml:"type" toml:"type"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty" toml:"nullable,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
}

type constructorDescriptor struct {
	Name       string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Positional []paramDescriptor `json:"positional,omitempty" yaml:"positional,omitempty" toml:"positional,omitempty"`
	Named      []paramDescriptor `json:"named,omitempty" yaml:"named,omitempty" toml:"named,omitempty"`
}

// Load builds a Library from descriptor files. Directories are walked for
// .yaml, .yml, .toml and .json files.
func Load(paths ...string) (*Library, error) {
	lib, _ := NewLibrary()
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err = lib.LoadFile(f); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// LoadFile decodes one descriptor file into the library.
func (l *Library) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read descriptor %s", path)
	}
	var fd fileDescriptor
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fd)
	case ".toml":
		err = toml.Unmarshal(data, &fd)
	case ".json":
		err = json.Unmarshal(data, &fd)
	default:
		return errors.WithHint(
			errors.Newf("unsupported descriptor format %q for %s", ext, path),
			"use .yaml, .yml, .toml or .json",
		)
	}
	if err != nil {
		return errors.Wrapf(err, "decode descriptor %s", path)
	}
	if fd.Root != "" {
		l.mu.Lock()
		l.Root = fd.Root
		l.mu.Unlock()
	}
	for _, cd := range fd.Classes {
		if err = l.Add(cd.toClass()); err != nil {
			return errors.Wrapf(err, "load %s", path)
		}
	}
	slog.Debug("loaded descriptor", "file", path, "classes", len(fd.Classes))
	return nil
}

func (cd classDescriptor) toClass() model.Class {
	c := model.Class{
		Name:       cd.Name,
		Superclass: cd.Superclass,
		Getters:    cd.Getters,
	}
	for _, f := range cd.Fields {
		c.Fields = append(c.Fields, model.Field{
			Name:           f.Name,
			Type:           typeRef(f.Type, f.Nullable),
			IsStatic:       f.Static,
			IsFinal:        f.Final,
			HasInitializer: f.HasInitializer,
		})
	}
	for _, ctor := range cd.Constructors {
		c.Constructors = append(c.Constructors, model.Constructor{
			Name:       ctor.Name,
			Positional: params(ctor.Positional),
			Named:      params(ctor.Named),
		})
	}
	return c
}

func params(in []paramDescriptor) []model.Parameter {
	out := make([]model.Parameter, 0, len(in))
	for _, p := range in {
		out = append(out, model.Parameter{Name: p.Name, Type: typeRef(p.Type, p.Nullable), Required: p.Required})
	}
	return out
}

func typeRef(s string, nullable bool) model.TypeRef {
	t := model.ParseTypeRef(s)
	t.Nullable = t.Nullable || nullable
	return t
}

// IsDescriptor reports whether path has a descriptor extension.
func IsDescriptor(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".json":
		return true
	}
	return false
}

func expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "stat descriptor path %s", p)
		}
		if !fi.IsDir() {
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsDescriptor(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", p)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
