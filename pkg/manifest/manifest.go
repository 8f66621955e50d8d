// Package manifest records versioned snapshots of the generated macro output.
package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Snapshot is one recorded generation of the macro output file.
type Snapshot struct {
	Name         string `yaml:"name" json:"name"`
	Version      string `yaml:"version" json:"version"`
	File         string `yaml:"file" json:"file"`
	Declarations int    `yaml:"declarations" json:"declarations"`
}

// Manifest tracks the lifecycle of generated snapshots.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads the manifest at path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}

	var m Manifest
	if err = yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "decode manifest %s", path)
	}
	return &m, nil
}

// Save writes m to path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "encode manifest")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write manifest %s", path)
}

// CanonicalVersion validates v as a semantic version ("v" prefix optional)
// and returns it in canonical form.
func CanonicalVersion(v string) (string, error) {
	if len(v) > 0 && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", errors.WithHint(
			errors.Newf("invalid snapshot version %q", v),
			"use a semantic version such as 1.2.0",
		)
	}
	return semver.Canonical(v), nil
}

// AddSnapshot records s and moves the version pointers. Re-recording a name
// and version replaces the earlier entry. Snapshots stay ordered by version.
func (m *Manifest) AddSnapshot(s Snapshot) error {
	v, err := CanonicalVersion(s.Version)
	if err != nil {
		return err
	}
	s.Version = v

	if m.CurrentVersion != "" && m.CurrentVersion != v {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = v

	if i := m.index(s.Name, v); i >= 0 {
		m.Snapshots[i] = s
	} else {
		m.Snapshots = append(m.Snapshots, s)
	}
	sort.SliceStable(m.Snapshots, func(i, j int) bool {
		return semver.Compare(m.Snapshots[i].Version, m.Snapshots[j].Version) < 0
	})
	return nil
}

// Find returns the most recently recorded snapshot for version.
func (m *Manifest) Find(version string) (*Snapshot, bool) {
	if v, err := CanonicalVersion(version); err == nil {
		version = v
	}
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].Version == version {
			s := m.Snapshots[i]
			return &s, true
		}
	}
	return nil, false
}

// SnapshotFile returns the file recorded for version, or "".
func (m *Manifest) SnapshotFile(version string) string {
	if s, ok := m.Find(version); ok {
		return s.File
	}
	return ""
}

func (m *Manifest) index(name, version string) int {
	for i := range m.Snapshots {
		if m.Snapshots[i].Name == name && m.Snapshots[i].Version == version {
			return i
		}
	}
	return -1
}
