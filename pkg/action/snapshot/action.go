// Package snapshot keeps versioned copies of the generated macro output and
// diffs them.
package snapshot

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/macrogen/pkg/action/generate"
	"github.com/cmmoran/macrogen/pkg/manifest"
)

// Generate runs the configured macros into a versioned copy of the output
// file and records it in the manifest at manifestPath.
func Generate(ctx context.Context, cfg *generate.Config, manifestPath, name, version string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}
	version, err = manifest.CanonicalVersion(version)
	if err != nil {
		return "", err
	}

	c := *cfg
	c.OutFile = versionedName(cfg.OutFile, version)
	report, err := generate.Generate(ctx, &c)
	if err != nil {
		// a partial snapshot is never recorded, so do not leave its file behind
		if report != nil {
			if rmErr := os.Remove(report.OutFile); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				slog.Warn("remove partial snapshot", "file", report.OutFile, "error", rmErr)
			}
		}
		return "", err
	}

	err = m.AddSnapshot(manifest.Snapshot{
		Name:         name,
		Version:      version,
		File:         report.OutFile,
		Declarations: len(report.Declarations),
	})
	if err != nil {
		return "", err
	}
	if err = m.Save(manifestPath); err != nil {
		return "", err
	}
	slog.Info("recorded snapshot", "name", name, "version", version, "file", report.OutFile)
	return report.OutFile, nil
}

// versionedName turns "macros.g.dart" into "macros.v1.2.0.g.dart".
func versionedName(file, version string) string {
	if file == "" {
		file = "macros.g.dart"
	}
	dir, base := filepath.Dir(file), filepath.Base(file)
	stem, rest, found := strings.Cut(base, ".")
	if !found {
		return filepath.Join(dir, base+"."+version)
	}
	return filepath.Join(dir, stem+"."+version+"."+rest)
}

// List returns the manifest at manifestPath.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// Diff compares the snapshot files recorded for two versions. Empty versions
// default to the manifest's previous and current pointers. The result is empty
// when the files are identical.
func Diff(manifestPath, from, to string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}
	if from == "" {
		from = m.PreviousVersion
	}
	if to == "" {
		to = m.CurrentVersion
	}
	if from == "" || to == "" {
		return "", errors.WithHint(
			errors.New("no current/previous snapshots recorded"),
			"record at least two snapshot versions with `snapshot create`",
		)
	}

	previous, err := read(m, from)
	if err != nil {
		return "", err
	}
	current, err := read(m, to)
	if err != nil {
		return "", err
	}
	return cmp.Diff(previous, current), nil
}

// DiffCurrentWithPrevious diffs the previous snapshot against the current one.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	return Diff(manifestPath, "", "")
}

func read(m *manifest.Manifest, version string) (string, error) {
	s, ok := m.Find(version)
	if !ok {
		return "", errors.Newf("snapshot %s not found in manifest", version)
	}
	data, err := os.ReadFile(s.File)
	if err != nil {
		return "", errors.Wrapf(err, "read snapshot %s", version)
	}
	return string(data), nil
}
