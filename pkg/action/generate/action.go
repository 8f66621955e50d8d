// Package generate runs configured macro targets against descriptor files and
// writes the generated declarations to a single output file.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/macrogen/internal/emit"
	"github.com/cmmoran/macrogen/pkg/action/construct"
	"github.com/cmmoran/macrogen/pkg/action/getter"
	"github.com/cmmoran/macrogen/pkg/host"
	"github.com/cmmoran/macrogen/pkg/model"
)

// Failure is a target whose macro application failed. Other targets are not
// affected by it.
type Failure struct {
	Target Target
	Err    error
}

type Report struct {
	OutFile      string
	Declarations []model.Declaration
	Failures     []Failure
}

// Summary describes the run in one line, e.g.
// "generated 2 constructors and 1 getter, 1 failure".
func (r *Report) Summary() string {
	counts := map[model.DeclarationKind]int{}
	for _, d := range r.Declarations {
		counts[d.Kind]++
	}
	parts := []string{
		countOf(counts[model.DeclConstructor], string(model.DeclConstructor)),
		countOf(counts[model.DeclGetter], string(model.DeclGetter)),
	}
	s := "generated " + strings.Join(parts, " and ")
	if len(r.Failures) > 0 {
		s += ", " + countOf(len(r.Failures), "failure")
	}
	return s
}

func countOf(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// Generate loads cfg.Descriptors, applies every target and writes the output
// file. A failing target is recorded in the report; the returned error is set
// when any target failed or the output could not be written.
func Generate(ctx context.Context, cfg *Config) (*Report, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	lib, err := host.Load(cfg.Descriptors...)
	if err != nil {
		return nil, err
	}

	report, f := Run(ctx, lib, cfg)
	if err = ctx.Err(); err != nil {
		return report, err
	}

	if err = os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return report, errors.Wrapf(err, "create output directory %s", cfg.OutDir)
	}
	out, err := os.OpenFile(report.OutFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return report, errors.Wrapf(err, "open output %s", report.OutFile)
	}
	if err = f.Render(out); err != nil {
		_ = out.Close()
		return report, errors.Wrapf(err, "write output %s", report.OutFile)
	}
	if err = out.Close(); err != nil {
		return report, errors.Wrapf(err, "close output %s", report.OutFile)
	}

	slog.Info(report.Summary(), "file", report.OutFile)
	if len(report.Failures) > 0 {
		return report, errors.Newf("%d of %d macro applications failed", len(report.Failures), len(cfg.Targets))
	}
	return report, nil
}

// Run applies cfg.Targets against h and collects the generated code. It does
// not touch the filesystem.
func Run(ctx context.Context, h host.Host, cfg *Config) (*Report, *emit.File) {
	report := &Report{OutFile: cfg.OutPath()}
	f := emit.NewFile(cfg.Header)

	for _, t := range cfg.Targets {
		if ctx.Err() != nil {
			break
		}
		var (
			decl model.Declaration
			err  error
		)
		switch t.Macro {
		case MacroGetter:
			var res *getter.Result
			if res, err = getter.ApplyWithOpts(ctx, h, t.Class, t.Field, &t.Options); err == nil {
				decl = res.Declaration
			}
		default:
			var res *construct.Result
			if res, err = construct.ApplyWithOpts(ctx, h, t.Class, &t.Options); err == nil {
				decl = res.Declaration
			}
		}
		if err != nil {
			slog.Error("macro application failed", "target", t.String(), "error", err)
			report.Failures = append(report.Failures, Failure{Target: t, Err: err})
			continue
		}
		f.Add(decl.Class, decl.Code)
		report.Declarations = append(report.Declarations, decl)
	}
	return report, f
}
