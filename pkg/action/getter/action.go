// Package getter applies the getter macro to a field.
package getter

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/macrogen/internal/emit"
	"github.com/cmmoran/macrogen/internal/inspector"
	"github.com/cmmoran/macrogen/internal/synth"
	"github.com/cmmoran/macrogen/pkg/host"
	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

type Result struct {
	Getter      *model.GeneratedGetter
	Declaration model.Declaration
}

// Apply declares a public getter for field on class.
func Apply(ctx context.Context, h host.Host, class, field string, opts ...macro.Option) (*Result, error) {
	return ApplyWithOpts(ctx, h, class, field, macro.NewOptions(opts...))
}

func ApplyWithOpts(ctx context.Context, h host.Host, class, field string, opts *macro.Options) (*Result, error) {
	o := *opts
	o.Normalize()

	f, err := inspector.FieldOf(ctx, h, class, field)
	if err != nil {
		return nil, err
	}
	existing, err := h.GettersOf(ctx, class)
	if err != nil {
		return nil, errors.Wrapf(err, "getters of %s", class)
	}
	g, err := synth.Getter(class, *f, existing, &o)
	if err != nil {
		return nil, err
	}
	decl := model.Declaration{
		Class: class,
		Kind:  model.DeclGetter,
		Name:  g.Name,
		Code:  emit.Getter(g),
	}
	if err = h.DeclareInType(ctx, class, decl); err != nil {
		return nil, errors.Wrapf(err, "declare getter in %s", class)
	}
	slog.Debug("declared getter", "class", class, "getter", g.Name)
	return &Result{Getter: g, Declaration: decl}, nil
}
