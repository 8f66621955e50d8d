// Package construct applies the constructor macro to a class.
package construct

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
	Constructor *model.GeneratedConstructor
	Declaration model.Declaration
}

// Apply inspects class, synthesizes its constructor and declares it in h.
// Nothing is declared unless every step succeeded.
func Apply(ctx context.Context, h host.Host, class string, opts ...macro.Option) (*Result, error) {
	return ApplyWithOpts(ctx, h, class, macro.NewOptions(opts...))
}

func ApplyWithOpts(ctx context.Context, h host.Host, class string, opts *macro.Options) (*Result, error) {
	o := *opts
	o.Normalize()

	d, err := inspector.Inspect(ctx, h, class, o.Name)
	if err != nil {
		return nil, err
	}
	gc, err := synth.Constructor(d, &o)
	if err != nil {
		return nil, err
	}
	sig := gc.Signature()
	decl := model.Declaration{
		Class:       class,
		Kind:        model.DeclConstructor,
		Name:        gc.Name,
		Code:        emit.Constructor(gc, o.Indent),
		Constructor: &sig,
	}
	if err = h.DeclareInType(ctx, class, decl); err != nil {
		return nil, errors.Wrapf(err, "declare constructor in %s", class)
	}
	slog.Debug("declared constructor", "class", class, "constructor", gc.Name)
	return &Result{Constructor: gc, Declaration: decl}, nil
}
