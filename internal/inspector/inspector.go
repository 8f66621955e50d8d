package inspector

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/macrogen/pkg/host"
	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

// Inspect queries h for everything constructor synthesis needs about class:
// its fields, its declared constructors and the unnamed constructor of its
// superclass. When class already declares a constructor named ctorName it
// fails with a DuplicateConstructorError before any other query.
func Inspect(ctx context.Context, h host.Host, class, ctorName string) (*model.Descriptor, error) {
	ctors, err := h.ConstructorsOf(ctx, class)
	if err != nil {
		return nil, errors.Wrapf(err, "constructors of %s", class)
	}
	for _, c := range ctors {
		if c.Name == ctorName {
			return nil, macro.NewDuplicateConstructor(class, ctorName)
		}
	}
	fields, err := h.FieldsOf(ctx, class)
	if err != nil {
		return nil, errors.Wrapf(err, "fields of %s", class)
	}

	d := &model.Descriptor{
		Class:        class,
		Fields:       fields,
		Constructors: dedupe(ctors),
	}

	super, err := h.SuperclassOf(ctx, class)
	if err != nil {
		return nil, errors.Wrapf(err, "superclass of %s", class)
	}
	if super == nil {
		slog.Debug("class extends root", "class", class)
		return d, nil
	}

	superCtors, err := h.ConstructorsOf(ctx, super.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "constructors of %s", super.Name)
	}
	d.Superclass = super.Name
	for i := range superCtors {
		if superCtors[i].Name == "" {
			d.SuperConstructor = &superCtors[i]
			break
		}
	}
	if d.SuperConstructor == nil {
		return nil, macro.NewMissingSuperConstructor(class, super.Name)
	}

	slog.Debug("inspected class",
		"class", class,
		"fields", len(d.Fields),
		"superclass", d.Superclass,
		"super_positional", len(d.SuperConstructor.Positional),
		"super_named", len(d.SuperConstructor.Named))
	return d, nil
}

// FieldOf returns the named field of class.
func FieldOf(ctx context.Context, h host.Host, class, field string) (*model.Field, error) {
	fields, err := h.FieldsOf(ctx, class)
	if err != nil {
		return nil, errors.Wrapf(err, "fields of %s", class)
	}
	for i := range fields {
		if fields[i].Name == field {
			return &fields[i], nil
		}
	}
	return nil, errors.WithStack(&macro.FieldNotFoundError{Class: class, Field: field})
}

func dedupe(ctors []model.Constructor) []model.Constructor {
	seen := make(map[string]bool, len(ctors))
	out := ctors[:0:0]
	for _, c := range ctors {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}
