package synth

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

// Constructor synthesizes a constructor for the class described by d.
//
// It is a pure function of its inputs: no host is consulted, so it can be run
// repeatedly against hand-built descriptors.
func Constructor(d *model.Descriptor, opts *macro.Options) (*model.GeneratedConstructor, error) {
	if d == nil {
		return nil, errors.New("nil class descriptor")
	}
	if opts == nil {
		opts = macro.NewOptions()
	}
	if d.HasConstructor(opts.Name) {
		return nil, macro.NewDuplicateConstructor(d.Class, opts.Name)
	}

	gc := &model.GeneratedConstructor{
		Class: d.Class,
		Name:  opts.Name,
		Const: opts.Const,
	}
	names := make(map[string]bool)

	// own fields -----------------------------------------------------------
	var ownNamed []model.SynthesizedParameter
	for _, f := range d.Fields {
		if skipField(f, opts) {
			continue
		}
		names[f.Name] = true
		if opts.IsPrivate(f.Name) {
			gc.Positional = append(gc.Positional, model.SynthesizedParameter{
				Name:       f.Name,
				Type:       f.Type,
				Provenance: model.OwnedPositional,
				Required:   true,
			})
			continue
		}
		ownNamed = append(ownNamed, model.SynthesizedParameter{
			Name:       f.Name,
			Type:       f.Type,
			Provenance: model.OwnedNamed,
			Required:   !f.Type.Nullable,
		})
	}
	gc.Named = append(gc.Named, ownNamed...)

	// super constructor ----------------------------------------------------
	if sc := d.SuperConstructor; sc != nil {
		call := &model.SuperCall{}
		for _, p := range sc.Positional {
			call.Positional = append(call.Positional, p.Name)
			gc.Named = appendInherited(gc.Named, names, d.Class, p, model.InheritedPositionalAsNamed)
		}
		for _, p := range sc.Named {
			gc.Named = appendInherited(gc.Named, names, d.Class, p, model.InheritedNamed)
		}
		gc.Super = call
	}

	// extras ---------------------------------------------------------------
	for _, raw := range opts.ExtraNamedParameters {
		gc.Named = append(gc.Named, model.SynthesizedParameter{Provenance: model.Extra, Raw: raw})
	}

	slog.Debug("synthesized constructor",
		"class", d.Class,
		"constructor", opts.Name,
		"positional", len(gc.Positional),
		"named", len(gc.Named),
		"super", gc.Super != nil)
	return gc, nil
}

// skipField applies the field exclusion rules in order.
func skipField(f model.Field, opts *macro.Options) bool {
	switch {
	case f.IsStatic:
		return true
	case f.IsFinal && f.HasInitializer:
		return true
	case opts.SkipInitialized && f.HasInitializer:
		return true
	}
	return false
}

// appendInherited adds a super parameter unless a parameter with the same name
// is already in the list. A shadowed positional is still passed to super by
// name, which resolves to the earlier parameter; the earlier parameter becomes
// required when the super parameter is.
func appendInherited(
	named []model.SynthesizedParameter,
	names map[string]bool,
	class string,
	p model.Parameter,
	prov model.Provenance,
) []model.SynthesizedParameter {
	if names[p.Name] {
		if p.Required {
			for i := range named {
				if named[i].Name == p.Name && named[i].Provenance != model.Extra {
					named[i].Required = true
				}
			}
		}
		if prov == model.InheritedNamed {
			slog.Warn("named super parameter shadowed by a field is not forwarded", "class", class, "param", p.Name)
		} else {
			slog.Debug("inherited parameter shadowed", "class", class, "param", p.Name, "provenance", prov.String())
		}
		return named
	}
	names[p.Name] = true
	return append(named, model.SynthesizedParameter{
		Name:       p.Name,
		Type:       p.Type,
		Provenance: prov,
		Required:   p.Required,
	})
}
