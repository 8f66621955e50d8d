package synth

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

// Getter derives a public getter for a privacy-marked field: `_name` yields
// `name`. existing holds the getters already declared on the class.
func Getter(class string, f model.Field, existing []string, opts *macro.Options) (*model.GeneratedGetter, error) {
	if opts == nil {
		opts = macro.NewOptions()
	}
	if !opts.IsPrivate(f.Name) {
		return nil, errors.WithStack(&macro.InvalidGetterNameError{
			Class:  class,
			Field:  f.Name,
			Reason: "field does not start with " + opts.PrivacyMarker,
		})
	}
	name := strings.TrimPrefix(f.Name, opts.PrivacyMarker)
	if name == "" {
		return nil, errors.WithStack(&macro.InvalidGetterNameError{
			Class:  class,
			Field:  f.Name,
			Reason: "nothing left after the privacy marker",
		})
	}
	for _, g := range existing {
		if g == name {
			return nil, errors.WithStack(&macro.DuplicateGetterError{Class: class, Name: name})
		}
	}
	return &model.GeneratedGetter{
		Class: class,
		Field: f.Name,
		Name:  name,
		Type:  f.Type,
	}, nil
}
