package synth

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

func field(name, typ string) model.Field {
	return model.Field{Name: name, Type: model.ParseTypeRef(typ)}
}

func param(name, typ string, required bool) model.Parameter {
	return model.Parameter{Name: name, Type: model.ParseTypeRef(typ), Required: required}
}

// names flattens a parameter block for order assertions.
func names(ps []model.SynthesizedParameter) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if p.Provenance == model.Extra {
			out = append(out, p.Raw)
			continue
		}
		out = append(out, p.Name)
	}
	return out
}

func TestConstructor(ttt *testing.T) {
	superA := &model.Constructor{
		Positional: []model.Parameter{param("x", "int", true), param("x2", "double?", false)},
		Named:      []model.Parameter{param("y", "String", true), param("y2", "bool?", false)},
	}

	tests := []struct {
		name           string
		desc           *model.Descriptor
		opts           []macro.Option
		wantPositional []string
		wantNamed      []string
		wantTokens     []string
		wantSuper      *model.SuperCall
	}{
		{
			name: "root class has no super call",
			desc: &model.Descriptor{
				Class:  "Point",
				Fields: []model.Field{field("x", "int"), field("y", "int")},
			},
			wantNamed:  []string{"x", "y"},
			wantTokens: []string{"required this.x", "required this.y"},
		},
		{
			name: "private fields are positional in declaration order",
			desc: &model.Descriptor{
				Class:  "Box",
				Fields: []model.Field{field("_b", "int"), field("label", "String?"), field("_a", "int")},
			},
			wantPositional: []string{"_b", "_a"},
			wantNamed:      []string{"label"},
			wantTokens:     []string{"this._b", "this._a", "this.label"},
		},
		{
			name: "static and initialized final fields are skipped",
			desc: &model.Descriptor{
				Class: "Counter",
				Fields: []model.Field{
					{Name: "instances", Type: model.TypeRef{Name: "int"}, IsStatic: true},
					{Name: "id", Type: model.TypeRef{Name: "int"}, IsFinal: true, HasInitializer: true},
					{Name: "count", Type: model.TypeRef{Name: "int"}, HasInitializer: true},
					{Name: "name", Type: model.TypeRef{Name: "String"}, IsFinal: true},
				},
			},
			wantNamed:  []string{"count", "name"},
			wantTokens: []string{"required this.count", "required this.name"},
		},
		{
			name: "skipInitialized drops every initialized field",
			desc: &model.Descriptor{
				Class: "Counter",
				Fields: []model.Field{
					{Name: "count", Type: model.TypeRef{Name: "int"}, HasInitializer: true},
					{Name: "_step", Type: model.TypeRef{Name: "int"}, HasInitializer: true},
					{Name: "name", Type: model.TypeRef{Name: "String"}},
				},
			},
			opts:       []macro.Option{macro.WithSkipInitialized()},
			wantNamed:  []string{"name"},
			wantTokens: []string{"required this.name"},
		},
		{
			name: "super parameters are merged after own named fields",
			desc: &model.Descriptor{
				Class:            "B",
				Fields:           []model.Field{field("_z", "int"), field("w", "String?")},
				Superclass:       "A",
				SuperConstructor: superA,
			},
			wantPositional: []string{"_z"},
			wantNamed:      []string{"w", "x", "x2", "y", "y2"},
			wantTokens: []string{
				"this._z",
				"this.w",
				"required int x",
				"double? x2",
				"required super.y",
				"super.y2",
			},
			wantSuper: &model.SuperCall{Positional: []string{"x", "x2"}},
		},
		{
			name: "extra named parameters come last and verbatim",
			desc: &model.Descriptor{
				Class:            "B",
				Fields:           []model.Field{field("w", "String?")},
				Superclass:       "A",
				SuperConstructor: &model.Constructor{Named: []model.Parameter{param("y", "String", true)}},
			},
			opts:       []macro.Option{macro.WithExtraNamedParameters("required this.id,", "  this.tag ")},
			wantNamed:  []string{"w", "y", "required this.id", "this.tag"},
			wantTokens: []string{"this.w", "required super.y", "required this.id", "this.tag"},
			wantSuper:  &model.SuperCall{},
		},
		{
			name: "inherited parameter with an own field's name is not repeated",
			desc: &model.Descriptor{
				Class:            "C",
				Fields:           []model.Field{field("x", "int")},
				Superclass:       "A",
				SuperConstructor: &model.Constructor{Positional: []model.Parameter{param("x", "int", true)}},
			},
			wantNamed:  []string{"x"},
			wantTokens: []string{"required this.x"},
			wantSuper:  &model.SuperCall{Positional: []string{"x"}},
		},
		{
			name: "shadowing keeps the stricter required flag",
			desc: &model.Descriptor{
				Class:            "C",
				Fields:           []model.Field{field("x", "int?")},
				Superclass:       "A",
				SuperConstructor: &model.Constructor{Positional: []model.Parameter{param("x", "int", true)}},
			},
			wantNamed:  []string{"x"},
			wantTokens: []string{"required this.x"},
			wantSuper:  &model.SuperCall{Positional: []string{"x"}},
		},
		{
			name: "named super parameter without a type",
			desc: &model.Descriptor{
				Class:            "B",
				Fields:           []model.Field{field("w", "String?")},
				Superclass:       "A",
				SuperConstructor: &model.Constructor{Named: []model.Parameter{{Name: "y", Required: true}}},
			},
			wantNamed:  []string{"w", "y"},
			wantTokens: []string{"this.w", "required super.y"},
			wantSuper:  &model.SuperCall{},
		},
		{
			name: "custom privacy marker",
			desc: &model.Descriptor{
				Class:  "Odd",
				Fields: []model.Field{field("$secret", "int"), field("_plain", "int")},
			},
			opts:           []macro.Option{macro.WithPrivacyMarker("$")},
			wantPositional: []string{"$secret"},
			wantNamed:      []string{"_plain"},
			wantTokens:     []string{"this.$secret", "required this._plain"},
		},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Constructor(tt.desc, macro.NewOptions(tt.opts...))
			require.NoError(t, err)

			if tt.wantPositional == nil {
				tt.wantPositional = []string{}
			}
			if tt.wantNamed == nil {
				tt.wantNamed = []string{}
			}
			require.Empty(t, cmp.Diff(tt.wantPositional, names(got.Positional)), "positional")
			require.Empty(t, cmp.Diff(tt.wantNamed, names(got.Named)), "named")

			tokens := make([]string, 0)
			for _, p := range append(append([]model.SynthesizedParameter{}, got.Positional...), got.Named...) {
				tokens = append(tokens, p.Tokens())
			}
			require.Equal(t, tt.wantTokens, tokens)
			require.Equal(t, tt.wantSuper, got.Super)
		})
	}
}

func TestConstructorRequiredness(t *testing.T) {
	d := &model.Descriptor{
		Class: "N",
		Fields: []model.Field{
			field("a", "int"),
			field("b", "int?"),
			{Name: "c", Type: model.TypeRef{Name: "List<int>", Nullable: true}},
		},
	}
	got, err := Constructor(d, nil)
	require.NoError(t, err)
	require.Len(t, got.Named, 3)
	for _, p := range got.Named {
		assert.Equal(t, model.OwnedNamed, p.Provenance, p.Name)
		assert.Equal(t, !p.Type.Nullable, p.Required, p.Name)
	}
}

func TestConstructorProvenance(t *testing.T) {
	d := &model.Descriptor{
		Class:      "B",
		Fields:     []model.Field{field("_z", "int"), field("w", "String?")},
		Superclass: "A",
		SuperConstructor: &model.Constructor{
			Positional: []model.Parameter{param("x", "int", true)},
			Named:      []model.Parameter{param("y", "String", true)},
		},
	}
	got, err := Constructor(d, macro.NewOptions(macro.WithExtraNamedParameters("this.id")))
	require.NoError(t, err)

	require.Equal(t, model.OwnedPositional, got.Positional[0].Provenance)
	want := []model.Provenance{model.OwnedNamed, model.InheritedPositionalAsNamed, model.InheritedNamed, model.Extra}
	gotProv := make([]model.Provenance, 0, len(got.Named))
	for _, p := range got.Named {
		gotProv = append(gotProv, p.Provenance)
	}
	require.Equal(t, want, gotProv)
}

func TestConstructorSuperArgumentOrder(t *testing.T) {
	// the super call follows the super's declared order, not the named block
	d := &model.Descriptor{
		Class:      "Sub",
		Fields:     []model.Field{field("c", "int"), field("a", "int")},
		Superclass: "Base",
		SuperConstructor: &model.Constructor{
			Positional: []model.Parameter{param("c", "int", true), param("b", "int", true), param("a", "int", true)},
		},
	}
	got, err := Constructor(d, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b", "a"}, got.Super.Positional)
	require.Equal(t, []string{"c", "a", "b"}, names(got.Named))
}

func TestConstructorOptions(t *testing.T) {
	d := &model.Descriptor{Class: "P"}
	got, err := Constructor(d, macro.NewOptions(macro.WithName("origin"), macro.WithConst()))
	require.NoError(t, err)
	require.Equal(t, "origin", got.Name)
	require.True(t, got.Const)
	require.Empty(t, got.Positional)
	require.Empty(t, got.Named)
	require.Nil(t, got.Super)
}

func TestConstructorDuplicate(t *testing.T) {
	tests := []struct {
		name    string
		ctor    string
		wantMsg string
	}{
		{name: "unnamed", ctor: "", wantMsg: "cannot generate an unnamed constructor for P: one already exists"},
		{name: "named", ctor: "origin", wantMsg: "cannot generate constructor P.origin: a constructor with that name already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &model.Descriptor{
				Class:        "P",
				Fields:       []model.Field{field("x", "int")},
				Constructors: []model.Constructor{{Name: tt.ctor}},
			}
			got, err := Constructor(d, macro.NewOptions(macro.WithName(tt.ctor)))
			require.Nil(t, got)
			var dup *macro.DuplicateConstructorError
			require.True(t, errors.As(err, &dup))
			require.Equal(t, "P", dup.Class)
			require.Equal(t, tt.ctor, dup.Name)
			require.EqualError(t, dup, tt.wantMsg)
		})
	}
}

func TestConstructorNilDescriptor(t *testing.T) {
	_, err := Constructor(nil, nil)
	require.Error(t, err)
}
