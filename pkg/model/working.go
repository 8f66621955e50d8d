package model

// Provenance records where a synthesized parameter came from.
type Provenance int

const (
	ProvenanceInvalid          Provenance = iota
	OwnedPositional                       // privacy-marked field, stored locally
	OwnedNamed                            // public field, stored locally
	InheritedPositionalAsNamed            // super positional param exposed by name
	InheritedNamed                        // super named param, passed through as super.name
	Extra                                 // caller-supplied tokens, emitted verbatim
)

func (p Provenance) String() string {
	switch p {
	case OwnedPositional:
		return "owned-positional"
	case OwnedNamed:
		return "owned-named"
	case InheritedPositionalAsNamed:
		return "inherited-positional-as-named"
	case InheritedNamed:
		return "inherited-named"
	case Extra:
		return "extra"
	}
	return "invalid"
}

// IsOwned reports whether the parameter initializes a field of the class.
func (p Provenance) IsOwned() bool {
	return p == OwnedPositional || p == OwnedNamed
}

// IsInherited reports whether the parameter is forwarded to the super constructor.
func (p Provenance) IsInherited() bool {
	return p == InheritedPositionalAsNamed || p == InheritedNamed
}

type SynthesizedParameter struct {
	Name       string
	Type       TypeRef
	Provenance Provenance
	Required   bool
	Raw        string // Extra only
}

// Tokens returns the parameter as it is written in the parameter list,
// without the separating comma.
func (p SynthesizedParameter) Tokens() string {
	var prefix string
	if p.Required && p.Provenance != OwnedPositional {
		prefix = "required "
	}
	switch p.Provenance {
	case OwnedPositional, OwnedNamed:
		return prefix + "this." + p.Name
	case InheritedPositionalAsNamed:
		return prefix + p.Type.Code() + " " + p.Name
	case InheritedNamed:
		return prefix + "super." + p.Name
	case Extra:
		return p.Raw
	}
	return ""
}

// SuperCall is the delegating super-constructor invocation. Named super
// parameters reach the super constructor as super.name parameters, so only
// positional arguments appear here, in the super's declared order.
type SuperCall struct {
	Positional []string
}

type GeneratedConstructor struct {
	Class      string
	Name       string // "" for the unnamed constructor
	Const      bool
	Positional []SynthesizedParameter
	Named      []SynthesizedParameter
	Super      *SuperCall
}

// Signature converts the generated constructor to the shape the host stores,
// so later introspection sees it like a hand-written constructor.
func (g *GeneratedConstructor) Signature() Constructor {
	c := Constructor{Name: g.Name}
	for _, p := range g.Positional {
		c.Positional = append(c.Positional, Parameter{Name: p.Name, Type: p.Type, Required: true})
	}
	for _, p := range g.Named {
		if p.Provenance == Extra {
			continue
		}
		c.Named = append(c.Named, Parameter{Name: p.Name, Type: p.Type, Required: p.Required})
	}
	return c
}

type GeneratedGetter struct {
	Class string
	Field string
	Name  string
	Type  TypeRef
}
