package model

import "strings"

// TypeRef is a type as the host reports it.
type TypeRef struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty" toml:"nullable,omitempty"`
}

// ParseTypeRef accepts the shorthand `String?` for a nullable String.
func ParseTypeRef(s string) TypeRef {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "?") {
		return TypeRef{Name: strings.TrimSuffix(s, "?"), Nullable: true}
	}
	return TypeRef{Name: s}
}

// Code renders the type as it appears in source.
func (t TypeRef) Code() string {
	if t.Nullable && !strings.HasSuffix(t.Name, "?") {
		return t.Name + "?"
	}
	return t.Name
}

type Field struct {
	Name           string  // identifier, including any privacy marker
	Type           TypeRef // declared type
	IsStatic       bool
	IsFinal        bool
	HasInitializer bool
}

type Parameter struct {
	Name     string
	Type     TypeRef
	Required bool
}

// Constructor is a constructor signature. The unnamed constructor has Name "".
type Constructor struct {
	Name       string
	Positional []Parameter
	Named      []Parameter
}

type Class struct {
	Name         string
	Superclass   string // "" when the class has no explicit superclass
	Fields       []Field
	Constructors []Constructor
	Getters      []string
}

// FindConstructor returns the constructor with the given name, or nil.
func (c *Class) FindConstructor(name string) *Constructor {
	for i := range c.Constructors {
		if c.Constructors[i].Name == name {
			return &c.Constructors[i]
		}
	}
	return nil
}

// Descriptor is everything the synthesizer needs to know about one class.
// It is produced by the inspector and never touches the host afterwards.
type Descriptor struct {
	Class        string
	Fields       []Field
	Constructors []Constructor

	// Superclass is empty and SuperConstructor nil when the class extends the
	// root class.
	Superclass       string
	SuperConstructor *Constructor
}

// HasConstructor reports whether a constructor named name is already declared.
func (d *Descriptor) HasConstructor(name string) bool {
	for _, c := range d.Constructors {
		if c.Name == name {
			return true
		}
	}
	return false
}

type DeclarationKind string

const (
	DeclConstructor DeclarationKind = "constructor"
	DeclGetter      DeclarationKind = "getter"
)

// Declaration is generated code handed to the host.
type Declaration struct {
	Class string
	Kind  DeclarationKind
	Name  string
	Code  string

	// Constructor is set for constructor declarations so the host can register
	// the new signature.
	Constructor *Constructor
}
