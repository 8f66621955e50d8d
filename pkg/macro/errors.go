package macro

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// DuplicateConstructorError is returned when the class already declares a
// constructor with the requested name.
type DuplicateConstructorError struct {
	Class string
	Name  string
}

func (e *DuplicateConstructorError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cannot generate an unnamed constructor for %s: one already exists", e.Class)
	}
	return fmt.Sprintf("cannot generate constructor %s.%s: a constructor with that name already exists", e.Class, e.Name)
}

// MissingSuperConstructorError is returned when the superclass declares no
// unnamed constructor to delegate to.
type MissingSuperConstructorError struct {
	Class      string
	Superclass string
}

func (e *MissingSuperConstructorError) Error() string {
	return fmt.Sprintf("superclass %s of %s does not have an unnamed constructor", e.Superclass, e.Class)
}

type DuplicateGetterError struct {
	Class string
	Name  string
}

func (e *DuplicateGetterError) Error() string {
	return fmt.Sprintf("cannot generate getter %s.%s: a getter with that name already exists", e.Class, e.Name)
}

type FieldNotFoundError struct {
	Class string
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("class %s has no field %s", e.Class, e.Field)
}

type InvalidGetterNameError struct {
	Class  string
	Field  string
	Reason string
}

func (e *InvalidGetterNameError) Error() string {
	return fmt.Sprintf("cannot derive a getter name from %s.%s: %s", e.Class, e.Field, e.Reason)
}

type ClassNotFoundError struct {
	Class string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class %s is not declared", e.Class)
}

// NewDuplicateConstructor builds a DuplicateConstructorError carrying a hint.
func NewDuplicateConstructor(class, name string) error {
	hint := "pass a different constructor name or remove the existing constructor"
	if name == "" {
		hint = "pass a constructor name to generate a named constructor instead"
	}
	return errors.WithHint(errors.WithStack(&DuplicateConstructorError{Class: class, Name: name}), hint)
}

func NewMissingSuperConstructor(class, superclass string) error {
	return errors.WithHintf(
		errors.WithStack(&MissingSuperConstructorError{Class: class, Superclass: superclass}),
		"declare an unnamed constructor on %s", superclass,
	)
}

// IsFatal reports whether err is one of the deterministic macro failures.
// Anything else (host I/O, cancellation) is reported as-is.
func IsFatal(err error) bool {
	var (
		dc *DuplicateConstructorError
		ms *MissingSuperConstructorError
		dg *DuplicateGetterError
		fn *FieldNotFoundError
		ig *InvalidGetterNameError
		cn *ClassNotFoundError
	)
	return errors.As(err, &dc) || errors.As(err, &ms) || errors.As(err, &dg) ||
		errors.As(err, &fn) || errors.As(err, &ig) || errors.As(err, &cn)
}
