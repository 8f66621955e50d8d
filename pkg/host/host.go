// Package host defines the introspection boundary the macros run against and
// ships Library, an in-memory implementation loaded from descriptor files.
package host

import (
	"context"

	"github.com/cmmoran/macrogen/pkg/model"
)

// DefaultRoot is the implicit superclass of every class.
const DefaultRoot = "Object"

// Host is the macro runtime's introspection and declaration API.
type Host interface {
	// FieldsOf returns the declared fields of class in declaration order.
	FieldsOf(ctx context.Context, class string) ([]model.Field, error)
	// ConstructorsOf returns the declared constructors of class.
	ConstructorsOf(ctx context.Context, class string) ([]model.Constructor, error)
	// SuperclassOf returns the superclass declaration, or nil when class
	// extends the root class.
	SuperclassOf(ctx context.Context, class string) (*model.Class, error)
	// GettersOf returns the names of the getters declared on class.
	GettersOf(ctx context.Context, class string) ([]string, error)
	// DeclareInType adds generated code to class.
	DeclareInType(ctx context.Context, class string, decl model.Declaration) error
}
