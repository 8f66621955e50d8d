package host

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

// Library is an in-memory Host. Declarations made through DeclareInType are
// registered on the class, so applying a macro twice is detected.
type Library struct {
	Root string

	mu      sync.RWMutex
	classes map[string]*model.Class
	decls   map[string][]model.Declaration
}

func NewLibrary(classes ...model.Class) (*Library, error) {
	l := &Library{
		Root:    DefaultRoot,
		classes: make(map[string]*model.Class),
		decls:   make(map[string][]model.Declaration),
	}
	for _, c := range classes {
		if err := l.Add(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add registers a class declaration.
func (l *Library) Add(c model.Class) error {
	if c.Name == "" {
		return errors.New("class declaration without a name")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.classes[c.Name]; ok {
		return errors.Newf("class %s declared twice", c.Name)
	}
	l.classes[c.Name] = cloneClass(&c)
	return nil
}

// Class returns a copy of the named class.
func (l *Library) Class(name string) (*model.Class, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.classes[name]
	if !ok {
		return nil, false
	}
	return cloneClass(c), true
}

// Classes returns the declared class names, sorted.
func (l *Library) Classes() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.classes))
	for name := range l.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Declarations returns what has been declared into class, in order.
func (l *Library) Declarations(class string) []model.Declaration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Declaration(nil), l.decls[class]...)
}

func (l *Library) FieldsOf(ctx context.Context, class string) ([]model.Field, error) {
	c, err := l.lookup(ctx, class)
	if err != nil {
		return nil, err
	}
	return c.Fields, nil
}

// ConstructorsOf drops repeated names; the first declaration wins.
func (l *Library) ConstructorsOf(ctx context.Context, class string) ([]model.Constructor, error) {
	c, err := l.lookup(ctx, class)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(c.Constructors))
	out := make([]model.Constructor, 0, len(c.Constructors))
	for _, ctor := range c.Constructors {
		if seen[ctor.Name] {
			continue
		}
		seen[ctor.Name] = true
		out = append(out, ctor)
	}
	return out, nil
}

func (l *Library) SuperclassOf(ctx context.Context, class string) (*model.Class, error) {
	c, err := l.lookup(ctx, class)
	if err != nil {
		return nil, err
	}
	if c.Superclass == "" || c.Superclass == l.root() {
		return nil, nil
	}
	sc, err := l.lookup(ctx, c.Superclass)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve superclass of %s", class)
	}
	return sc, nil
}

func (l *Library) GettersOf(ctx context.Context, class string) ([]string, error) {
	c, err := l.lookup(ctx, class)
	if err != nil {
		return nil, err
	}
	return c.Getters, nil
}

func (l *Library) DeclareInType(ctx context.Context, class string, decl model.Declaration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.classes[class]
	if !ok {
		return errors.WithStack(&macro.ClassNotFoundError{Class: class})
	}
	switch decl.Kind {
	case model.DeclConstructor:
		if c.FindConstructor(decl.Name) != nil {
			return macro.NewDuplicateConstructor(class, decl.Name)
		}
		sig := model.Constructor{Name: decl.Name}
		if decl.Constructor != nil {
			sig = cloneConstructor(*decl.Constructor)
		}
		c.Constructors = append(c.Constructors, sig)
	case model.DeclGetter:
		for _, g := range c.Getters {
			if g == decl.Name {
				return errors.WithStack(&macro.DuplicateGetterError{Class: class, Name: decl.Name})
			}
		}
		c.Getters = append(c.Getters, decl.Name)
	default:
		return errors.Newf("unsupported declaration kind %q", decl.Kind)
	}
	decl.Class = class
	l.decls[class] = append(l.decls[class], decl)
	return nil
}

// lookup returns a copy of class so callers never alias library state.
func (l *Library) lookup(ctx context.Context, class string) (*model.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, ok := l.Class(class)
	if !ok {
		return nil, errors.WithStack(&macro.ClassNotFoundError{Class: class})
	}
	return c, nil
}

func (l *Library) root() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.Root == "" {
		return DefaultRoot
	}
	return l.Root
}

func cloneClass(c *model.Class) *model.Class {
	out := &model.Class{
		Name:       c.Name,
		Superclass: c.Superclass,
		Fields:     append([]model.Field(nil), c.Fields...),
		Getters:    append([]string(nil), c.Getters...),
	}
	for _, ctor := range c.Constructors {
		out.Constructors = append(out.Constructors, cloneConstructor(ctor))
	}
	return out
}

func cloneConstructor(c model.Constructor) model.Constructor {
	return model.Constructor{
		Name:       c.Name,
		Positional: append([]model.Parameter(nil), c.Positional...),
		Named:      append([]model.Parameter(nil), c.Named...),
	}
}

var _ Host = (*Library)(nil)
