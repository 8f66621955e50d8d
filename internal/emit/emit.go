package emit

import (
	"bufio"
	"io"
	"strings"

	"github.com/cmmoran/macrogen/pkg/macro"
	"github.com/cmmoran/macrogen/pkg/model"
)

// Constructor renders gc as a constructor declaration:
//
//	const B.named(
//	  this._z, {
//	  this.w,
//	  required int x,
//	  required super.y,
//	}) : super(x);
func Constructor(gc *model.GeneratedConstructor, indent string) string {
	if indent == "" {
		indent = macro.DefaultIndent
	}
	var b strings.Builder
	if gc.Const {
		b.WriteString("const ")
	}
	b.WriteString(gc.Class)
	if gc.Name != "" {
		b.WriteString(".")
		b.WriteString(gc.Name)
	}
	b.WriteString("(")

	for _, p := range gc.Positional {
		writeParam(&b, indent, p)
	}
	switch {
	case len(gc.Named) > 0:
		if len(gc.Positional) > 0 {
			b.WriteString(" ")
		}
		b.WriteString("{")
		for _, p := range gc.Named {
			writeParam(&b, indent, p)
		}
		b.WriteString("\n}")
	case len(gc.Positional) > 0:
		b.WriteString("\n")
	}
	b.WriteString(")")

	if gc.Super != nil {
		b.WriteString(" : super(")
		b.WriteString(strings.Join(gc.Super.Positional, ", "))
		b.WriteString(")")
	}
	b.WriteString(";")
	return b.String()
}

func writeParam(b *strings.Builder, indent string, p model.SynthesizedParameter) {
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(p.Tokens())
	b.WriteString(",")
}

// Getter renders g as `Type get name => _name;`.
func Getter(g *model.GeneratedGetter) string {
	return g.Type.Code() + " get " + g.Name + " => " + g.Field + ";"
}

// Augmentation wraps declarations in an augmentation of class.
func Augmentation(class, indent string, decls ...string) string {
	if indent == "" {
		indent = macro.DefaultIndent
	}
	var b strings.Builder
	b.WriteString("augment class ")
	b.WriteString(class)
	b.WriteString(" {\n")
	for i, d := range decls {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range strings.Split(d, "\n") {
			if line != "" {
				b.WriteString(indent)
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// File collects generated declarations per class, keeping first-seen class
// order, and renders them as one augmentation library.
type File struct {
	Header string
	Indent string

	order []string
	decls map[string][]string
}

func NewFile(header string) *File {
	return &File{Header: header, decls: make(map[string][]string)}
}

// Add appends a rendered declaration for class.
func (f *File) Add(class, code string) {
	if f.decls == nil {
		f.decls = make(map[string][]string)
	}
	if _, ok := f.decls[class]; !ok {
		f.order = append(f.order, class)
	}
	f.decls[class] = append(f.decls[class], code)
}

// Len is the number of declarations in f.
func (f *File) Len() int {
	n := 0
	for _, d := range f.decls {
		n += len(d)
	}
	return n
}

func (f *File) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if f.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(f.Header, "\n"), "\n") {
			if _, err := bw.WriteString("// " + line + "\n"); err != nil {
				return err
			}
		}
	}
	for i, class := range f.order {
		if i > 0 || f.Header != "" {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(Augmentation(class, f.Indent, f.decls[class]...)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
