package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/macrogen/pkg/model"
)

func TestLoadFormats(ttt *testing.T) {
	wantShape := model.Class{
		Name: "Shape",
		Fields: []model.Field{
			{Name: "_id", Type: model.TypeRef{Name: "int"}, IsFinal: true},
			{Name: "label", Type: model.TypeRef{Name: "String", Nullable: true}},
		},
		Constructors: []model.Constructor{{
			Name:       "",
			Positional: []model.Parameter{{Name: "id", Type: model.TypeRef{Name: "int"}, Required: true}},
			Named:      []model.Parameter{{Name: "label", Type: model.TypeRef{Name: "String", Nullable: true}}},
		}},
	}
	wantCircle := model.Class{
		Name:       "Circle",
		Superclass: "Shape",
		Fields: []model.Field{
			{Name: "radius", Type: model.TypeRef{Name: "double"}},
			{Name: "count", Type: model.TypeRef{Name: "int"}, IsStatic: true, HasInitializer: true},
		},
		Getters: []string{"area"},
	}

	for _, file := range []string{"shapes.yaml", "shapes.toml", "shapes.json"} {
		file := file
		ttt.Run(file, func(t *testing.T) {
			t.Parallel()
			lib, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)
			require.Equal(t, "Object", lib.Root)
			require.Equal(t, []string{"Circle", "Shape"}, lib.Classes())

			shape, ok := lib.Class("Shape")
			require.True(t, ok)
			require.Equal(t, wantShape, *shape)

			circle, ok := lib.Class("Circle")
			require.True(t, ok)
			require.Equal(t, wantCircle, *circle)

			super, err := lib.SuperclassOf(context.Background(), "Circle")
			require.NoError(t, err)
			require.Equal(t, "Shape", super.Name)
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("classes:\n  - name: A\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.json"), []byte(`{"classes":[{"name":"B","superclass":"A"}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	lib, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, lib.Classes())
}

func TestLoadNullableShorthand(t *testing.T) {
	src := `classes:
  - name: N
    fields:
      - { name: a, type: "int?" }
      - name: b
        type: String?
      - { name: c, type: int, nullable: true }
`
	path := filepath.Join(t.TempDir(), "nullable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	lib, err := Load(path)
	require.NoError(t, err)
	n, ok := lib.Class("N")
	require.True(t, ok)
	require.Equal(t, []model.Field{
		{Name: "a", Type: model.TypeRef{Name: "int", Nullable: true}},
		{Name: "b", Type: model.TypeRef{Name: "String", Nullable: true}},
		{Name: "c", Type: model.TypeRef{Name: "int", Nullable: true}},
	}, n.Fields)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "classes.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<classes/>"), 0o644))
	_, err := Load(bad)
	require.ErrorContains(t, err, "unsupported descriptor format")
	require.Contains(t, errors.FlattenHints(err), ".yaml")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("classes: [\n"), 0o644))
	_, err = Load(broken)
	require.ErrorContains(t, err, "decode descriptor")

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("classes:\n  - name: A\n  - name: A\n"), 0o644))
	_, err = Load(dup)
	require.ErrorContains(t, err, "declared twice")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFileWhileReading(t *testing.T) {
	dir := t.TempDir()
	lib, err := NewLibrary(model.Class{Name: "Base"}, model.Class{Name: "Leaf", Superclass: "Base"})
	require.NoError(t, err)

	var files []string
	for i := 0; i < 8; i++ {
		path := filepath.Join(dir, fmt.Sprintf("c%d.yaml", i))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("root: Base\nclasses:\n  - name: C%d\n", i)), 0o644))
		files = append(files, path)
	}

	var wg sync.WaitGroup
	for _, f := range files {
		f := f
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, lib.LoadFile(f))
		}()
		go func() {
			defer wg.Done()
			_, err := lib.SuperclassOf(context.Background(), "Leaf")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	super, err := lib.SuperclassOf(context.Background(), "Leaf")
	require.NoError(t, err)
	require.Nil(t, super)
	require.Len(t, lib.Classes(), 10)
}

func TestIsDescriptor(t *testing.T) {
	require.True(t, IsDescriptor("a/b.YML"))
	require.True(t, IsDescriptor("b.toml"))
	require.False(t, IsDescriptor("b.dart"))
}
