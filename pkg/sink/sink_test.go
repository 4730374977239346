package sink

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDirPrepareCreates(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out", "nested")
	d := NewDir(root)
	if err := d.Prepare(context.Background(), false); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Errorf("Prepare() did not create %s: %v", root, err)
	}
}

func TestDirPrepareNotEmpty(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "old.puml"), "x")

	err := NewDir(root).Prepare(context.Background(), false)
	if !errors.Is(err, ErrOutputNotEmpty) {
		t.Fatalf("Prepare() error = %v, want ErrOutputNotEmpty", err)
	}
	var ne *OutputNotEmptyError
	if !errors.As(err, &ne) || ne.Path != root {
		t.Errorf("Prepare() error = %#v, want OutputNotEmptyError{%s}", err, root)
	}
}

func TestDirPrepareClearKeeps(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "old.puml"), "x")
	writeFile(t, filepath.Join(root, "Sub", "deep.puml"), "x")
	writeFile(t, filepath.Join(root, "_namespaces.puml"), "keep me")

	if err := NewDir(root).Prepare(context.Background(), true, "_namespaces.puml"); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "_namespaces.puml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("entries after clear = %v, want [_namespaces.puml]", names)
	}
}

func TestDirPrepareOnlyKept(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_namespaces.puml"), "keep me")
	if err := NewDir(root).Prepare(context.Background(), false, "_namespaces.puml"); err != nil {
		t.Errorf("Prepare() with only kept entries error = %v, want nil", err)
	}
}

func TestDirWriteRead(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root)
	ctx := context.Background()

	if err := d.WriteFile(ctx, "A/B/C.puml", []byte("content")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := d.ReadFile(ctx, "A/B/C.puml")
	if err != nil || string(got) != "content" {
		t.Errorf("ReadFile() = %q, %v, want content", got, err)
	}
	if _, err := d.ReadFile(ctx, "missing.puml"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Prepare(ctx, false); err != nil {
		t.Fatalf("Prepare() on empty sink error = %v", err)
	}
	for _, p := range []string{"B/x.puml", "a.puml", "_namespaces.puml"} {
		if err := m.WriteFile(ctx, p, []byte(p)); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := m.Paths(), []string{"B/x.puml", "_namespaces.puml", "a.puml"}; !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}

	if err := m.Prepare(ctx, false, "_namespaces.puml"); !errors.Is(err, ErrOutputNotEmpty) {
		t.Errorf("Prepare() error = %v, want ErrOutputNotEmpty", err)
	}
	if err := m.Prepare(ctx, true, "_namespaces.puml"); err != nil {
		t.Fatalf("Prepare(clear) error = %v", err)
	}
	if got := m.Paths(); !slices.Equal(got, []string{"_namespaces.puml"}) {
		t.Errorf("Paths() after clear = %v", got)
	}
	if _, err := m.ReadFile(ctx, "a.puml"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(cleared) error = %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryCopiesData(t *testing.T) {
	ctx := context.Background()
	var m Memory
	data := []byte("abc")
	if err := m.WriteFile(ctx, "f", data); err != nil {
		t.Fatal(err)
	}
	data[0] = 'X'
	got, _ := m.ReadFile(ctx, "f")
	if string(got) != "abc" {
		t.Errorf("ReadFile() = %q, want abc", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
