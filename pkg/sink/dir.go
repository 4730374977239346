package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Dir writes files below a filesystem directory.
type Dir struct {
	root string
}

// NewDir returns a sink rooted at root. Nothing is touched until
// [Dir.Prepare] runs.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Location() string { return d.root }

// Prepare creates the directory if it is missing. An existing directory must
// be empty apart from the kept entries, unless clear is set, in which case
// everything else is removed.
func (d *Dir) Prepare(ctx context.Context, clear bool, keep ...string) error {
	entries, err := os.ReadDir(d.root)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(d.root, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}

	var stale []string
	for _, e := range entries {
		if !slices.Contains(keep, e.Name()) {
			stale = append(stale, e.Name())
		}
	}
	if len(stale) == 0 {
		return nil
	}
	if !clear {
		return &OutputNotEmptyError{Path: d.root}
	}
	for _, name := range stale {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(filepath.Join(d.root, name)); err != nil {
			return fmt.Errorf("clear output directory: %w", err)
		}
	}
	return nil
}

func (d *Dir) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := d.path(path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	return os.WriteFile(full, data, 0644)
}

func (d *Dir) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(d.path(path))
}

func (d *Dir) path(rel string) string {
	return filepath.Join(d.root, filepath.FromSlash(rel))
}
