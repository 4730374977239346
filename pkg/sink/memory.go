package sink

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"
)

// Memory keeps files in memory. It backs dry runs and tests.
//
// The zero value is an empty, usable sink.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Location() string { return "memory" }

// Prepare applies the same rules as [Dir.Prepare] to the stored files. A
// file counts against the top-level entry its path starts with.
func (m *Memory) Prepare(ctx context.Context, clear bool, keep ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stale []string
	for p := range m.files {
		top, _, _ := strings.Cut(p, "/")
		if !slices.Contains(keep, top) {
			stale = append(stale, p)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	if !clear {
		return &OutputNotEmptyError{Path: m.Location()}
	}
	for _, p := range stale {
		delete(m.files, p)
	}
	return ctx.Err()
}

func (m *Memory) WriteFile(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[path.Clean(p)] = slices.Clone(data)
	return nil
}

func (m *Memory) ReadFile(_ context.Context, p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", p, fs.ErrNotExist)
	}
	return slices.Clone(data), nil
}

// Paths returns every stored path, sorted.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.files))
}

// Len returns the number of stored files.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
