// Package manifest builds the folder manifests that tie a generated diagram
// tree together.
//
// Every folder of the output tree, the root included, gets a [FileName]
// manifest with two sub blocks. FOLDERS carries the namespace configuration
// chain from the root down to the folder's own namespace plus the FOLDERS
// block of every child folder. FILES carries the FILES block of every child
// folder and the TYPE block of every type file in the folder. Including the
// root manifest's FILES block therefore reaches every diagram exactly once.
//
// All includes are relative to the manifest itself. The way back to the root
// is derived from the folder's namespace depth, so moving a namespace subtree
// only changes manifests inside it.
package manifest

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/pumlgen/pkg/namespace"
	"github.com/matzehuels/pumlgen/pkg/render/puml"
)

// FileName is the manifest written into every folder.
const FileName = "_.puml"

// Section names inside a manifest.
const (
	FoldersSection = "FOLDERS"
	FilesSection   = "FILES"
)

const root = 0

// folder is one arena slot. Parent and children are indices into
// Tree.folders.
type folder struct {
	dir      string
	name     string
	parent   int
	children []int
	files    []string
}

// Tree is an arena of folders indexed by slash-separated path. The root
// folder always exists and has path "".
//
// The zero value is not usable; create trees with [New].
type Tree struct {
	folders []folder
	index   map[string]int
}

// New returns a tree holding only the root folder.
func New() *Tree {
	return &Tree{
		folders: []folder{{parent: -1}},
		index:   map[string]int{"": root},
	}
}

// Add records a type file given by its slash-separated path relative to the
// output root, creating the folder chain above it as needed. Adding the same
// file twice has no effect.
func (t *Tree) Add(file string) {
	dir, name := path.Split(path.Clean(file))
	i := t.ensure(strings.TrimSuffix(dir, "/"))
	f := &t.folders[i]
	if !slices.Contains(f.files, name) {
		f.files = append(f.files, name)
	}
}

func (t *Tree) ensure(dir string) int {
	if dir == "." {
		dir = ""
	}
	if i, ok := t.index[dir]; ok {
		return i
	}
	parent := t.ensure(parentDir(dir))
	i := len(t.folders)
	t.folders = append(t.folders, folder{dir: dir, name: path.Base(dir), parent: parent})
	t.folders[parent].children = append(t.folders[parent].children, i)
	t.index[dir] = i
	return i
}

func parentDir(dir string) string {
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		return dir[:i]
	}
	return ""
}

// Len returns the number of folders, root included.
func (t *Tree) Len() int { return len(t.folders) }

// Dirs returns every folder path in depth-first post-order, children
// sorted by name. The root ("") comes last.
func (t *Tree) Dirs() []string {
	out := make([]string, 0, len(t.folders))
	var visit func(i int)
	visit = func(i int) {
		for _, c := range t.sortedChildren(i) {
			visit(c)
		}
		out = append(out, t.folders[i].dir)
	}
	visit(root)
	return out
}

func (t *Tree) sortedChildren(i int) []int {
	children := slices.Clone(t.folders[i].children)
	slices.SortFunc(children, func(a, b int) int {
		return strings.Compare(t.folders[a].name, t.folders[b].name)
	})
	return children
}

// ancestry returns the namespace of every folder from the topmost
// non-root ancestor down to i itself.
func (t *Tree) ancestry(i int) []string {
	var chain []string
	for ; i > root; i = t.folders[i].parent {
		chain = append(chain, namespace.FromDir(t.folders[i].dir))
	}
	slices.Reverse(chain)
	return chain
}

// File is a rendered manifest.
type File struct {
	Path    string // slash-separated, relative to the output root
	Content []byte
}

// Manifests renders the manifest of every folder in [Tree.Dirs] order.
func (t *Tree) Manifests() []File {
	dirs := t.Dirs()
	out := make([]File, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, File{
			Path:    path.Join(dir, FileName),
			Content: t.render(t.index[dir]),
		})
	}
	return out
}

// Render returns the manifest for dir. Unknown folders yield nil.
func (t *Tree) Render(dir string) []byte {
	i, ok := t.index[dir]
	if !ok {
		return nil
	}
	return t.render(i)
}

func (t *Tree) render(i int) []byte {
	f := t.folders[i]
	up := namespace.LevelsUp(namespace.FromDir(f.dir))
	children := t.sortedChildren(i)
	files := slices.Clone(f.files)
	slices.Sort(files)

	var buf bytes.Buffer
	buf.WriteString("@startuml\n\n")

	fmt.Fprintf(&buf, "!startsub %s\n", FoldersSection)
	fmt.Fprintf(&buf, "!include %s%s\n", up, puml.ConfigFileName)
	for _, ns := range t.ancestry(i) {
		fmt.Fprintf(&buf, "!include %s%s!%s\n", up, puml.ConfigFileName, ns)
	}
	for _, c := range children {
		fmt.Fprintf(&buf, "!includesub %s/%s!%s\n", t.folders[c].name, FileName, FoldersSection)
	}
	buf.WriteString("!endsub\n\n")

	fmt.Fprintf(&buf, "!startsub %s\n", FilesSection)
	for _, c := range children {
		fmt.Fprintf(&buf, "!includesub %s/%s!%s\n", t.folders[c].name, FileName, FilesSection)
	}
	for _, name := range files {
		fmt.Fprintf(&buf, "!includesub %s!%s\n", name, puml.TypeSection)
	}
	buf.WriteString("!endsub\n\n")

	buf.WriteString("@enduml\n")
	return buf.Bytes()
}
