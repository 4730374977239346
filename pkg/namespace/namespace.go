// Package namespace derives include hierarchy information from dot-separated
// namespace strings: prefix chains, folder paths and the relative
// "../" prefixes that let a generated file reach the output root.
//
// Namespaces map one-to-one onto folders. "Shop.Orders" becomes the folder
// "Shop/Orders", and a file in it reaches the root with "../../". Paths are
// always slash-separated; they end up inside PlantUML include directives.
package namespace

import (
	"path"
	"strings"
)

// Separator joins namespace segments.
const Separator = "."

// Segments splits ns on dots. Empty and whitespace-only segments are
// dropped, so malformed input such as "A..B" behaves like "A.B".
func Segments(ns string) []string {
	var out []string
	for _, s := range strings.Split(ns, Separator) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Prefixes returns every leading prefix of ns, shortest first:
// "A.B.C" yields ["A", "A.B", "A.B.C"]. A blank namespace yields nil.
func Prefixes(ns string) []string {
	segs := Segments(ns)
	if len(segs) == 0 {
		return nil
	}
	out := make([]string, len(segs))
	for i := range segs {
		out[i] = strings.Join(segs[:i+1], Separator)
	}
	return out
}

// AllPrefixes returns the union of the prefixes of every namespace given,
// in first-seen order without duplicates.
func AllPrefixes(namespaces ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ns := range namespaces {
		for _, p := range Prefixes(ns) {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// Depth returns the number of segments in ns.
func Depth(ns string) int {
	return len(Segments(ns))
}

// LevelsUp returns "../" repeated once per segment of ns, or "" for the
// root namespace.
func LevelsUp(ns string) string {
	return strings.Repeat("../", Depth(ns))
}

// Dir returns the slash-separated folder for ns, or "" for the root.
func Dir(ns string) string {
	return path.Join(Segments(ns)...)
}

// FromDir is the inverse of [Dir].
func FromDir(dir string) string {
	var segs []string
	for _, s := range strings.Split(dir, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	return strings.Join(segs, Separator)
}

// Parent returns ns without its last segment.
func Parent(ns string) string {
	segs := Segments(ns)
	if len(segs) <= 1 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], Separator)
}

// Relative strips the top-level namespace from ns. Only a whole leading
// prefix is stripped: with top "A.B", "A.B.C" becomes "C" and "A.B" becomes
// "", while "A.BC" is returned unchanged.
func Relative(top, ns string) string {
	top = strings.TrimSpace(top)
	if top == "" {
		return ns
	}
	if ns == top {
		return ""
	}
	if rest, ok := strings.CutPrefix(ns, top+Separator); ok {
		return rest
	}
	return ns
}

// IncludePath returns the path of the type file for the entity name in ns,
// relative to the output root: "Shop/Orders/Order.puml".
func IncludePath(ns, name string) string {
	return path.Join(Dir(ns), name+".puml")
}
