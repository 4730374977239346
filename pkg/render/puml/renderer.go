package puml

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/namespace"
)

// TypeSection is the name of the sub block holding a type's own markup.
const TypeSection = "TYPE"

// maxFanIn is the exclusive upper bound on distinct referencing classes for
// an association to be drawn as an arrow.
const maxFanIn = 4

const indent = "    "

// Options controls visibility suppression. Namespaces are matched exactly,
// so listing "Shared" does not affect "Shared.Money".
type Options struct {
	// NoAssociations lists namespaces that associations are never drawn to
	// from other namespaces. Such associations render as attributes.
	NoAssociations []string `json:"no_associations,omitempty"`

	// Hide lists namespaces whose entities are omitted from the diagrams of
	// every other namespace.
	Hide []string `json:"hide,omitempty"`
}

// Renderer produces PlantUML markup for the entities of a linked project.
// It never mutates the project and is safe for concurrent use.
type Renderer struct {
	project *model.Project
	noAssoc map[string]bool
	hide    map[string]bool
}

// New creates a renderer for p. The project should already be linked;
// unlinked symbols all render as attributes.
func New(p *model.Project, opts Options) *Renderer {
	return &Renderer{
		project: p,
		noAssoc: toSet(opts.NoAssociations),
		hide:    toSet(opts.Hide),
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[strings.TrimSpace(s)] = true
	}
	return set
}

// FilePath returns the slash-separated path of obj's type file relative to
// the output root.
func FilePath(obj model.NamespacedObject) string {
	return namespace.IncludePath(obj.Namespace(), obj.Name())
}

// Render dispatches on the entity kind.
func (r *Renderer) Render(obj model.NamespacedObject) ([]byte, error) {
	switch o := obj.(type) {
	case *model.Class:
		return r.RenderClass(o), nil
	case *model.Enumeration:
		return r.RenderEnumeration(o), nil
	default:
		return nil, fmt.Errorf("render %s: unsupported entity type %T", obj.FullName(), obj)
	}
}

// visible reports whether an entity in ns may appear in from's diagram.
func (r *Renderer) visible(from model.NamespacedObject, ns string) bool {
	return !r.hide[ns] || from.Namespace() == ns
}

func (r *Renderer) associationsAllowed(from model.NamespacedObject, ns string) bool {
	return !r.noAssoc[ns] || from.Namespace() == ns
}

// DrawsAssociation reports whether a is rendered as an arrow from c rather
// than as an attribute inside c.
func (r *Renderer) DrawsAssociation(c *model.Class, a *model.Association) bool {
	target := a.Target.Target()
	if target == nil {
		return false
	}
	if n := len(r.project.GetReferencesTo(target)); n < 1 || n >= maxFanIn {
		return false
	}
	ns := target.Namespace()
	return r.associationsAllowed(c, ns) && r.visible(c, ns)
}

// IncomingReferences returns the classes pointing at obj that are visible
// from obj's namespace.
func (r *Renderer) IncomingReferences(obj model.NamespacedObject) []*model.Class {
	var out []*model.Class
	for _, ref := range r.project.GetReferencesTo(obj) {
		if r.visible(obj, ref.Namespace()) {
			out = append(out, ref)
		}
	}
	return out
}

// Includes lists what a type file pulls in.
type Includes struct {
	// Namespaces holds every namespace prefix whose configuration block is
	// included, sorted.
	Namespaces []string
	// Types holds the paths of the type files whose TYPE block is included,
	// relative to the output root, in first-seen order.
	Types []string
}

// Includes computes the include lists for obj.
func (r *Renderer) Includes(obj model.NamespacedObject) Includes {
	related := r.related(obj)

	namespaces := []string{obj.Namespace()}
	selfPath := FilePath(obj)
	var types []string
	for _, rel := range related {
		namespaces = append(namespaces, rel.Namespace())
		if p := FilePath(rel); p != selfPath && !slices.Contains(types, p) {
			types = append(types, p)
		}
	}

	prefixes := namespace.AllPrefixes(namespaces...)
	slices.Sort(prefixes)
	return Includes{Namespaces: prefixes, Types: types}
}

// related returns the visible neighbours of obj: resolved outgoing
// association targets, incoming references and the resolved base type,
// in that order.
func (r *Renderer) related(obj model.NamespacedObject) []model.NamespacedObject {
	var out []model.NamespacedObject
	c, isClass := obj.(*model.Class)
	if isClass {
		for _, a := range c.Associations() {
			if t := a.Target.Target(); t != nil && r.visible(c, t.Namespace()) {
				out = append(out, t)
			}
		}
	}
	for _, ref := range r.IncomingReferences(obj) {
		out = append(out, ref)
	}
	if isClass {
		if t := c.Base.Target(); t != nil && r.visible(c, t.Namespace()) {
			out = append(out, t)
		}
	}
	return out
}

// RenderClass returns the type file for c.
func (r *Renderer) RenderClass(c *model.Class) []byte {
	var buf bytes.Buffer
	up := namespace.LevelsUp(c.Namespace())
	inc := r.Includes(c)

	fmt.Fprintf(&buf, "@startuml %s\n\n", c.FullName())
	writeConfigIncludes(&buf, up, inc.Namespaces)
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "!startsub %s\n", TypeSection)
	buf.WriteString(classHeader(c))
	for _, a := range c.Associations() {
		if !r.DrawsAssociation(c, a) {
			fmt.Fprintf(&buf, "%s%s\n", indent, attribute(a))
		}
	}
	buf.WriteString("}\n")
	for _, a := range c.Associations() {
		if r.DrawsAssociation(c, a) {
			buf.WriteString(arrow(c, a))
		}
	}
	if drawsInheritance(c) {
		fmt.Fprintf(&buf, "%s <|-- %s\n", c.Base.Target().FullName(), c.FullName())
	}
	buf.WriteString("!endsub\n\n")

	writeTypeIncludes(&buf, up, inc.Types)
	buf.WriteString("@enduml\n")
	return buf.Bytes()
}

// RenderEnumeration returns the type file for e.
func (r *Renderer) RenderEnumeration(e *model.Enumeration) []byte {
	var buf bytes.Buffer
	up := namespace.LevelsUp(e.Namespace())
	inc := r.Includes(e)

	fmt.Fprintf(&buf, "@startuml %s\n\n", e.FullName())
	writeConfigIncludes(&buf, up, inc.Namespaces)
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "!startsub %s\n", TypeSection)
	fmt.Fprintf(&buf, "enum %s {\n", e.FullName())
	for _, v := range e.Values() {
		fmt.Fprintf(&buf, "%s%s\n", indent, v)
	}
	buf.WriteString("}\n")
	buf.WriteString("!endsub\n\n")

	writeTypeIncludes(&buf, up, inc.Types)
	buf.WriteString("@enduml\n")
	return buf.Bytes()
}

func classHeader(c *model.Class) string {
	var sb strings.Builder
	if c.Abstract {
		sb.WriteString("abstract ")
	}
	sb.WriteString("class ")
	sb.WriteString(c.FullName())
	if s := ClassStereotype(c); s != StereotypeNone {
		fmt.Fprintf(&sb, " <<%s>>", s)
	}
	sb.WriteString(" {\n")
	return sb.String()
}

func attribute(a *model.Association) string {
	typeName := a.Target.Name
	if t := a.Target.Target(); t != nil {
		typeName = t.FullName()
	}
	suffix := ""
	switch {
	case a.IsList:
		suffix = "[*]"
	case a.IsNullable:
		suffix = "?"
	}
	return fmt.Sprintf("%s: %s%s", a.Name, typeName, suffix)
}

func arrow(c *model.Class, a *model.Association) string {
	target := a.Target.Target()
	card := `"1"`
	switch {
	case a.IsList:
		card = `"0..*"`
	case a.IsNullable:
		card = `"0..1"`
	}
	label := ""
	if !labelImplied(a.Name, target.Name()) {
		label = " : " + a.Name
	}
	return fmt.Sprintf("%s --> %s %s%s\n", c.FullName(), card, target.FullName(), label)
}

// labelImplied reports whether the field name already names the target
// type, ignoring case: "customer" and "customerId" both imply "Customer".
func labelImplied(field, target string) bool {
	return len(field) >= len(target) && strings.EqualFold(field[:len(target)], target)
}

func writeConfigIncludes(buf *bytes.Buffer, up string, prefixes []string) {
	fmt.Fprintf(buf, "!include %s%s\n", up, ConfigFileName)
	for _, p := range prefixes {
		fmt.Fprintf(buf, "!include %s%s!%s\n", up, ConfigFileName, p)
	}
}

func writeTypeIncludes(buf *bytes.Buffer, up string, paths []string) {
	if len(paths) == 0 {
		return
	}
	for _, p := range paths {
		fmt.Fprintf(buf, "!includesub %s%s!%s\n", up, p, TypeSection)
	}
	buf.WriteString("\n")
}
