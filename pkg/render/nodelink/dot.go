package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/render/puml"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists attributes and enumeration members in node labels.
	// When false, only the type name is shown.
	Detailed bool

	// Namespace restricts the diagram to entities in this namespace and
	// the namespaces below it. Empty means everything.
	Namespace string
}

func (o Options) includes(obj model.NamespacedObject) bool {
	if o.Namespace == "" {
		return true
	}
	ns := obj.Namespace()
	return ns == o.Namespace || strings.HasPrefix(ns, o.Namespace+".")
}

// ToDOT converts a linked project to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Association edges are labeled with the field name; list associations get
// a "*" head label. Inheritance edges point at the base type with a hollow
// arrowhead. Edges to entities outside the selected namespace are dropped.
func ToDOT(p *model.Project, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	groups := make(map[string][]model.NamespacedObject)
	var order []string
	drawn := make(map[model.NamespacedObject]bool)
	for _, obj := range p.Objects() {
		if !opts.includes(obj) {
			continue
		}
		ns := obj.Namespace()
		if _, ok := groups[ns]; !ok {
			order = append(order, ns)
		}
		groups[ns] = append(groups[ns], obj)
		drawn[obj] = true
	}
	slices.Sort(order)

	for i, ns := range order {
		indent := "  "
		if ns != "" {
			fmt.Fprintf(&buf, "  subgraph \"cluster_%d\" {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", ns)
			buf.WriteString("    style=\"rounded,dashed\";\n")
			indent = "    "
		}
		for _, obj := range groups[ns] {
			fmt.Fprintf(&buf, "%s%q [%s];\n", indent, obj.FullName(), strings.Join(fmtAttrs(obj, opts.Detailed), ", "))
		}
		if ns != "" {
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("\n")
	for _, c := range p.Classes() {
		if !drawn[c] {
			continue
		}
		for _, a := range c.Associations() {
			t := a.Target.Target()
			if t == nil || !drawn[t] {
				continue
			}
			attrs := []string{fmt.Sprintf("label=%q", a.Name)}
			if a.IsList {
				attrs = append(attrs, "headlabel=\"*\"")
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.FullName(), t.FullName(), strings.Join(attrs, ", "))
		}
		if t := c.Base.Target(); t != nil && drawn[t] {
			fmt.Fprintf(&buf, "  %q -> %q [arrowhead=empty, style=dashed];\n", c.FullName(), t.FullName())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(obj model.NamespacedObject, detailed bool) string {
	var lines []string
	switch o := obj.(type) {
	case *model.Class:
		if s := puml.ClassStereotype(o); s != puml.StereotypeNone {
			lines = append(lines, "«"+s.String()+"»")
		}
		lines = append(lines, o.Name())
		if detailed {
			for _, a := range o.Associations() {
				lines = append(lines, a.Name+": "+a.Target.Name)
			}
		}
	case *model.Enumeration:
		lines = append(lines, "«enum»", o.Name())
		if detailed {
			lines = append(lines, o.Values()...)
		}
	default:
		lines = append(lines, obj.Name())
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(obj model.NamespacedObject, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(obj, detailed))}
	switch o := obj.(type) {
	case *model.Enumeration:
		attrs = append(attrs, "fillcolor=lightyellow")
	case *model.Class:
		if o.Abstract {
			attrs = append(attrs, "fontname=\"Helvetica-Oblique\"")
		}
		if o.Record {
			attrs = append(attrs, "fillcolor=honeydew")
		}
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
