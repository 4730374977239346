// Package nodelink renders a linked type graph as a single node-link diagram.
//
// # Overview
//
// The PlantUML output of package puml is split into one file per type. For
// a quick look at the whole model this package produces one Graphviz
// diagram instead: namespaces become clusters, classes and enumerations
// become nodes, and resolved associations and base types become edges.
//
// # Usage
//
// Convert a project to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels list attributes and enumeration members
//   - Namespace: only entities in this namespace or below are drawn
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering; no Graphviz installation is needed.
package nodelink
