// Package render groups the output renderers for a linked type model.
//
// # Overview
//
// Rendering happens after linking. Two renderers are provided:
//
//   - PlantUML class diagrams, one file per type (in [puml] subpackage)
//   - Whole-model node-link diagrams (in [nodelink] subpackage)
//
// # PlantUML
//
// The [puml] subpackage produces the per-type diagram files, the shared
// namespace configuration file and, through [puml/manifest], the folder
// include manifests that tie a generated tree together.
//
//	r := puml.New(p, puml.Options{Hide: []string{"Shared"}})
//	out, err := r.Render(obj)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the whole project as a Graphviz
// digraph with one cluster per namespace, which is convenient for a
// quick overview of a model before generating the full tree.
//
//	dot := nodelink.ToDOT(p, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [puml]: github.com/matzehuels/pumlgen/pkg/render/puml
// [puml/manifest]: github.com/matzehuels/pumlgen/pkg/render/puml/manifest
// [nodelink]: github.com/matzehuels/pumlgen/pkg/render/nodelink
package render
