// Package pkg provides the libraries behind pumlgen, a generator that turns a
// type model into a tree of PlantUML class diagrams.
//
// # Overview
//
// The pkg directory is organized by stage:
//
//  1. [model] - Type graph (classes, enumerations, associations) and linker
//  2. [io] - Model file reader and exporter (YAML, JSON)
//  3. [render] - PlantUML type files, include manifests, Graphviz overview
//  4. [sink] - Output targets (directory, memory)
//  5. [pipeline] - Orchestration (read → link → render)
//
// # Architecture
//
// The typical data flow:
//
//	model.yaml
//	     ↓
//	[io] package (build an unlinked project)
//	     ↓
//	[model] package (resolve every type reference once)
//	     ↓
//	[render/puml] package (one diagram per type, in parallel)
//	     ↓
//	[render/puml/manifest] package (one include manifest per folder)
//	     ↓
//	[sink] package (directory or memory)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pumlgen/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Input:  "model.yaml",
//	    Output: "docs/uml",
//	})
//
// # Supporting Packages
//
//   - [namespace] - Dotted namespace arithmetic (prefixes, folder paths)
//   - [errors] - Coded errors for user-facing failures
//   - [observability] - Pipeline and output hooks
//   - [buildinfo] - Version information set at build time
//
// [model]: github.com/matzehuels/pumlgen/pkg/model
// [io]: github.com/matzehuels/pumlgen/pkg/io
// [render]: github.com/matzehuels/pumlgen/pkg/render
// [render/puml]: github.com/matzehuels/pumlgen/pkg/render/puml
// [render/puml/manifest]: github.com/matzehuels/pumlgen/pkg/render/puml/manifest
// [sink]: github.com/matzehuels/pumlgen/pkg/sink
// [pipeline]: github.com/matzehuels/pumlgen/pkg/pipeline
// [namespace]: github.com/matzehuels/pumlgen/pkg/namespace
// [errors]: github.com/matzehuels/pumlgen/pkg/errors
// [observability]: github.com/matzehuels/pumlgen/pkg/observability
// [buildinfo]: github.com/matzehuels/pumlgen/pkg/buildinfo
package pkg
