// Package pipeline provides the generation pipeline for pumlgen.
//
// This package implements the complete read → link → render pipeline shared
// by the CLI commands. Centralizing it keeps "generate", dry runs and watch
// mode behaving identically.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Read: decode the model file into an unlinked [model.Project]
//  2. Link: resolve every type reference once
//  3. Render: write one type file per class and enumeration, in parallel
//  4. Assemble: extend the namespace configuration file and write the folder
//     manifests
//
// Output is prepared (created, or cleared on request) before any file is
// written, and manifests are written only after every type file is known.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:  "model.yaml",
//	    Output: "docs/uml",
//	    Clear:  true,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.TypeFiles, "diagrams")
//
// Run individual stages with an existing project:
//
//	p, err := runner.Read(ctx, opts)
//	result, err := runner.Generate(ctx, p, sink.NewMemory(), opts)
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pumlgen/pkg/errors"
	pkgio "github.com/matzehuels/pumlgen/pkg/io"
	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/render/puml"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutput is the output directory used when none is given.
	DefaultOutput = "uml"

	// MaxWorkers caps the number of concurrent type-file writers.
	MaxWorkers = 256
)

// DefaultWorkers returns the default number of concurrent writers.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a generation run.
// This struct supports JSON serialization so runs can be described in files.
type Options struct {
	// Read options
	Input             string   `json:"input"`
	TopLevelNamespace string   `json:"top_level_namespace,omitempty"`
	Excludes          []string `json:"excludes,omitempty"`

	// Render options
	NoAssociations []string `json:"no_associations,omitempty"` // namespaces to draw no associations to
	Hide           []string `json:"hide,omitempty"`            // namespaces to hide in other namespaces

	// Output options
	Output  string `json:"output,omitempty"`
	Clear   bool   `json:"clear,omitempty"`
	DryRun  bool   `json:"dry_run,omitempty"`
	Workers int    `json:"workers,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Project is the linked project the diagrams were rendered from.
	Project *model.Project

	// Link summarizes symbol resolution.
	Link model.LinkResult

	// Files lists every path written, relative to the output root, sorted.
	Files []string

	// ConfigUpdated reports whether the namespace configuration file was
	// created or extended.
	ConfigUpdated bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Classes      int
	Enumerations int
	TypeFiles    int
	Manifests    int
	ReadTime     time.Duration
	LinkTime     time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRead(); err != nil {
		return err
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRead checks the fields the read stage needs.
func (o *Options) ValidateForRead() error {
	if err := errors.ValidatePath(o.Input); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "input model")
	}
	if err := errors.ValidateNamespace(o.TopLevelNamespace); err != nil {
		return err
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForGenerate checks render and output fields and applies their
// defaults.
func (o *Options) ValidateForGenerate() error {
	if err := errors.ValidateNamespaces(o.NoAssociations); err != nil {
		return err
	}
	if err := errors.ValidateNamespaces(o.Hide); err != nil {
		return err
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if !o.DryRun {
		if err := errors.ValidatePath(o.Output); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "output directory")
		}
	}
	switch {
	case o.Workers < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", o.Workers)
	case o.Workers == 0:
		o.Workers = DefaultWorkers()
	case o.Workers > MaxWorkers:
		o.Workers = MaxWorkers
	}
	o.setLoggerDefault()
	return nil
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ReadOptions returns the reader configuration.
func (o Options) ReadOptions() pkgio.ReadOptions {
	return pkgio.ReadOptions{
		TopLevelNamespace: o.TopLevelNamespace,
		Excludes:          o.Excludes,
	}
}

// RenderOptions returns the renderer configuration.
func (o Options) RenderOptions() puml.Options {
	return puml.Options{
		NoAssociations: o.NoAssociations,
		Hide:           o.Hide,
	}
}
