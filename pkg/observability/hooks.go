// Package observability provides hooks for metrics, tracing, and logging.
//
// Generation runs are usually short, but large code bases produce thousands
// of files and CI jobs like to know where the time went. Consumers register
// hooks at startup to receive events about the pipeline stages and the files
// written, without the library depending on any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetOutputHooks(&myOutputHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnReadStart(ctx, input)
//	// ... read the model ...
//	observability.Pipeline().OnReadComplete(ctx, input, entities, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the generation pipeline.
type PipelineHooks interface {
	// Read events
	OnReadStart(ctx context.Context, input string)
	OnReadComplete(ctx context.Context, input string, entities int, duration time.Duration, err error)

	// Link events
	OnLinkComplete(ctx context.Context, resolved, unresolved int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, files int)
	OnRenderComplete(ctx context.Context, files int, duration time.Duration, err error)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events from output sinks.
type OutputHooks interface {
	// OnPrepare records the output location being readied.
	OnPrepare(ctx context.Context, location string, cleared bool)

	// OnFileWritten records a generated file.
	OnFileWritten(ctx context.Context, path string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadStart(context.Context, string) {}
func (NoopPipelineHooks) OnReadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLinkComplete(context.Context, int, int, time.Duration)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, int, time.Duration, error) {}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnPrepare(context.Context, string, bool)    {}
func (NoopOutputHooks) OnFileWritten(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	outputHooks   OutputHooks   = NoopOutputHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetOutputHooks registers custom output hooks.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	outputHooks = NoopOutputHooks{}
}
