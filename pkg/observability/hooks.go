// Package observability provides hooks for metrics, progress reporting and
// logging.
//
// Generation code calls the registered hooks at well-defined points; the
// defaults do nothing. Consumers register their own implementations at
// startup, which keeps the core free of any particular metrics backend and
// lets the CLI drive its progress display from the same events.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGenerationHooks(&progress{})
//	    observability.SetOutputHooks(&metrics{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generation().OnSplitStart(ctx, "train", 100, 1)
//	// ... generate diagrams ...
//	observability.Generation().OnSplitComplete(ctx, "train", pairs, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from the dataset generation runner.
type GenerationHooks interface {
	// Split events
	OnSplitStart(ctx context.Context, split string, diagrams int, seed int64)
	OnSplitComplete(ctx context.Context, split string, pairs int, duration time.Duration, err error)

	// OnDiagramComplete fires once per diagram with the number of tile pairs
	// it produced.
	OnDiagramComplete(ctx context.Context, split string, index, pairs int, duration time.Duration, err error)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events from dataset persistence.
type OutputHooks interface {
	// OnPairWritten records one image/label pair written to disk.
	OnPairWritten(ctx context.Context, split string, index int, bytes int64, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnSplitStart(context.Context, string, int, int64)                   {}
func (NoopGenerationHooks) OnSplitComplete(context.Context, string, int, time.Duration, error) {}
func (NoopGenerationHooks) OnDiagramComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnPairWritten(context.Context, string, int, int64, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	outputHooks     OutputHooks     = NoopOutputHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup before any generation runs.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
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

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
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
	generationHooks = NoopGenerationHooks{}
	outputHooks = NoopOutputHooks{}
}
