// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about planarity checks, link commits, optimizer runs, and
// generation passes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (Prometheus, OpenTelemetry, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetConstraintHooks(&myConstraintHooks{})
//	    observability.SetGenerationHooks(&myGenerationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Constraints().OnLinkCommitted(from, to)
//	observability.Generation().OnSelect(connector, accepted)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Constraint Hooks
// =============================================================================

// ConstraintHooks receives events from the planarity constraint store.
type ConstraintHooks interface {
	// OnPlanarityCheck records a planarity query and its verdict.
	OnPlanarityCheck(planar bool)

	// OnLinkCommitted records a successfully committed link.
	OnLinkCommitted(from, to string)

	// OnLinkRejected records a link rejected for violating planarity.
	OnLinkRejected(from, to string)

	// OnOptimize records an optimizer run: crossings before and after,
	// sweep count, and elapsed time.
	OnOptimize(before, after, sweeps int, duration time.Duration)
}

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from generation passes.
type GenerationHooks interface {
	// OnSelect records a candidate selection for a connector type and
	// whether the candidate was accepted.
	OnSelect(connector string, accepted bool)

	// OnMakeLink records a link creation attempt. nonPlanar is true when
	// the link was created in lenient mode despite a crossing.
	OnMakeLink(nonPlanar bool)

	// OnGenerateComplete records a finished generation pass.
	OnGenerateComplete(points, links, crossings int, duration time.Duration)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(method, path string)

	// OnResponse records an HTTP response.
	OnResponse(method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConstraintHooks is a no-op implementation of ConstraintHooks.
type NoopConstraintHooks struct{}

func (NoopConstraintHooks) OnPlanarityCheck(bool)                   {}
func (NoopConstraintHooks) OnLinkCommitted(string, string)          {}
func (NoopConstraintHooks) OnLinkRejected(string, string)           {}
func (NoopConstraintHooks) OnOptimize(int, int, int, time.Duration) {}

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnSelect(string, bool)                           {}
func (NoopGenerationHooks) OnMakeLink(bool)                                 {}
func (NoopGenerationHooks) OnGenerateComplete(int, int, int, time.Duration) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(string, string)                      {}
func (NoopHTTPHooks) OnResponse(string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	constraintHooks ConstraintHooks = NoopConstraintHooks{}
	generationHooks GenerationHooks = NoopGenerationHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetConstraintHooks registers custom constraint hooks.
// This should be called once at application startup.
func SetConstraintHooks(h ConstraintHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		constraintHooks = h
	}
}

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Constraints returns the registered constraint hooks.
func Constraints() ConstraintHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return constraintHooks
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	constraintHooks = NoopConstraintHooks{}
	generationHooks = NoopGenerationHooks{}
	httpHooks = NoopHTTPHooks{}
}
