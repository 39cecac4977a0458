// Package detect defines the edge-detection boundary of the pipeline.
//
// The pipeline never detects edges itself; it consumes an EdgeMap from
// whichever Engine produced it. Engines register themselves from the init
// functions of their packages, so selecting one is an import away:
//
//	import _ "github.com/linework/fillable/detect/sobel"
//
//	eng := detect.Default()
//	em, err := eng.ExtractLines(img, detect.Settings{})
package detect

import (
	"errors"
	"image"
	"sync"

	"github.com/linework/fillable"
)

// ErrNoEngine is returned when no engine is registered under a requested
// name.
var ErrNoEngine = errors.New("detect: no engine available")

// EngineSobel is the name of the built-in CPU Sobel engine.
const EngineSobel = "sobel"

// Settings tunes one engine run.
type Settings struct {
	// BlurRadius smooths the input before detection, suppressing texture
	// noise at the cost of fine detail. Zero disables smoothing.
	BlurRadius int

	// Threshold overrides the engine's suggested binarization threshold
	// when set above zero, in (0, 1].
	Threshold float64
}

// Engine turns a photo or drawing into an EdgeMap.
//
// Engines must be registered via Register and are selected via Get or
// Default.
type Engine interface {
	// Name returns the engine identifier (e.g. "sobel").
	Name() string

	// ExtractLines detects edges in img and returns an edge map with the
	// engine's threshold and density hints filled in.
	ExtractLines(img image.Image, s Settings) (*fillable.EdgeMap, error)
}

// EngineFactory creates a new engine instance.
type EngineFactory func() Engine

// registry holds registered engines.
var (
	registryMu sync.RWMutex
	engines    = make(map[string]EngineFactory)
	// Priority order for engine selection (first available wins). ML
	// engines registered by embedding apps outrank the portable Sobel
	// fallback when present.
	enginePriority = []string{"coreml", "onnx", EngineSobel}
)

// Register registers an engine factory with the given name.
// This is typically called from init() functions in engine packages.
// If an engine with the same name is already registered, it will be
// replaced.
func Register(name string, factory EngineFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	engines[name] = factory
}

// Unregister removes an engine from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(engines, name)
}

// Available returns a list of registered engine names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if an engine with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := engines[name]
	return ok
}

// Get returns an engine instance by name.
// Returns nil if the engine is not registered.
func Get(name string) Engine {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := engines[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available engine based on priority.
// Returns nil if no engines are registered.
func Default() Engine {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range enginePriority {
		if factory, ok := engines[name]; ok {
			if e := factory(); e != nil {
				return e
			}
		}
	}

	// Fallback: return first available
	for _, factory := range engines {
		if e := factory(); e != nil {
			return e
		}
	}

	return nil
}

// New returns the engine registered under name, or the default engine when
// name is empty.
func New(name string) (Engine, error) {
	if name == "" {
		if e := Default(); e != nil {
			return e, nil
		}
		return nil, ErrNoEngine
	}
	if e := Get(name); e != nil {
		return e, nil
	}
	return nil, ErrNoEngine
}
