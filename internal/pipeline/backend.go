package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/emitter"
	"github.com/kievzenit/rcc/internal/semantic_analyzer"
	"github.com/samber/lo"
)

var ErrBackendUnavailable = errors.New("backend unavailable")

// Backend turns a parsed program into target source text. Backends that
// read the analysis result set NeedsAnalysis, which forces the analyzer to
// finish before Emit starts.
type Backend struct {
	NeedsAnalysis bool
	Emit          func(program ast.Program, analysis *semantic_analyzer.Result) (string, error)
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{
		"cpp": {
			Emit: func(program ast.Program, _ *semantic_analyzer.Result) (string, error) {
				return emitter.NewEmitter().Emit(program), nil
			},
		},
	}
)

func RegisterBackend(name string, backend Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = backend
}

func lookupBackend(name string) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	backend, ok := backends[name]
	if !ok {
		return Backend{}, fmt.Errorf("target %q: %w", name, ErrBackendUnavailable)
	}
	return backend, nil
}

// Backends lists the registered target names.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	ret := lo.Keys(backends)
	slices.Sort(ret)
	return ret
}
