//go:build llvm

package pipeline

import (
	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/llvm_emitter"
	"github.com/kievzenit/rcc/internal/semantic_analyzer"
)

func init() {
	RegisterBackend("llvm", Backend{
		NeedsAnalysis: true,
		Emit: func(program ast.Program, analysis *semantic_analyzer.Result) (string, error) {
			return llvm_emitter.NewEmitter(analysis).Emit(program)
		},
	})
}
