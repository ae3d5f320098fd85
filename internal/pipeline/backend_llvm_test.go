//go:build llvm

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kievzenit/rcc/internal/compiler_errors"
	"github.com/kievzenit/rcc/internal/config"
	"github.com/kievzenit/rcc/internal/llvm_emitter"
)

func TestCompileLLVM(t *testing.T) {
	cfg := config.Default()
	cfg.Target = "llvm"
	cfg.Concurrent = true

	result, err := Compile(context.Background(), []byte(example), cfg, discard, compiler_errors.NewErrorHandler(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Output, "define i32 @main()") {
		t.Fatalf("unexpected output:\n%s", result.Output)
	}
}

func TestCompileLLVMUnsupported(t *testing.T) {
	cfg := config.Default()
	cfg.Target = "llvm"

	_, err := Compile(context.Background(), []byte("foo(1);"), cfg, discard, compiler_errors.NewErrorHandler(nil))
	var unsupportedErr *llvm_emitter.UnsupportedError
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("got %v", err)
	}
}
