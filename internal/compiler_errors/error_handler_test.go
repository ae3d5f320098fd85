package compiler_errors

import (
	"bytes"
	"strings"
	"testing"
)

type testError struct {
	message      string
	line, column int
}

func (e *testError) GetMessage() string { return e.message }
func (e *testError) GetLine() int       { return e.line }
func (e *testError) GetColumn() int     { return e.column }

func TestErrorHandlerCollects(t *testing.T) {
	eh := NewErrorHandler(nil)
	if eh.HasErrors() {
		t.Fatal("fresh handler reports errors")
	}

	eh.AddWarning(&testError{message: "w1", line: 1, column: 2})
	eh.AddError(&testError{message: "e1", line: 3, column: 4})
	eh.AddError(&testError{message: "e2"})

	if !eh.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := len(eh.Errors()); got != 2 {
		t.Fatalf("expected 2 errors, got %d", got)
	}
	if got := len(eh.Warnings()); got != 1 {
		t.Fatalf("expected 1 warning, got %d", got)
	}
}

func TestErrorHandlerReport(t *testing.T) {
	buf := new(bytes.Buffer)
	eh := NewErrorHandler(buf)
	eh.AddWarning(&testError{message: "mismatch", line: 2, column: 7})
	eh.AddError(&testError{message: "unexpected token"})

	eh.Report()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"WARNING: 2:7: mismatch",
		"ERROR: unexpected token",
		"1 warning, 1 error",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expected), len(lines), buf.String())
	}
	for i, exp := range expected {
		if lines[i] != exp {
			t.Errorf("line %d: expected %q, got %q", i, exp, lines[i])
		}
	}
}
