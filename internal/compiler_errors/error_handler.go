package compiler_errors

import (
	"fmt"
	"io"
	"sync"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	default:
		panic(fmt.Sprintf("Severity.String(): received illegal severity: %d", s))
	}
}

type CompilerError interface {
	GetMessage() string
	GetLine() int
	GetColumn() int
}

type ErrorHandler interface {
	AddError(err CompilerError)
	AddWarning(warn CompilerError)

	Errors() []CompilerError
	Warnings() []CompilerError
	HasErrors() bool

	Report()
}

type CompilerErrorHandler struct {
	mu       sync.Mutex
	errors   []CompilerError
	warnings []CompilerError
	writer   io.Writer
}

func NewErrorHandler(outputWriter io.Writer) ErrorHandler {
	return &CompilerErrorHandler{
		errors:   make([]CompilerError, 0),
		warnings: make([]CompilerError, 0),
		writer:   outputWriter,
	}
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	eh.errors = append(eh.errors, err)
}

func (eh *CompilerErrorHandler) AddWarning(warn CompilerError) {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	eh.warnings = append(eh.warnings, warn)
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	return append([]CompilerError(nil), eh.errors...)
}

func (eh *CompilerErrorHandler) Warnings() []CompilerError {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	return append([]CompilerError(nil), eh.warnings...)
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	return len(eh.errors) != 0
}

// Report writes every collected diagnostic, warnings first, followed by a
// one line summary. Unlike a fatal handler it leaves the process running so
// the caller can still emit whatever output the pipeline produced.
func (eh *CompilerErrorHandler) Report() {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	if eh.writer == nil {
		return
	}

	for _, warn := range eh.warnings {
		fmt.Fprintln(eh.writer, Format(SeverityWarning, warn))
	}
	for _, err := range eh.errors {
		fmt.Fprintln(eh.writer, Format(SeverityError, err))
	}

	fmt.Fprintf(eh.writer, "%d %s, %d %s\n",
		len(eh.warnings), plural(len(eh.warnings), "warning", "warnings"),
		len(eh.errors), plural(len(eh.errors), "error", "errors"))
}

func Format(severity Severity, err CompilerError) string {
	if err.GetLine() == 0 {
		return fmt.Sprintf("%s: %s", severity, err.GetMessage())
	}
	return fmt.Sprintf("%s: %d:%d: %s", severity, err.GetLine(), err.GetColumn(), err.GetMessage())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
