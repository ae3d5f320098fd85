package semantic_analyzer

import (
	"reflect"
	"testing"

	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/compiler_errors"
	"github.com/kievzenit/rcc/internal/lexer"
	"github.com/kievzenit/rcc/internal/parser"
)

func parse(t *testing.T, src string) ast.Program {
	t.Helper()
	eh := compiler_errors.NewErrorHandler(nil)
	tokens := lexer.NewLexer([]byte(src), eh).Tokenize()
	program := parser.NewParser(lexer.NewTokenScanner(tokens), eh).Parse()
	if eh.HasErrors() {
		t.Fatalf("parse errors in %q: %d", src, len(eh.Errors()))
	}
	return program
}

func TestAnalyzeLetInfersType(t *testing.T) {
	tests := []struct {
		src      string
		name     string
		expected Type
	}{
		{"let x = 1 + 2;", "x", Int},
		{"let x = 1.5 * 2.0;", "x", Float},
		{`let x = "a";`, "x", String},
		{"let x = 1; let y = x;", "y", Int},
		{"let x = print(1);", "x", Unknown},
		{"let x = 1 + 2.0;", "x", Unknown},
		{"let x = y;", "x", Unknown},
		{"let x = 1; let x = 2.5;", "x", Float},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			result := NewSemanticAnalyzer().Analyze(parse(t, tt.src))
			symbol, ok := result.Symbols.Lookup(tt.name)
			if !ok {
				t.Fatalf("symbol %s not recorded", tt.name)
			}
			if symbol.Type != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, symbol.Type)
			}
		})
	}
}

func TestAnalyzeRecordsDeclarationLine(t *testing.T) {
	result := NewSemanticAnalyzer().Analyze(parse(t, "let a = 1;\n\nlet b = 2;"))

	expected := []Symbol{
		{Name: "a", Type: Int, Line: 1},
		{Name: "b", Type: Int, Line: 3},
	}
	if got := result.Symbols.Symbols(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestAnalyzeUnknownOperandWarns(t *testing.T) {
	result := NewSemanticAnalyzer().Analyze(parse(t, "x + 1;"))

	if result.Symbols.Len() != 0 {
		t.Errorf("expression statement recorded %d symbols", result.Symbols.Len())
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", Messages(result.Errors))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", Messages(result.Warnings))
	}

	warn := result.Warnings[0]
	expected := "type mismatch on line 1: 'x' (Unknown) + '1' (Int)"
	if warn.GetMessage() != expected {
		t.Errorf("expected %q, got %q", expected, warn.GetMessage())
	}
	if warn.GetLine() != 1 || warn.GetColumn() != 3 {
		t.Errorf("expected warning at 1:3, got %d:%d", warn.GetLine(), warn.GetColumn())
	}
}

func TestAnalyzeWarnings(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		warnings int
	}{
		{"same types", "let a = 1; a + 2;", 0},
		{"both unknown", "x + y;", 0},
		{"int and float", "let a = 1; let b = 2.0; a + b;", 1},
		{"nested mismatch", "1 + 2.0 + 3;", 2},
		{"inside if branches", "if 1 == 1.0 { 1 + \"s\"; } else { 2 < 2.5; }", 3},
		{"inside while", "while 1 { 1 + 1.0; }", 1},
		{"inside loop", "loop { 1 * 1.0; break; }", 1},
		{"inside return", "return 1 - 1.0;", 1},
		{"inside block", "{ 1 / 1.0; }", 1},
		{"call argument", "print(1 + 1.0);", 1},
		{"call result", "print(1) + 1;", 1},
		{"assignment", "let a = 1; a = 2.5;", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSemanticAnalyzer().Analyze(parse(t, tt.src))
			if len(result.Warnings) != tt.warnings {
				t.Errorf("expected %d warnings, got %v", tt.warnings, Messages(result.Warnings))
			}
			if len(result.Errors) != 0 {
				t.Errorf("expected no errors, got %v", Messages(result.Errors))
			}
		})
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	program := parse(t, "let a = 1; let b = a + 2.0; if b < 1 { let c = \"s\"; } z;")
	sa := NewSemanticAnalyzer()

	first := sa.Analyze(program)
	second := sa.Analyze(program)

	if !reflect.DeepEqual(first.Symbols.Symbols(), second.Symbols.Symbols()) {
		t.Errorf("symbol tables differ:\n%s\n%s", first.Symbols, second.Symbols)
	}
	if !reflect.DeepEqual(Messages(first.Warnings), Messages(second.Warnings)) {
		t.Errorf("warnings differ: %v vs %v", Messages(first.Warnings), Messages(second.Warnings))
	}
	if first.Symbols == second.Symbols {
		t.Error("runs share a symbol table")
	}
}

func TestAnalyzeStrict(t *testing.T) {
	program := parse(t, "let a = 1; a + b;")

	lenient := NewSemanticAnalyzer().Analyze(program)
	if len(lenient.Errors) != 0 {
		t.Errorf("expected no errors by default, got %v", Messages(lenient.Errors))
	}

	strict := NewSemanticAnalyzer(WithStrict()).Analyze(program)
	if len(strict.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", Messages(strict.Errors))
	}
	if got := strict.Errors[0].GetMessage(); got != "use of undeclared identifier 'b'" {
		t.Errorf("unexpected message %q", got)
	}
	if strict.Errors[0].GetLine() != 1 || strict.Errors[0].GetColumn() != 16 {
		t.Errorf("unexpected position %d:%d", strict.Errors[0].GetLine(), strict.Errors[0].GetColumn())
	}
}

func TestSymbolTableString(t *testing.T) {
	st := NewSymbolTable()
	st.Define("b", Float, 2)
	st.Define("a", Int, 1)

	expected := "a: Int (line 1)\nb: Float (line 2)\n"
	if got := st.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
