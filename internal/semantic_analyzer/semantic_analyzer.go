package semantic_analyzer

import (
	"fmt"
	"log/slog"

	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/compiler_errors"
	"github.com/kievzenit/rcc/internal/lexer"
)

type SemanticError struct {
	message string

	line   int
	column int
}

func (se *SemanticError) GetMessage() string { return se.message }
func (se *SemanticError) GetLine() int       { return se.line }
func (se *SemanticError) GetColumn() int     { return se.column }

func newSemanticError(message string, token *lexer.Token) *SemanticError {
	err := &SemanticError{
		message: message,
	}
	if token != nil {
		err.line = token.Metadata.Line
		err.column = token.Metadata.Column
	}
	return err
}

// Result is everything one Analyze call found. Errors stays empty unless
// the analyzer runs in strict mode.
type Result struct {
	Symbols  *SymbolTable
	Warnings []compiler_errors.CompilerError
	Errors   []compiler_errors.CompilerError
}

func Messages(diagnostics []compiler_errors.CompilerError) []string {
	ret := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		ret[i] = d.GetMessage()
	}
	return ret
}

type Option func(*SemanticAnalyzer)

// WithStrict makes the use of a never bound identifier an error.
func WithStrict() Option {
	return func(sa *SemanticAnalyzer) {
		sa.strict = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(sa *SemanticAnalyzer) {
		sa.logger = logger
	}
}

// SemanticAnalyzer holds configuration only. All state of a run lives in an
// analysis value, so one analyzer can serve concurrent Analyze calls.
type SemanticAnalyzer struct {
	strict bool
	logger *slog.Logger
}

func NewSemanticAnalyzer(opts ...Option) *SemanticAnalyzer {
	sa := &SemanticAnalyzer{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(sa)
	}
	return sa
}

type analysis struct {
	*SemanticAnalyzer

	symbols  *SymbolTable
	warnings []compiler_errors.CompilerError
	errors   []compiler_errors.CompilerError
}

func (sa *SemanticAnalyzer) Analyze(program ast.Program) *Result {
	a := &analysis{
		SemanticAnalyzer: sa,

		symbols:  NewSymbolTable(),
		warnings: make([]compiler_errors.CompilerError, 0),
		errors:   make([]compiler_errors.CompilerError, 0),
	}

	a.analyzeStmts(program)

	sa.logger.Debug("semantic analysis done",
		"symbols", a.symbols.Len(),
		"warnings", len(a.warnings),
		"errors", len(a.errors),
	)

	return &Result{
		Symbols:  a.symbols,
		Warnings: a.warnings,
		Errors:   a.errors,
	}
}

func (a *analysis) analyzeStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		a.analyzeStmt(stmt)
	}
}

func (a *analysis) analyzeStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.LetStmt:
		a.analyzeLetStmt(stmt)
	case *ast.ExprStmt:
		a.inferExpr(stmt.Expr)
	case *ast.IfStmt:
		a.inferExpr(stmt.Cond)
		a.analyzeStmts(stmt.Then)
		a.analyzeStmts(stmt.Else)
	case *ast.WhileStmt:
		a.inferExpr(stmt.Cond)
		a.analyzeStmts(stmt.Body)
	case *ast.LoopStmt:
		a.analyzeStmts(stmt.Body)
	case *ast.ReturnStmt:
		if stmt.Expr != nil {
			a.inferExpr(stmt.Expr)
		}
	case *ast.BlockStmt:
		a.analyzeStmts(stmt.Stmts)
	case *ast.BreakStmt, *ast.ContinueStmt:
	default:
		panic(fmt.Sprintf("analyzeStmt(): unexpected statement %T", stmt))
	}
}

func (a *analysis) analyzeLetStmt(letStmt *ast.LetStmt) {
	t := a.inferExpr(letStmt.Value)

	line := 0
	if letStmt.StartToken != nil {
		line = letStmt.StartToken.Metadata.Line
	}
	a.symbols.Define(letStmt.Name, t, line)

	a.logger.Debug("symbol defined", "name", letStmt.Name, "type", t.String(), "line", line)
}

func (a *analysis) inferExpr(expr ast.Expr) Type {
	switch expr := expr.(type) {
	case *ast.IntExpr:
		return Int
	case *ast.FloatExpr:
		return Float
	case *ast.StringExpr:
		return String
	case *ast.IdentExpr:
		return a.inferIdentExpr(expr)
	case *ast.BinaryExpr:
		return a.inferBinaryExpr(expr)
	case *ast.CallExpr:
		a.inferExpr(expr.Arg)
		return Unknown
	default:
		panic(fmt.Sprintf("inferExpr(): unexpected expression %T", expr))
	}
}

func (a *analysis) inferIdentExpr(identExpr *ast.IdentExpr) Type {
	symbol, ok := a.symbols.Lookup(identExpr.Value)
	if ok {
		return symbol.Type
	}

	if a.strict {
		a.errors = append(a.errors, newSemanticError(
			fmt.Sprintf("use of undeclared identifier '%s'", identExpr.Value),
			identExpr.StartToken,
		))
	}
	return Unknown
}

// inferBinaryExpr yields the operand type when both sides agree and Unknown
// otherwise. Any disagreement, including one against Unknown, is a warning.
func (a *analysis) inferBinaryExpr(binaryExpr *ast.BinaryExpr) Type {
	left := a.inferExpr(binaryExpr.Left)
	right := a.inferExpr(binaryExpr.Right)
	if left == right {
		return left
	}

	line := binaryExpr.Op.Metadata.Line
	a.warnings = append(a.warnings, newSemanticError(
		fmt.Sprintf("type mismatch on line %d: '%s' (%s) %s '%s' (%s)",
			line,
			ast.String(binaryExpr.Left), left,
			binaryExpr.Op.Kind.Symbol(),
			ast.String(binaryExpr.Right), right,
		),
		binaryExpr.Op,
	))
	return Unknown
}
