package emitter

import (
	"strconv"
	"strings"

	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/lexer"
)

const (
	prologue = "#include <iostream>\nusing namespace std;\n\nint main() {\n"
	epilogue = "  return 0;\n}\n"

	unsupportedExpr = "<expr unsupported>"
	unsupportedStmt = "// Unsupported statement"
	unsupportedOp   = "<op>"
)

var opsLookup map[lexer.TokenKind]string = map[lexer.TokenKind]string{
	lexer.PLUS:   "+",
	lexer.MINUS:  "-",
	lexer.EQ:     "==",
	lexer.LT:     "<",
	lexer.ASSIGN: "=",
	lexer.NEQ:    "!=",
}

// Emitter renders a program as the body of a C++ main function. It never
// fails: constructs it cannot lower are written as visible placeholders.
type Emitter struct {
	buf    strings.Builder
	indent int
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Emit(program ast.Program) string {
	e.buf.Reset()
	e.indent = 1

	e.buf.WriteString(prologue)
	for _, stmt := range program {
		e.emitForStmt(stmt)
	}
	e.buf.WriteString(epilogue)

	return e.buf.String()
}

func (e *Emitter) line(parts ...string) {
	e.buf.WriteString(strings.Repeat("  ", e.indent))
	for _, part := range parts {
		e.buf.WriteString(part)
	}
	e.buf.WriteByte('\n')
}

func (e *Emitter) emitForBody(stmts []ast.Stmt) {
	e.indent++
	for _, stmt := range stmts {
		e.emitForStmt(stmt)
	}
	e.indent--
}

func (e *Emitter) emitForStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.LetStmt:
		e.emitForLetStmt(stmt)
	case *ast.ExprStmt:
		e.emitForExprStmt(stmt)
	case *ast.IfStmt:
		e.emitForIfStmt(stmt)
	case *ast.WhileStmt:
		e.line("while (", e.emitForExpr(stmt.Cond), ") {")
		e.emitForBody(stmt.Body)
		e.line("}")
	case *ast.LoopStmt:
		e.line("while (true) {")
		e.emitForBody(stmt.Body)
		e.line("}")
	case *ast.ReturnStmt:
		if stmt.Expr == nil {
			e.line("return;")
			return
		}
		e.line("return ", e.emitForExpr(stmt.Expr), ";")
	case *ast.BreakStmt:
		e.line("break;")
	case *ast.ContinueStmt:
		e.line("continue;")
	default:
		e.line(unsupportedStmt)
	}
}

// emitForLetStmt picks the declared type from the initializer's shape only.
// Anything other than a bare numeric literal is declared auto.
func (e *Emitter) emitForLetStmt(letStmt *ast.LetStmt) {
	declType := "auto"
	switch letStmt.Value.(type) {
	case *ast.IntExpr:
		declType = "long long"
	case *ast.FloatExpr:
		declType = "double"
	}

	e.line(declType, " ", letStmt.Name, " = ", e.emitForExpr(letStmt.Value), ";")
}

func (e *Emitter) emitForExprStmt(exprStmt *ast.ExprStmt) {
	if call, ok := exprStmt.Expr.(*ast.CallExpr); ok && call.Name == "print" {
		e.line("cout << ", e.emitForExpr(call.Arg), " << endl;")
		return
	}

	e.line(e.emitForExpr(exprStmt.Expr), ";")
}

func (e *Emitter) emitForIfStmt(ifStmt *ast.IfStmt) {
	e.line("if (", e.emitForExpr(ifStmt.Cond), ") {")
	e.emitForBody(ifStmt.Then)
	if ifStmt.Else != nil {
		e.line("} else {")
		e.emitForBody(ifStmt.Else)
	}
	e.line("}")
}

func (e *Emitter) emitForExpr(expr ast.Expr) string {
	switch expr := expr.(type) {
	case *ast.IntExpr:
		return strconv.FormatInt(expr.Value, 10)
	case *ast.FloatExpr:
		return ast.FormatFloat(expr.Value)
	case *ast.StringExpr:
		return `"` + expr.Value + `"`
	case *ast.IdentExpr:
		return expr.Value
	case *ast.BinaryExpr:
		return e.emitForOperand(expr.Left) + " " + emitForOp(expr.Op) + " " + e.emitForOperand(expr.Right)
	default:
		return unsupportedExpr
	}
}

// emitForOperand keeps the parser's grouping of nested binary expressions.
func (e *Emitter) emitForOperand(expr ast.Expr) string {
	if _, ok := expr.(*ast.BinaryExpr); ok {
		return "(" + e.emitForExpr(expr) + ")"
	}
	return e.emitForExpr(expr)
}

func emitForOp(op *lexer.Token) string {
	if symbol, ok := opsLookup[op.Kind]; ok {
		return symbol
	}
	return unsupportedOp
}
