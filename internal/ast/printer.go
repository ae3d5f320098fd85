package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String renders a node back into source-like text. Nested binary operands
// are parenthesized so the rendering shows how the parser grouped them.
func String(node AstNode) string {
	p := &printer{}
	switch node := node.(type) {
	case Expr:
		p.expr(node, false)
	case Stmt:
		p.stmt(node)
	default:
		panic(fmt.Sprintf("ast.String(): unexpected node %T", node))
	}
	return strings.TrimSuffix(p.buf.String(), "\n")
}

// ProgramString renders every statement of program, one per line.
func ProgramString(program Program) string {
	p := &printer{}
	for _, stmt := range program {
		p.stmt(stmt)
	}
	return p.buf.String()
}

// FormatFloat renders v so that it always reads back as a floating literal.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) block(stmts []Stmt) {
	p.indent++
	for _, stmt := range stmts {
		p.stmt(stmt)
	}
	p.indent--
}

func (p *printer) exprString(expr Expr) string {
	sub := &printer{}
	sub.expr(expr, false)
	return sub.buf.String()
}

func (p *printer) stmt(stmt Stmt) {
	switch stmt := stmt.(type) {
	case *LetStmt:
		p.line("let %s = %s;", stmt.Name, p.exprString(stmt.Value))
	case *ExprStmt:
		p.line("%s;", p.exprString(stmt.Expr))
	case *IfStmt:
		p.line("if %s {", p.exprString(stmt.Cond))
		p.block(stmt.Then)
		if stmt.Else != nil {
			p.line("} else {")
			p.block(stmt.Else)
		}
		p.line("}")
	case *WhileStmt:
		p.line("while %s {", p.exprString(stmt.Cond))
		p.block(stmt.Body)
		p.line("}")
	case *LoopStmt:
		p.line("loop {")
		p.block(stmt.Body)
		p.line("}")
	case *ReturnStmt:
		if stmt.Expr == nil {
			p.line("return;")
			return
		}
		p.line("return %s;", p.exprString(stmt.Expr))
	case *BlockStmt:
		p.line("{")
		p.block(stmt.Stmts)
		p.line("}")
	case *BreakStmt:
		p.line("break;")
	case *ContinueStmt:
		p.line("continue;")
	default:
		panic(fmt.Sprintf("ast.String(): unexpected statement %T", stmt))
	}
}

func (p *printer) expr(expr Expr, nested bool) {
	switch expr := expr.(type) {
	case *IntExpr:
		p.buf.WriteString(strconv.FormatInt(expr.Value, 10))
	case *FloatExpr:
		p.buf.WriteString(FormatFloat(expr.Value))
	case *StringExpr:
		p.buf.WriteString(`"` + expr.Value + `"`)
	case *IdentExpr:
		p.buf.WriteString(expr.Value)
	case *CallExpr:
		p.buf.WriteString(expr.Name + "(")
		p.expr(expr.Arg, false)
		p.buf.WriteString(")")
	case *BinaryExpr:
		if nested {
			p.buf.WriteString("(")
		}
		p.expr(expr.Left, true)
		p.buf.WriteString(" " + expr.Op.Kind.Symbol() + " ")
		p.expr(expr.Right, true)
		if nested {
			p.buf.WriteString(")")
		}
	default:
		panic(fmt.Sprintf("ast.String(): unexpected expression %T", expr))
	}
}
