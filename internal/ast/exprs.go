package ast

import "github.com/kievzenit/rcc/internal/lexer"

type IntExpr struct {
	StartToken *lexer.Token

	Value int64
}

type FloatExpr struct {
	StartToken *lexer.Token

	Value float64
}

type StringExpr struct {
	StartToken *lexer.Token

	Value string
}

type IdentExpr struct {
	StartToken *lexer.Token

	Value string
}

// BinaryExpr also represents assignment, with Op of kind ASSIGN and an
// IdentExpr on the left.
type BinaryExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    *lexer.Token
	Right Expr
}

// CallExpr calls a named function with exactly one argument.
type CallExpr struct {
	StartToken *lexer.Token

	Name string
	Arg  Expr
}

func (i *IntExpr) AstNode()    {}
func (f *FloatExpr) AstNode()  {}
func (s *StringExpr) AstNode() {}
func (i *IdentExpr) AstNode()  {}
func (b *BinaryExpr) AstNode() {}
func (c *CallExpr) AstNode()   {}

func (i *IntExpr) FirstToken() *lexer.Token    { return i.StartToken }
func (f *FloatExpr) FirstToken() *lexer.Token  { return f.StartToken }
func (s *StringExpr) FirstToken() *lexer.Token { return s.StartToken }
func (i *IdentExpr) FirstToken() *lexer.Token  { return i.StartToken }
func (b *BinaryExpr) FirstToken() *lexer.Token { return b.StartToken }
func (c *CallExpr) FirstToken() *lexer.Token   { return c.StartToken }

func (i *IntExpr) ExprNode()    {}
func (f *FloatExpr) ExprNode()  {}
func (s *StringExpr) ExprNode() {}
func (i *IdentExpr) ExprNode()  {}
func (b *BinaryExpr) ExprNode() {}
func (c *CallExpr) ExprNode()   {}
