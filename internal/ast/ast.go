package ast

import "github.com/kievzenit/rcc/internal/lexer"

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}

// Program is the ordered list of top level statements of one source text.
type Program []Stmt
