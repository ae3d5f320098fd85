package ast

import "github.com/kievzenit/rcc/internal/lexer"

type LetStmt struct {
	StartToken *lexer.Token

	Name  string
	Value Expr
}

type ExprStmt struct {
	Expr Expr
}

// IfStmt has a nil Else when no else branch was written. An "else if" is
// stored as an Else holding a single nested IfStmt.
type IfStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Then []Stmt
	Else []Stmt
}

type WhileStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Body []Stmt
}

type LoopStmt struct {
	StartToken *lexer.Token

	Body []Stmt
}

// ReturnStmt with a nil Expr returns void.
type ReturnStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

type BlockStmt struct {
	StartToken *lexer.Token

	Stmts []Stmt
}

type BreakStmt struct {
	StartToken *lexer.Token
}

type ContinueStmt struct {
	StartToken *lexer.Token
}

func (l *LetStmt) AstNode()      {}
func (e *ExprStmt) AstNode()     {}
func (i *IfStmt) AstNode()       {}
func (w *WhileStmt) AstNode()    {}
func (l *LoopStmt) AstNode()     {}
func (r *ReturnStmt) AstNode()   {}
func (b *BlockStmt) AstNode()    {}
func (b *BreakStmt) AstNode()    {}
func (c *ContinueStmt) AstNode() {}

func (l *LetStmt) FirstToken() *lexer.Token      { return l.StartToken }
func (e *ExprStmt) FirstToken() *lexer.Token     { return e.Expr.FirstToken() }
func (i *IfStmt) FirstToken() *lexer.Token       { return i.StartToken }
func (w *WhileStmt) FirstToken() *lexer.Token    { return w.StartToken }
func (l *LoopStmt) FirstToken() *lexer.Token     { return l.StartToken }
func (r *ReturnStmt) FirstToken() *lexer.Token   { return r.StartToken }
func (b *BlockStmt) FirstToken() *lexer.Token    { return b.StartToken }
func (b *BreakStmt) FirstToken() *lexer.Token    { return b.StartToken }
func (c *ContinueStmt) FirstToken() *lexer.Token { return c.StartToken }

func (l *LetStmt) StmtNode()      {}
func (e *ExprStmt) StmtNode()     {}
func (i *IfStmt) StmtNode()       {}
func (w *WhileStmt) StmtNode()    {}
func (l *LoopStmt) StmtNode()     {}
func (r *ReturnStmt) StmtNode()   {}
func (b *BlockStmt) StmtNode()    {}
func (b *BreakStmt) StmtNode()    {}
func (c *ContinueStmt) StmtNode() {}
