package parser

import (
	"fmt"
	"strconv"

	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/compiler_errors"
	"github.com/kievzenit/rcc/internal/lexer"
)

type UnexpectedExpectedError struct {
	Unexpected lexer.Token
	Expected   lexer.TokenKind

	Line   int
	Column int
}

func (e *UnexpectedExpectedError) GetMessage() string {
	return fmt.Sprintf("unexpected token: '%s', expected: '%s'", e.Unexpected.String(), e.Expected.String())
}

func (e *UnexpectedExpectedError) GetLine() int   { return e.Line }
func (e *UnexpectedExpectedError) GetColumn() int { return e.Column }

type UnexpectedError struct {
	Unexpected lexer.Token

	Line   int
	Column int
}

func (e *UnexpectedError) GetMessage() string {
	return fmt.Sprintf("unexpected token: '%s'", e.Unexpected.String())
}

func (e *UnexpectedError) GetLine() int   { return e.Line }
func (e *UnexpectedError) GetColumn() int { return e.Column }

type InvalidAssignmentTargetError struct {
	Target string

	Line   int
	Column int
}

func (e *InvalidAssignmentTargetError) GetMessage() string {
	return fmt.Sprintf("left side of an assignment must be an identifier, got: '%s'", e.Target)
}

func (e *InvalidAssignmentTargetError) GetLine() int   { return e.Line }
func (e *InvalidAssignmentTargetError) GetColumn() int { return e.Column }

type InvalidLiteralError struct {
	Literal string
	Err     error

	Line   int
	Column int
}

func (e *InvalidLiteralError) GetMessage() string {
	return fmt.Sprintf("invalid literal '%s': %s", e.Literal, e.Err)
}

func (e *InvalidLiteralError) GetLine() int   { return e.Line }
func (e *InvalidLiteralError) GetColumn() int { return e.Column }

// Parser is a recursive descent parser. Every parse function reports its
// failure to the error handler and returns nil; Parse and block parsing then
// resynchronize at the next statement boundary so one malformed statement
// does not hide the rest of the program.
type Parser struct {
	scanner lexer.TokenScanner
	eh      compiler_errors.ErrorHandler

	curr *lexer.Token
}

var bindingPowerLookup map[lexer.TokenKind]int = map[lexer.TokenKind]int{
	lexer.EQ:       10,
	lexer.NEQ:      10,
	lexer.LT:       20,
	lexer.LEQ:      20,
	lexer.GT:       20,
	lexer.GEQ:      20,
	lexer.PLUS:     30,
	lexer.MINUS:    30,
	lexer.ASTERISK: 40,
	lexer.SLASH:    40,
}

func NewParser(scanner lexer.TokenScanner, eh compiler_errors.ErrorHandler) *Parser {
	p := &Parser{
		scanner: scanner,
		eh:      eh,
	}
	p.read()

	return p
}

func (p *Parser) Parse() ast.Program {
	stmts := make(ast.Program, 0)
	for p.curr.Kind != lexer.EOF {
		if p.curr.Kind == lexer.RBRACE {
			p.unexpected()
			p.read()
			continue
		}

		pos := p.scanner.Pos()
		stmt := p.parseStmt()
		if stmt == nil {
			p.synchronize(pos)
			continue
		}

		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curr.Kind {
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.LOOP:
		return p.parseLoopStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		return p.parseBreakStmt()
	case lexer.CONTINUE:
		return p.parseContinueStmt()
	case lexer.LBRACE:
		return p.parseBlockStmt()
	}

	return p.parseExprStmt()
}

func (p *Parser) parseLetStmt() ast.Stmt {
	startToken := p.curr
	p.read()

	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := p.curr.Value
	p.read()

	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	p.read()

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	p.read()

	return &ast.LetStmt{
		StartToken: startToken,

		Name:  name,
		Value: value,
	}
}

// parseIfStmt accepts a bare condition; parentheses are just a primary
// expression. "else if" nests the following if statement inside Else.
func (p *Parser) parseIfStmt() ast.Stmt {
	startToken := p.curr
	p.read()

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil
	}

	ifStmt := &ast.IfStmt{
		StartToken: startToken,

		Cond: cond,
		Then: body,
	}

	if p.curr.Kind != lexer.ELSE {
		return ifStmt
	}
	p.read()

	if p.curr.Kind == lexer.IF {
		elseIf := p.parseIfStmt()
		if elseIf == nil {
			return nil
		}
		ifStmt.Else = []ast.Stmt{elseIf}
		return ifStmt
	}

	elseBody, ok := p.parseBlock()
	if !ok {
		return nil
	}
	ifStmt.Else = elseBody

	return ifStmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	startToken := p.curr
	p.read()

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil
	}

	return &ast.WhileStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
	}
}

func (p *Parser) parseLoopStmt() ast.Stmt {
	startToken := p.curr
	p.read()

	body, ok := p.parseBlock()
	if !ok {
		return nil
	}

	return &ast.LoopStmt{
		StartToken: startToken,

		Body: body,
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	startToken := p.curr
	p.read()

	if p.curr.Kind == lexer.SEMICOLON {
		p.read()
		return &ast.ReturnStmt{
			StartToken: startToken,
		}
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	p.read()

	return &ast.ReturnStmt{
		StartToken: startToken,

		Expr: expr,
	}
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	startToken := p.curr
	p.read()

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	p.read()

	return &ast.BreakStmt{
		StartToken: startToken,
	}
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	startToken := p.curr
	p.read()

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	p.read()

	return &ast.ContinueStmt{
		StartToken: startToken,
	}
}

func (p *Parser) parseBlockStmt() ast.Stmt {
	startToken := p.curr

	stmts, ok := p.parseBlock()
	if !ok {
		return nil
	}

	return &ast.BlockStmt{
		StartToken: startToken,

		Stmts: stmts,
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	p.read()

	return &ast.ExprStmt{
		Expr: expr,
	}
}

func (p *Parser) parseBlock() ([]ast.Stmt, bool) {
	if !p.expect(lexer.LBRACE) {
		return nil, false
	}
	p.read()

	stmts := make([]ast.Stmt, 0)
	for p.curr.Kind != lexer.RBRACE && p.curr.Kind != lexer.EOF {
		pos := p.scanner.Pos()
		stmt := p.parseStmt()
		if stmt == nil {
			p.synchronize(pos)
			continue
		}

		stmts = append(stmts, stmt)
	}

	if !p.expect(lexer.RBRACE) {
		return nil, false
	}
	p.read()

	return stmts, true
}

// synchronize skips the rest of a failed statement. The offending token is
// discarded, then tokens are skipped up to and including the next ';' or up
// to the next token that can start a statement or close a block. A failure
// that consumed nothing always discards at least one token.
func (p *Parser) synchronize(startPos int) {
	if p.isStmtBoundary() {
		if p.scanner.Pos() == startPos && p.curr.Kind != lexer.EOF && p.curr.Kind != lexer.RBRACE {
			p.read()
		}
		return
	}

	skipped := p.curr
	p.read()
	if skipped.Kind == lexer.SEMICOLON {
		return
	}

	for !p.isStmtBoundary() {
		if p.curr.Kind == lexer.SEMICOLON {
			p.read()
			return
		}
		p.read()
	}
}

func (p *Parser) isStmtBoundary() bool {
	switch p.curr.Kind {
	case lexer.EOF, lexer.RBRACE, lexer.LBRACE,
		lexer.LET, lexer.IF, lexer.WHILE, lexer.LOOP,
		lexer.RETURN, lexer.BREAK, lexer.CONTINUE:
		return true
	}

	return false
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

// parseAssignExpr is right associative and sits below every binary operator.
func (p *Parser) parseAssignExpr() ast.Expr {
	left := p.parseBinaryExpr(0)
	if left == nil {
		return nil
	}

	if p.curr.Kind != lexer.ASSIGN {
		return left
	}
	op := p.curr
	p.read()

	value := p.parseAssignExpr()
	if value == nil {
		return nil
	}

	if _, ok := left.(*ast.IdentExpr); !ok {
		p.eh.AddError(&InvalidAssignmentTargetError{
			Target: ast.String(left),

			Line:   op.Metadata.Line,
			Column: op.Metadata.Column,
		})
		return nil
	}

	return &ast.BinaryExpr{
		StartToken: left.FirstToken(),

		Left:  left,
		Op:    op,
		Right: value,
	}
}

// parseBinaryExpr climbs bindingPowerLookup. Operators of equal power
// associate to the left.
func (p *Parser) parseBinaryExpr(minBindingPower int) ast.Expr {
	left := p.parsePrimaryExpr()
	if left == nil {
		return nil
	}

	for {
		op := p.curr
		bindingPower, ok := bindingPowerLookup[op.Kind]
		if !ok || bindingPower < minBindingPower {
			return left
		}
		p.read()

		right := p.parseBinaryExpr(bindingPower + 1)
		if right == nil {
			return nil
		}

		left = &ast.BinaryExpr{
			StartToken: left.FirstToken(),

			Left:  left,
			Op:    op,
			Right: right,
		}
	}
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.curr.Kind {
	case lexer.INT:
		return p.parseIntegerExpr()
	case lexer.FLOAT:
		return p.parseFloatExpr()
	case lexer.STRING:
		return p.parseStringExpr()
	case lexer.IDENT:
		return p.parseIdentOrCallExpr()
	case lexer.LPAREN:
		return p.parseParenExpr()
	}

	p.unexpected()
	return nil
}

func (p *Parser) parseParenExpr() ast.Expr {
	p.read()

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}
	p.read()

	return expr
}

// parseIdentOrCallExpr parses an identifier, or a call when the identifier
// is followed by '('. Calls take exactly one argument.
func (p *Parser) parseIdentOrCallExpr() ast.Expr {
	startToken := p.curr
	name := p.curr.Value
	p.read()

	if p.curr.Kind != lexer.LPAREN {
		return &ast.IdentExpr{
			StartToken: startToken,

			Value: name,
		}
	}
	p.read()

	arg := p.parseExpr()
	if arg == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}
	p.read()

	return &ast.CallExpr{
		StartToken: startToken,

		Name: name,
		Arg:  arg,
	}
}

func (p *Parser) parseIntegerExpr() ast.Expr {
	startToken := p.curr

	value, err := strconv.ParseInt(p.curr.Value, 10, 64)
	if err != nil {
		p.invalidLiteral(err)
		return nil
	}
	p.read()

	return &ast.IntExpr{
		StartToken: startToken,

		Value: value,
	}
}

func (p *Parser) parseFloatExpr() ast.Expr {
	startToken := p.curr

	value, err := strconv.ParseFloat(p.curr.Value, 64)
	if err != nil {
		p.invalidLiteral(err)
		return nil
	}
	p.read()

	return &ast.FloatExpr{
		StartToken: startToken,

		Value: value,
	}
}

func (p *Parser) parseStringExpr() ast.Expr {
	startToken := p.curr
	p.read()

	return &ast.StringExpr{
		StartToken: startToken,

		Value: startToken.Value,
	}
}

// read advances to the next token that is not a comment.
func (p *Parser) read() *lexer.Token {
	p.curr = p.scanner.Read()
	for p.curr.Kind == lexer.COMMENT {
		p.curr = p.scanner.Read()
	}
	return p.curr
}

func (p *Parser) expect(kind lexer.TokenKind) bool {
	if p.curr.Kind == kind {
		return true
	}

	if p.curr.Kind == lexer.ILLEGAL {
		return false
	}

	p.eh.AddError(&UnexpectedExpectedError{
		Unexpected: *p.curr,
		Expected:   kind,

		Line:   p.curr.Metadata.Line,
		Column: p.curr.Metadata.Column,
	})
	return false
}

// unexpected reports the current token. ILLEGAL tokens were already reported
// by the lexer.
func (p *Parser) unexpected() {
	if p.curr.Kind == lexer.ILLEGAL {
		return
	}

	p.eh.AddError(&UnexpectedError{
		Unexpected: *p.curr,

		Line:   p.curr.Metadata.Line,
		Column: p.curr.Metadata.Column,
	})
}

func (p *Parser) invalidLiteral(err error) {
	p.eh.AddError(&InvalidLiteralError{
		Literal: p.curr.Value,
		Err:     err,

		Line:   p.curr.Metadata.Line,
		Column: p.curr.Metadata.Column,
	})
}
