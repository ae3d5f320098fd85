package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/kievzenit/rcc/internal/compiler_errors"
)

type LexerError struct {
	Message string

	Line   int
	Column int
}

func newUnexpectedError(unexpected string, line, column int) *LexerError {
	return &LexerError{
		Message: fmt.Sprintf("unexpected character: '%s'", unexpected),
		Line:    line,
		Column:  column,
	}
}

func newIncompleteOperatorError(prefix rune, expected rune, line, column int) *LexerError {
	return &LexerError{
		Message: fmt.Sprintf(
			"unexpected character: '%s', did you mean '%s%s'?",
			string(prefix),
			string(prefix),
			string(expected)),
		Line:   line,
		Column: column,
	}
}

func newInvalidNumberError(literal string, err error, line, column int) *LexerError {
	return &LexerError{
		Message: fmt.Sprintf("invalid numeric literal '%s': %s", literal, err),
		Line:    line,
		Column:  column,
	}
}

func newUnterminatedError(what string, line, column int) *LexerError {
	return &LexerError{
		Message: fmt.Sprintf("unterminated %s runs to end of input", what),
		Line:    line,
		Column:  column,
	}
}

func (e *LexerError) GetMessage() string { return e.Message }
func (e *LexerError) GetLine() int       { return e.Line }
func (e *LexerError) GetColumn() int     { return e.Column }

type Lexer struct {
	buf []byte
	pos int

	line, col int

	eh compiler_errors.ErrorHandler
}

type position struct {
	pos, line, col int
}

func NewLexer(buf []byte, eh compiler_errors.ErrorHandler) *Lexer {
	return &Lexer{
		buf: buf,
		pos: 0,

		line: 1,
		col:  1,

		eh: eh,
	}
}

// Tokenize drains the lexer. The returned slice always ends with exactly one
// EOF token.
func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0)

	for {
		token := l.Next()
		tokens = append(tokens, token)
		if token.Kind == EOF {
			break
		}
	}

	return tokens
}

// Next returns the next token and advances past it. Once the input is
// exhausted every call returns EOF.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	start := l.mark()
	if !l.hasChars() {
		return l.token(EOF, "", start)
	}

	ch := l.read()
	switch {
	case isDigit(ch):
		return l.processNumber()
	case isIdentifierStart(ch):
		return l.processIdentifier()
	case ch == '"' || ch == '\'':
		return l.processStringLiteral(ch)
	}

	return l.processPunctuation()
}

func (l *Lexer) skipWhitespace() {
	for l.hasChars() && l.isCurrSkippable() {
		l.advance()
	}
}

func (l *Lexer) isCurrSkippable() bool {
	switch l.read() {
	case ' ', '\t', '\n', '\r':
		return true
	}

	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func (l *Lexer) processIdentifier() Token {
	start := l.mark()
	for l.hasChars() && isIdentifierPart(l.read()) {
		l.advance()
	}

	identifier := l.text(start)
	return l.token(LookupIdent(identifier), identifier, start)
}

// processNumber scans a run of digits. A single '.' joins the literal only
// when a digit follows it, so "3." scans as INT(3) DOT.
func (l *Lexer) processNumber() Token {
	start := l.mark()

	var isFloat bool
	for l.hasChars() {
		if isDigit(l.read()) {
			l.advance()
			continue
		}

		if !isFloat && l.read() == '.' && isDigit(l.peek()) {
			isFloat = true
			l.advance()
			continue
		}

		break
	}

	literal := l.text(start)
	if isFloat {
		if _, err := strconv.ParseFloat(literal, 64); err != nil {
			l.eh.AddError(newInvalidNumberError(literal, err, start.line, start.col))
			return l.token(ILLEGAL, literal, start)
		}
		return l.token(FLOAT, literal, start)
	}

	if _, err := strconv.ParseInt(literal, 10, 64); err != nil {
		l.eh.AddError(newInvalidNumberError(literal, err, start.line, start.col))
		return l.token(ILLEGAL, literal, start)
	}
	return l.token(INT, literal, start)
}

// processStringLiteral takes everything up to the matching quote verbatim.
// Escape sequences are not interpreted.
func (l *Lexer) processStringLiteral(quote rune) Token {
	start := l.mark()
	l.advance()

	contentStart := l.pos
	for l.hasChars() && l.read() != quote {
		l.advance()
	}
	content := string(l.buf[contentStart:l.pos])

	if !l.hasChars() {
		l.eh.AddWarning(newUnterminatedError("string literal", start.line, start.col))
		return l.token(STRING, content, start)
	}

	l.advance()
	return l.token(STRING, content, start)
}

func (l *Lexer) processOneLineComment(start position) Token {
	contentStart := l.pos
	for l.hasChars() && l.read() != '\n' {
		l.advance()
	}

	return l.token(COMMENT, string(l.buf[contentStart:l.pos]), start)
}

// processMultiLineComment stops at the first "*/". Block comments do not nest.
func (l *Lexer) processMultiLineComment(start position) Token {
	contentStart := l.pos
	for l.hasChars() {
		if l.read() == '*' && l.peek() == '/' {
			content := string(l.buf[contentStart:l.pos])
			l.advance()
			l.advance()
			return l.token(COMMENT, content, start)
		}
		l.advance()
	}

	l.eh.AddWarning(newUnterminatedError("block comment", start.line, start.col))
	return l.token(COMMENT, string(l.buf[contentStart:l.pos]), start)
}

func (l *Lexer) processSlash(start position) Token {
	switch l.read() {
	case '/':
		l.advance()
		return l.processOneLineComment(start)
	case '*':
		l.advance()
		return l.processMultiLineComment(start)
	}

	return l.token(SLASH, "/", start)
}

// processTwoChar consumes second when it follows the already consumed first
// character, returning long; otherwise it returns short.
func (l *Lexer) processTwoChar(start position, second rune, long, short TokenKind) Token {
	if l.hasChars() && l.read() == second {
		l.advance()
		return l.token(long, long.Symbol(), start)
	}

	return l.token(short, short.Symbol(), start)
}

// processRequiredPair handles prefixes like '&' that are only valid as part
// of a two character operator. A lone prefix becomes an ILLEGAL token.
func (l *Lexer) processRequiredPair(start position, prefix, second rune, kind TokenKind) Token {
	if l.hasChars() && l.read() == second {
		l.advance()
		return l.token(kind, kind.Symbol(), start)
	}

	l.eh.AddError(newIncompleteOperatorError(prefix, second, start.line, start.col))
	return l.token(ILLEGAL, string(prefix), start)
}

func (l *Lexer) processEquals(start position) Token {
	if l.hasChars() {
		switch l.read() {
		case '=':
			l.advance()
			return l.token(EQ, "==", start)
		case '>':
			l.advance()
			return l.token(FAT_ARROW, "=>", start)
		}
	}

	return l.token(ASSIGN, "=", start)
}

func (l *Lexer) processPunctuation() Token {
	start := l.mark()
	ch := l.read()
	l.advance()

	switch ch {
	case '+':
		return l.token(PLUS, "+", start)
	case '*':
		return l.token(ASTERISK, "*", start)
	case '(':
		return l.token(LPAREN, "(", start)
	case ')':
		return l.token(RPAREN, ")", start)
	case '[':
		return l.token(LBRACKET, "[", start)
	case ']':
		return l.token(RBRACKET, "]", start)
	case '{':
		return l.token(LBRACE, "{", start)
	case '}':
		return l.token(RBRACE, "}", start)
	case ';':
		return l.token(SEMICOLON, ";", start)
	case ',':
		return l.token(COMMA, ",", start)
	case '.':
		return l.token(DOT, ".", start)
	case ':':
		return l.processTwoChar(start, ':', COLONCOLON, COLON)
	case '-':
		return l.processTwoChar(start, '>', ARROW, MINUS)
	case '<':
		return l.processTwoChar(start, '=', LEQ, LT)
	case '>':
		return l.processTwoChar(start, '=', GEQ, GT)
	case '=':
		return l.processEquals(start)
	case '/':
		return l.processSlash(start)
	case '!':
		return l.processRequiredPair(start, '!', '=', NEQ)
	case '&':
		return l.processRequiredPair(start, '&', '&', LAND)
	case '|':
		return l.processRequiredPair(start, '|', '|', LOR)
	}

	unexpected := string(ch)
	l.eh.AddError(newUnexpectedError(unexpected, start.line, start.col))
	return l.token(ILLEGAL, unexpected, start)
}

func (l *Lexer) token(kind TokenKind, value string, start position) Token {
	return Token{
		Kind:  kind,
		Value: value,

		Metadata: Metadata{
			Line:   start.line,
			Column: start.col,
			Length: l.pos - start.pos,
		},
	}
}

func (l *Lexer) mark() position {
	return position{pos: l.pos, line: l.line, col: l.col}
}

func (l *Lexer) text(start position) string {
	return string(l.buf[start.pos:l.pos])
}

func (l *Lexer) hasChars() bool {
	return l.pos < len(l.buf)
}

func (l *Lexer) read() rune {
	r, _ := utf8.DecodeRune(l.buf[l.pos:])
	return r
}

func (l *Lexer) peek() rune {
	if !l.hasChars() {
		return utf8.RuneError
	}

	_, size := utf8.DecodeRune(l.buf[l.pos:])
	if l.pos+size >= len(l.buf) {
		return utf8.RuneError
	}

	r, _ := utf8.DecodeRune(l.buf[l.pos+size:])
	return r
}

func (l *Lexer) advance() {
	r, size := utf8.DecodeRune(l.buf[l.pos:])
	l.pos += size

	if r == '\n' {
		l.line++
		l.col = 1
		return
	}
	l.col++
}
