package lexer

type TokenScanner interface {
	Read() *Token
	Pos() int
}

// SimpleTokenScanner walks a token slice produced by Tokenize. Reading past
// the end keeps returning the trailing EOF token.
type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

var eofToken = Token{Kind: EOF}

func NewTokenScanner(tokens []Token) TokenScanner {
	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Read() *Token {
	if s.pos >= len(s.tokens) {
		if len(s.tokens) == 0 {
			eof := eofToken
			return &eof
		}
		return &s.tokens[len(s.tokens)-1]
	}

	token := &s.tokens[s.pos]
	s.pos++

	return token
}

func (s *SimpleTokenScanner) Pos() int {
	return s.pos
}
