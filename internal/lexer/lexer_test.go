package lexer

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/kievzenit/rcc/internal/compiler_errors"
)

func tokenize(t *testing.T, src string) ([]Token, compiler_errors.ErrorHandler) {
	t.Helper()
	eh := compiler_errors.NewErrorHandler(nil)
	return NewLexer([]byte(src), eh).Tokenize(), eh
}

func kinds(tokens []Token) []TokenKind {
	ret := make([]TokenKind, len(tokens))
	for i, token := range tokens {
		ret[i] = token.Kind
	}
	return ret
}

func assertKinds(t *testing.T, tokens []Token, expected ...TokenKind) {
	t.Helper()
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), kinds(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func countEOF(tokens []Token) int {
	n := 0
	for _, token := range tokens {
		if token.Kind == EOF {
			n++
		}
	}
	return n
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t",
		"let x = 1;",
		"// only a comment",
		"/* unterminated",
		"\"unterminated",
		"! & | @ #",
		"3.",
	}

	for _, input := range inputs {
		tokens, _ := tokenize(t, input)
		if n := countEOF(tokens); n != 1 {
			t.Errorf("%q: expected exactly one EOF, got %d", input, n)
		}
		if tokens[len(tokens)-1].Kind != EOF {
			t.Errorf("%q: last token is %s", input, tokens[len(tokens)-1].Kind)
		}
	}
}

func TestTokenizeRandomInputTerminates(t *testing.T) {
	alphabet := []byte("abcXYZ0123456789 .;:=!<>&|+-*/\"'{}()[]\n\t@#%^")
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		buf := make([]byte, rng.Intn(40))
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}

		tokens := NewLexer(buf, compiler_errors.NewErrorHandler(nil)).Tokenize()
		if n := countEOF(tokens); n != 1 || tokens[len(tokens)-1].Kind != EOF {
			t.Fatalf("%q: expected a single trailing EOF, got %v", buf, kinds(tokens))
		}
	}
}

func TestNextAfterEOF(t *testing.T) {
	l := NewLexer([]byte("x"), compiler_errors.NewErrorHandler(nil))
	if tok := l.Next(); tok.Kind != IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Kind)
	}
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Kind != EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Kind)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []TokenKind
		values   []string
	}{
		{"integer", "42", []TokenKind{INT, EOF}, []string{"42"}},
		{"float", "3.14", []TokenKind{FLOAT, EOF}, []string{"3.14"}},
		{"trailing dot", "3.", []TokenKind{INT, DOT, EOF}, []string{"3", "."}},
		{"dot then letter", "3.x", []TokenKind{INT, DOT, IDENT, EOF}, []string{"3", ".", "x"}},
		{"second dot", "1.2.3", []TokenKind{FLOAT, DOT, INT, EOF}, []string{"1.2", ".", "3"}},
		{"leading zeros", "007", []TokenKind{INT, EOF}, []string{"007"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, eh := tokenize(t, tt.src)
			assertKinds(t, tokens, tt.expected...)
			for i, value := range tt.values {
				if tokens[i].Value != value {
					t.Errorf("token %d: expected value %q, got %q", i, value, tokens[i].Value)
				}
			}
			if eh.HasErrors() {
				t.Errorf("unexpected errors: %v", eh.Errors())
			}
		})
	}
}

func TestNumberValuesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		whole := rng.Int63n(1_000_000_000)
		frac := rng.Intn(10000)

		intSrc := strconv.FormatInt(whole, 10)
		tokens, _ := tokenize(t, intSrc)
		assertKinds(t, tokens, INT, EOF)
		if got, _ := strconv.ParseInt(tokens[0].Value, 10, 64); got != whole {
			t.Fatalf("%s: parsed %d", intSrc, got)
		}

		floatSrc := intSrc + "." + strconv.Itoa(frac)
		tokens, _ = tokenize(t, floatSrc)
		assertKinds(t, tokens, FLOAT, EOF)
		want, _ := strconv.ParseFloat(floatSrc, 64)
		if got, _ := strconv.ParseFloat(tokens[0].Value, 64); got != want {
			t.Fatalf("%s: parsed %v", floatSrc, got)
		}
	}
}

func TestIntegerOverflowIsRecoverable(t *testing.T) {
	tokens, eh := tokenize(t, "99999999999999999999 1")
	assertKinds(t, tokens, ILLEGAL, INT, EOF)
	if len(eh.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(eh.Errors()))
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	for spelling, kind := range keywords {
		tokens, _ := tokenize(t, spelling)
		assertKinds(t, tokens, kind, EOF)
		if tokens[0].Value != spelling {
			t.Errorf("%s: expected value %q, got %q", kind, spelling, tokens[0].Value)
		}
	}

	tests := []struct {
		src  string
		kind TokenKind
	}{
		{"self", SELF_LOWER},
		{"Self", SELF_UPPER},
		{"SELF", IDENT},
		{"Let", IDENT},
		{"letter", IDENT},
		{"x1", IDENT},
		{"i32", IDENT},
		{"año", IDENT},
	}
	for _, tt := range tests {
		tokens, _ := tokenize(t, tt.src)
		assertKinds(t, tokens, tt.kind, EOF)
		if tokens[0].Value != tt.src {
			t.Errorf("%q: got value %q", tt.src, tokens[0].Value)
		}
	}
}

func TestIdentifierStopsAtUnderscore(t *testing.T) {
	tokens, eh := tokenize(t, "foo_bar")
	assertKinds(t, tokens, IDENT, ILLEGAL, IDENT, EOF)
	if !eh.HasErrors() {
		t.Fatal("expected an error for '_'")
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		src      string
		expected []TokenKind
	}{
		{"->", []TokenKind{ARROW, EOF}},
		{"- >", []TokenKind{MINUS, GT, EOF}},
		{"==", []TokenKind{EQ, EOF}},
		{"=>", []TokenKind{FAT_ARROW, EOF}},
		{"= =", []TokenKind{ASSIGN, ASSIGN, EOF}},
		{"!=", []TokenKind{NEQ, EOF}},
		{"<=<", []TokenKind{LEQ, LT, EOF}},
		{">=>", []TokenKind{GEQ, GT, EOF}},
		{"&&||", []TokenKind{LAND, LOR, EOF}},
		{"+-*/", []TokenKind{PLUS, MINUS, ASTERISK, SLASH, EOF}},
		{"(){}[];:,.::", []TokenKind{LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, SEMICOLON, COLON, COMMA, DOT, COLONCOLON, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, eh := tokenize(t, tt.src)
			assertKinds(t, tokens, tt.expected...)
			if eh.HasErrors() {
				t.Errorf("unexpected errors")
			}
		})
	}
}

func TestIncompleteOperatorsAreRecoverable(t *testing.T) {
	tokens, eh := tokenize(t, "a ! b & c | d")
	assertKinds(t, tokens, IDENT, ILLEGAL, IDENT, ILLEGAL, IDENT, ILLEGAL, IDENT, EOF)
	if got := len(eh.Errors()); got != 3 {
		t.Fatalf("expected 3 errors, got %d", got)
	}
	for i, value := range []string{"!", "&", "|"} {
		if tokens[1+2*i].Value != value {
			t.Errorf("expected ILLEGAL(%s), got %s", value, tokens[1+2*i].String())
		}
	}
}

func TestUnknownCharacters(t *testing.T) {
	tokens, eh := tokenize(t, "@x#")
	assertKinds(t, tokens, ILLEGAL, IDENT, ILLEGAL, EOF)
	if tokens[0].Value != "@" || tokens[2].Value != "#" {
		t.Errorf("unexpected values %q %q", tokens[0].Value, tokens[2].Value)
	}
	if len(eh.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(eh.Errors()))
	}
}

func TestComments(t *testing.T) {
	tokens, eh := tokenize(t, "// line\nx /* block\n * still */ y /* a /* b */ c */")
	assertKinds(t, tokens, COMMENT, IDENT, COMMENT, IDENT, COMMENT, IDENT, ASTERISK, SLASH, EOF)
	if tokens[0].Value != " line" {
		t.Errorf("line comment: got %q", tokens[0].Value)
	}
	if tokens[2].Value != " block\n * still " {
		t.Errorf("block comment: got %q", tokens[2].Value)
	}
	if tokens[4].Value != " a /* b " {
		t.Errorf("nested block comment: got %q", tokens[4].Value)
	}
	if eh.HasErrors() || len(eh.Warnings()) != 0 {
		t.Errorf("unexpected diagnostics")
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	tokens, eh := tokenize(t, "/* never closed")
	assertKinds(t, tokens, COMMENT, EOF)
	if tokens[0].Value != " never closed" {
		t.Errorf("got %q", tokens[0].Value)
	}
	if len(eh.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %d", len(eh.Warnings()))
	}
}

func TestStringLiterals(t *testing.T) {
	tokens, eh := tokenize(t, `"a\nb" 'single "q"' ""`)
	assertKinds(t, tokens, STRING, STRING, STRING, EOF)
	expected := []string{`a\nb`, `single "q"`, ``}
	for i, exp := range expected {
		if tokens[i].Value != exp {
			t.Errorf("string %d: expected %q, got %q", i, exp, tokens[i].Value)
		}
	}
	if eh.HasErrors() {
		t.Errorf("unexpected errors")
	}
}

func TestUnterminatedString(t *testing.T) {
	tokens, eh := tokenize(t, `let s = "abc; let t = 1;`)
	assertKinds(t, tokens, LET, IDENT, ASSIGN, STRING, EOF)
	if tokens[3].Value != "abc; let t = 1;" {
		t.Errorf("got %q", tokens[3].Value)
	}
	if eh.HasErrors() {
		t.Errorf("unterminated string must not be an error")
	}
	if len(eh.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %d", len(eh.Warnings()))
	}
}

func TestPositions(t *testing.T) {
	tokens, _ := tokenize(t, "let x = 1;\n  while x {\n}")

	expected := []struct {
		kind         TokenKind
		line, column int
	}{
		{LET, 1, 1},
		{IDENT, 1, 5},
		{ASSIGN, 1, 7},
		{INT, 1, 9},
		{SEMICOLON, 1, 10},
		{WHILE, 2, 3},
		{IDENT, 2, 9},
		{LBRACE, 2, 11},
		{RBRACE, 3, 1},
		{EOF, 3, 2},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		tok := tokens[i]
		if tok.Kind != exp.kind || tok.Metadata.Line != exp.line || tok.Metadata.Column != exp.column {
			t.Errorf("token %d: expected %s at %d:%d, got %s at %d:%d",
				i, exp.kind, exp.line, exp.column, tok.Kind, tok.Metadata.Line, tok.Metadata.Column)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		token    Token
		expected string
	}{
		{Token{Kind: INT, Value: "5"}, "INT(5)"},
		{Token{Kind: IDENT, Value: "x"}, "IDENT(x)"},
		{Token{Kind: PLUS, Value: "+"}, "PLUS()"},
		{Token{Kind: EOF}, "EOF()"},
	}
	for _, tt := range tests {
		if got := tt.token.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestKindSymbol(t *testing.T) {
	if got := TYPE_USIZE.Symbol(); got != "usize" {
		t.Errorf("expected usize, got %q", got)
	}
	if got := LEQ.Symbol(); got != "<=" {
		t.Errorf("expected <=, got %q", got)
	}
}
