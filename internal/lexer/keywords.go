package lexer

// keywords maps reserved spellings to their token kinds. Lookup is case
// sensitive, so "self" and "Self" are distinct words.
var keywords = map[string]TokenKind{
	"let":      LET,
	"mut":      MUT,
	"if":       IF,
	"else":     ELSE,
	"match":    MATCH,
	"while":    WHILE,
	"loop":     LOOP,
	"fn":       FN,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
	"struct":   STRUCT,
	"enum":     ENUM,
	"impl":     IMPL,
	"trait":    TRAIT,
	"mod":      MOD,
	"use":      USE,
	"const":    CONST,
	"static":   STATIC,
	"async":    ASYNC,
	"await":    AWAIT,
	"for":      FOR,
	"in":       IN,
	"pub":      PUB,
	"crate":    CRATE,
	"super":    SUPER,
	"self":     SELF_LOWER,
	"Self":     SELF_UPPER,
	"type":     TYPE,
	"where":    WHERE,
	"move":     MOVE,
	"unsafe":   UNSAFE,
}

func LookupIdent(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}
