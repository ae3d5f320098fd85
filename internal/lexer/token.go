package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	INT
	FLOAT
	STRING
	COMMENT

	IDENT
	ILLEGAL

	ASSIGN    // =
	PLUS      // +
	MINUS     // -
	ASTERISK  // *
	SLASH     // /
	PERCENT   // %
	CARET     // ^
	NOT       // !
	LAND      // &&
	LOR       // ||
	BAND      // &
	BOR       // |
	SHL       // <<
	SHR       // >>
	EQ        // ==
	NEQ       // !=
	LT        // <
	GT        // >
	LEQ       // <=
	GEQ       // >=
	FAT_ARROW // =>
	ARROW     // ->

	LPAREN     // (
	RPAREN     // )
	LBRACE     // {
	RBRACE     // }
	LBRACKET   // [
	RBRACKET   // ]
	SEMICOLON  // ;
	COLON      // :
	COMMA      // ,
	DOT        // .
	COLONCOLON // ::

	LET
	MUT
	IF
	ELSE
	MATCH
	WHILE
	LOOP
	FN
	RETURN
	BREAK
	CONTINUE
	STRUCT
	ENUM
	IMPL
	TRAIT
	MOD
	USE
	CONST
	STATIC
	ASYNC
	AWAIT
	FOR
	IN
	PUB
	CRATE
	SUPER
	SELF_LOWER
	SELF_UPPER
	TYPE
	WHERE
	MOVE
	UNSAFE

	TYPE_BOOL
	TYPE_CHAR
	TYPE_STR
	TYPE_U8
	TYPE_U16
	TYPE_U32
	TYPE_U64
	TYPE_USIZE
	TYPE_I8
	TYPE_I16
	TYPE_I32
	TYPE_I64
	TYPE_ISIZE
	TYPE_F32
	TYPE_F64
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case COMMENT:
		return "COMMENT"
	case IDENT:
		return "IDENT"
	case ILLEGAL:
		return "ILLEGAL"
	case ASSIGN:
		return "ASSIGN"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case CARET:
		return "CARET"
	case NOT:
		return "NOT"
	case LAND:
		return "LAND"
	case LOR:
		return "LOR"
	case BAND:
		return "BAND"
	case BOR:
		return "BOR"
	case SHL:
		return "SHL"
	case SHR:
		return "SHR"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case GT:
		return "GT"
	case LEQ:
		return "LEQ"
	case GEQ:
		return "GEQ"
	case FAT_ARROW:
		return "FAT_ARROW"
	case ARROW:
		return "ARROW"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case SEMICOLON:
		return "SEMICOLON"
	case COLON:
		return "COLON"
	case COMMA:
		return "COMMA"
	case DOT:
		return "DOT"
	case COLONCOLON:
		return "COLONCOLON"
	case LET:
		return "LET"
	case MUT:
		return "MUT"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case MATCH:
		return "MATCH"
	case WHILE:
		return "WHILE"
	case LOOP:
		return "LOOP"
	case FN:
		return "FN"
	case RETURN:
		return "RETURN"
	case BREAK:
		return "BREAK"
	case CONTINUE:
		return "CONTINUE"
	case STRUCT:
		return "STRUCT"
	case ENUM:
		return "ENUM"
	case IMPL:
		return "IMPL"
	case TRAIT:
		return "TRAIT"
	case MOD:
		return "MOD"
	case USE:
		return "USE"
	case CONST:
		return "CONST"
	case STATIC:
		return "STATIC"
	case ASYNC:
		return "ASYNC"
	case AWAIT:
		return "AWAIT"
	case FOR:
		return "FOR"
	case IN:
		return "IN"
	case PUB:
		return "PUB"
	case CRATE:
		return "CRATE"
	case SUPER:
		return "SUPER"
	case SELF_LOWER:
		return "SELF_LOWER"
	case SELF_UPPER:
		return "SELF_UPPER"
	case TYPE:
		return "TYPE"
	case WHERE:
		return "WHERE"
	case MOVE:
		return "MOVE"
	case UNSAFE:
		return "UNSAFE"
	case TYPE_BOOL:
		return "TYPE_BOOL"
	case TYPE_CHAR:
		return "TYPE_CHAR"
	case TYPE_STR:
		return "TYPE_STR"
	case TYPE_U8:
		return "TYPE_U8"
	case TYPE_U16:
		return "TYPE_U16"
	case TYPE_U32:
		return "TYPE_U32"
	case TYPE_U64:
		return "TYPE_U64"
	case TYPE_USIZE:
		return "TYPE_USIZE"
	case TYPE_I8:
		return "TYPE_I8"
	case TYPE_I16:
		return "TYPE_I16"
	case TYPE_I32:
		return "TYPE_I32"
	case TYPE_I64:
		return "TYPE_I64"
	case TYPE_ISIZE:
		return "TYPE_ISIZE"
	case TYPE_F32:
		return "TYPE_F32"
	case TYPE_F64:
		return "TYPE_F64"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

// Symbol returns the source spelling of operator, separator, keyword and
// primitive type kinds, and an empty string for kinds without a fixed spelling.
func (tk TokenKind) Symbol() string {
	switch tk {
	case ASSIGN:
		return "="
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case ASTERISK:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case CARET:
		return "^"
	case NOT:
		return "!"
	case LAND:
		return "&&"
	case LOR:
		return "||"
	case BAND:
		return "&"
	case BOR:
		return "|"
	case SHL:
		return "<<"
	case SHR:
		return ">>"
	case EQ:
		return "=="
	case NEQ:
		return "!="
	case LT:
		return "<"
	case GT:
		return ">"
	case LEQ:
		return "<="
	case GEQ:
		return ">="
	case FAT_ARROW:
		return "=>"
	case ARROW:
		return "->"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case LBRACE:
		return "{"
	case RBRACE:
		return "}"
	case LBRACKET:
		return "["
	case RBRACKET:
		return "]"
	case SEMICOLON:
		return ";"
	case COLON:
		return ":"
	case COMMA:
		return ","
	case DOT:
		return "."
	case COLONCOLON:
		return "::"
	case LET:
		return "let"
	case MUT:
		return "mut"
	case IF:
		return "if"
	case ELSE:
		return "else"
	case MATCH:
		return "match"
	case WHILE:
		return "while"
	case LOOP:
		return "loop"
	case FN:
		return "fn"
	case RETURN:
		return "return"
	case BREAK:
		return "break"
	case CONTINUE:
		return "continue"
	case STRUCT:
		return "struct"
	case ENUM:
		return "enum"
	case IMPL:
		return "impl"
	case TRAIT:
		return "trait"
	case MOD:
		return "mod"
	case USE:
		return "use"
	case CONST:
		return "const"
	case STATIC:
		return "static"
	case ASYNC:
		return "async"
	case AWAIT:
		return "await"
	case FOR:
		return "for"
	case IN:
		return "in"
	case PUB:
		return "pub"
	case CRATE:
		return "crate"
	case SUPER:
		return "super"
	case SELF_LOWER:
		return "self"
	case SELF_UPPER:
		return "Self"
	case TYPE:
		return "type"
	case WHERE:
		return "where"
	case MOVE:
		return "move"
	case UNSAFE:
		return "unsafe"
	case TYPE_BOOL:
		return "bool"
	case TYPE_CHAR:
		return "char"
	case TYPE_STR:
		return "str"
	case TYPE_U8:
		return "u8"
	case TYPE_U16:
		return "u16"
	case TYPE_U32:
		return "u32"
	case TYPE_U64:
		return "u64"
	case TYPE_USIZE:
		return "usize"
	case TYPE_I8:
		return "i8"
	case TYPE_I16:
		return "i16"
	case TYPE_I32:
		return "i32"
	case TYPE_I64:
		return "i64"
	case TYPE_ISIZE:
		return "isize"
	case TYPE_F32:
		return "f32"
	case TYPE_F64:
		return "f64"
	}
	return ""
}

type Metadata struct {
	Line   int
	Column int
	Length int
}

type Token struct {
	Kind  TokenKind
	Value string

	Metadata Metadata
}

func (t *Token) hasActualValue() bool {
	switch t.Kind {
	case INT, FLOAT, STRING, COMMENT, IDENT, ILLEGAL:
		return true
	}

	return false
}

func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%s()", t.Kind)
	}

	return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
}
