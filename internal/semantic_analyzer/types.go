package semantic_analyzer

import "fmt"

// Type is the inferred type of an expression. The language has no type
// annotations, so every type comes from a literal somewhere upstream.
type Type int

const (
	Unknown Type = iota
	Int
	Float
	String
)

func (t Type) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	default:
		panic(fmt.Sprintf("Type.String(): received illegal type: %d", t))
	}
}
