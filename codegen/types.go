package codegen

import "github.com/llir/llvm/ir/types"

// kind is the static type of a lowered expression.
type kind int

const (
	kindNumber kind = iota
	kindString
	kindBoolean
)

func (k kind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindBoolean:
		return "boolean"
	}
	return "unknown"
}

var (
	Number  = types.Double
	String  = types.NewPointer(types.I8)
	Boolean = types.I1
)

func (k kind) llvmType() types.Type {
	switch k {
	case kindString:
		return String
	case kindBoolean:
		return Boolean
	}
	return Number
}
