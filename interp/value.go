package interp

import (
	"strconv"
)

// Value is a runtime value: Number, String or Boolean.
type Value interface {
	is_Value()
	TypeName() string
	String() string
}

type Number float64

func (v Number) is_Value()        {}
func (v Number) TypeName() string { return "number" }
func (v Number) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

type String string

func (v String) is_Value()        {}
func (v String) TypeName() string { return "string" }
func (v String) String() string   { return string(v) }

type Boolean bool

func (v Boolean) is_Value()        {}
func (v Boolean) TypeName() string { return "boolean" }
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}

// classifyLiteral types a raw lexeme: quoted text is a String, anything that
// parses as a float is a Number, the rest falls back to String.
func classifyLiteral(raw string) Value {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return String(raw[1 : len(raw)-1])
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(n)
	}
	return String(raw)
}
