// Package eval implements the runtime value model, the lexical variable
// scope stack, and static expression evaluation for the conversion engine.
package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value produced by expression evaluation: a number,
// boolean, string, vector, or null.
type Value interface {
	String() string
	value() // marker restricting implementations to this package
}

// Number is a numeric value. OpenSCAD has a single numeric type.
type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
func (Number) value() {}

// Bool is a boolean value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) value() {}

// Str is a string value.
type Str string

func (s Str) String() string { return string(s) }
func (Str) value()           {}

// Vector is an ordered value list.
type Vector []Value

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (Vector) value() {}

// Null is the undef value.
type Null struct{}

func (Null) String() string { return "undef" }
func (Null) value()         {}

// AsNumber extracts a float64 from a Value, comma-ok style. Booleans do not
// coerce to numbers.
func AsNumber(v Value) (float64, bool) {
	n, ok := v.(Number)
	return float64(n), ok
}

// AsBool extracts a boolean. Numbers coerce with the OpenSCAD rule that
// zero is false.
func AsBool(v Value) (bool, bool) {
	switch t := v.(type) {
	case Bool:
		return bool(t), true
	case Number:
		return t != 0, true
	}
	return false, false
}

// AsVec3 extracts up to three numeric components from a vector value,
// repeating a single scalar across all axes.
func AsVec3(v Value) (x, y, z float64, ok bool) {
	switch t := v.(type) {
	case Number:
		f := float64(t)
		return f, f, f, true
	case Vector:
		var out [3]float64
		for i := 0; i < len(t) && i < 3; i++ {
			n, isNum := AsNumber(t[i])
			if !isNum {
				return 0, 0, 0, false
			}
			out[i] = n
		}
		return out[0], out[1], out[2], len(t) > 0
	}
	return 0, 0, 0, false
}

// Equal compares two values structurally.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case Vector:
		bv, ok := b.(Vector)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// FromLiteralString is a convenience used by fallback extraction paths:
// it parses "true"/"false", a number, or falls back to a string value.
func FromLiteralString(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "undef":
		return Null{}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(n)
	}
	return Str(s)
}

// typeName reports a short value type name for diagnostics.
func typeName(v Value) string {
	switch v.(type) {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Str:
		return "string"
	case Vector:
		return "vector"
	case Null:
		return "undef"
	}
	return fmt.Sprintf("%T", v)
}
