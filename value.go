package minisql

import (
	"strconv"
	"strings"
)

// Kind identifies one of the five scalar kinds. The set is closed and there
// is no implicit coercion between kinds anywhere in the system.
type Kind int

const (
	Null Kind = iota
	Int
	Float
	String
	Bool
)

// Value is a single scalar: a literal, a row cell, or an expression result.
// The zero Value is null. Data holds int64 for Int, float64 for Float,
// string for String, bool for Bool and nil for Null.
type Value struct {
	Kind Kind
	Data any
}

func kindName(k Kind) string {
	switch k {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Bool:
		return "Bool"
	default:
		return "Null"
	}
}

// String renders the value for display: integers and floats as decimal
// text, strings raw, booleans as true/false and null as the literal NULL.
func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.Data.(int64), 10)
	case Float:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case String:
		return v.Data.(string)
	case Bool:
		return strconv.FormatBool(v.Data.(bool))
	default:
		return "NULL"
	}
}

// IsTrue holds only for the boolean value true. There is no truthiness:
// null, zero and the empty string are simply not true.
func (v Value) IsTrue() bool {
	return v.Kind == Bool && v.Data == true
}

// A literal Value is its own expression node.
func (v Value) eval(r Row) Value {
	return v
}

// binop applies an operator to a kind-matched pair of operands. Integers
// support the six comparisons, strings only equality, booleans only AND and
// OR. Every other pairing, floats and nulls included, yields null no matter
// the operator.
func binop(a Value, op string, b Value) Value {
	if a.Kind != b.Kind {
		return Value{}
	}
	switch a.Kind {
	case Int:
		x, y := a.Data.(int64), b.Data.(int64)
		switch op {
		case "=":
			return Value{Bool, x == y}
		case "!=":
			return Value{Bool, x != y}
		case "<":
			return Value{Bool, x < y}
		case ">":
			return Value{Bool, x > y}
		case "<=":
			return Value{Bool, x <= y}
		case ">=":
			return Value{Bool, x >= y}
		}
	case String:
		x, y := a.Data.(string), b.Data.(string)
		switch op {
		case "=":
			return Value{Bool, x == y}
		case "!=":
			return Value{Bool, x != y}
		}
	case Bool:
		x, y := a.Data.(bool), b.Data.(bool)
		switch op {
		case "AND":
			return Value{Bool, x && y}
		case "OR":
			return Value{Bool, x || y}
		}
	}
	return Value{}
}

// compareValues orders two values of the same kind, for sorting. Only
// integers, strings and floats have an ordering; any other pairing is
// treated as equal, nulls included.
func compareValues(a, b Value) int {
	if a.Kind != b.Kind {
		return 0
	}
	switch a.Kind {
	case Int:
		x, y := a.Data.(int64), b.Data.(int64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	case String:
		return strings.Compare(a.Data.(string), b.Data.(string))
	case Float:
		x, y := a.Data.(float64), b.Data.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}
