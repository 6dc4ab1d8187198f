package minisql

import "strings"

// funcCall is function-call syntax, parsed but not implemented: a call
// always evaluates to null. The node exists so the syntax is reserved for
// a later extension.
type funcCall struct {
	name string
	args []expression
}

func (f funcCall) eval(r Row) Value {
	return Value{}
}

func (f funcCall) String() string {
	b := strings.Builder{}
	b.WriteString(f.name)
	b.WriteString("(")
	for i, a := range f.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}
