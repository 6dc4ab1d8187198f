package minisql

import "fmt"

// binary applies one operator to a pair of operands. AND and OR arrive here
// as operators too, carried by their keyword text; the kind-matching in
// binop decides what each operator means, if anything.
type binary struct {
	left  expression
	op    string
	right expression
}

func (e binary) eval(r Row) Value {
	return binop(e.left.eval(r), e.op, e.right.eval(r))
}

func (e binary) String() string {
	return fmt.Sprintf("%s %s %s", e.left, e.op, e.right)
}
