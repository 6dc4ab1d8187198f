package minisql

// Query is the syntax tree of one SELECT statement. The parser returns
// either a fully formed Query or an error, never a partial one; the
// executor consumes it once and does not modify it.
type Query struct {
	// Select holds column names, or the single "*" marker meaning every
	// column of the first result row.
	Select  []string
	From    string
	Joins   []Join
	Filter  expression // nil when there is no WHERE clause
	GroupBy []string
	OrderBy []OrderKey
	Limit   struct {
		Set   bool
		Value int
	}
}

// Join names a table and the ON condition checked against each merged
// candidate row.
type Join struct {
	Table string
	On    expression
}

// OrderKey is one ORDER BY entry. Ascending is the default.
type OrderKey struct {
	Column string
	Desc   bool
}

// expression is a node in a filter or join condition tree. Nodes own their
// children exclusively; the tree is never shared or mutated. Evaluation is
// total: anomalies degrade to null instead of failing.
type expression interface {
	eval(r Row) Value
	String() string
}
