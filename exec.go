package minisql

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Row is one record, a mapping from column name to value. Rows are plain
// values with no identity: the executor copies, merges and discards them
// freely.
type Row map[string]Value

// Table is a named, ordered sequence of rows. The column list is
// descriptive only and is not enforced against row contents.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Database is the relational store a query runs against. It is read-only
// for the duration of a single Execute call; queries observe the rows
// present at the start of the fetch stage and nothing stronger.
type Database struct {
	tables map[string]Table
}

func NewDatabase() *Database {
	return &Database{tables: map[string]Table{}}
}

// AddTable registers a table, replacing any previous table with the same
// name. The name, the declared columns and the row keys are upper-cased to
// mirror the lexer's case folding, so that lexed table and column names
// resolve against them.
func (db *Database) AddTable(t Table) {
	folded := Table{Name: strings.ToUpper(t.Name)}
	for _, c := range t.Columns {
		folded.Columns = append(folded.Columns, strings.ToUpper(c))
	}
	for _, r := range t.Rows {
		row := make(Row, len(r))
		for k, v := range r {
			row[strings.ToUpper(k)] = v
		}
		folded.Rows = append(folded.Rows, row)
	}
	db.tables[folded.Name] = folded
}

// ExecString parses and executes a query in one call.
func (db *Database) ExecString(query string) ([]Row, error) {
	q, err := Parse(query)
	if err != nil {
		return nil, err
	}
	rows, err := db.Execute(q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	return rows, nil
}

// Execute runs a parsed query through the fixed pipeline: fetch, filter,
// joins, group, order, projection, limit. The only execution error is a
// missing table; everything else degrades to nulls or empty output.
func (db *Database) Execute(q Query) ([]Row, error) {
	src, ok := db.tables[q.From]
	if !ok {
		return nil, errors.Errorf("table not found: %s", q.From)
	}
	rows := make([]Row, len(src.Rows))
	copy(rows, src.Rows)

	// The filter runs before the joins, so a WHERE clause only ever sees
	// columns of the source table.
	if q.Filter != nil {
		var kept []Row
		for _, r := range rows {
			if q.Filter.eval(r).IsTrue() {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	// Unindexed nested-loop inner joins, composed left to right. The right
	// row's fields overlay the left row's on key collision.
	for _, j := range q.Joins {
		right, ok := db.tables[j.Table]
		if !ok {
			return nil, errors.Errorf("table not found: %s", j.Table)
		}
		var joined []Row
		for _, l := range rows {
			for _, r := range right.Rows {
				merged := make(Row, len(l)+len(r))
				for k, v := range l {
					merged[k] = v
				}
				for k, v := range r {
					merged[k] = v
				}
				if j.On.eval(merged).IsTrue() {
					joined = append(joined, merged)
				}
			}
		}
		rows = joined
	}

	if len(q.GroupBy) > 0 {
		rows = groupRows(rows, q.GroupBy)
	}

	// Stable sorts applied back to front compose into a multi-key sort
	// with the first declared key as the primary one.
	for i := len(q.OrderBy) - 1; i >= 0; i-- {
		key := q.OrderBy[i]
		sort.SliceStable(rows, func(a, b int) bool {
			c := compareValues(rows[a][key.Column], rows[b][key.Column])
			if key.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	rows = projectRows(rows, q.Select)

	if q.Limit.Set && len(rows) > q.Limit.Value {
		rows = rows[:q.Limit.Value]
	}
	return rows, nil
}

// projectRows narrows each row to the selected columns. The wildcard takes
// the column set of the first surviving row; with no rows there is no way
// to know the schema and the output has zero columns. A named column absent
// from a row becomes null, never an error.
func projectRows(rows []Row, selected []string) []Row {
	cols := selected
	if isWildcard(selected) {
		cols = nil
		if len(rows) > 0 {
			for k := range rows[0] {
				cols = append(cols, k)
			}
		}
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		projected := make(Row, len(cols))
		for _, c := range cols {
			if v, ok := r[c]; ok {
				projected[c] = v
			} else {
				projected[c] = Value{}
			}
		}
		out[i] = projected
	}
	return out
}

func isWildcard(cols []string) bool {
	for _, c := range cols {
		if c == "*" {
			return true
		}
	}
	return false
}

// groupRows partitions rows by the tuple of grouping column values and
// emits one representative row per group, holding only those columns and
// the group's key values. There is no aggregate support: detail rows are
// discarded. Groups come out in first-seen order.
func groupRows(rows []Row, cols []string) []Row {
	var keys [][]Value
	var out []Row
	for _, r := range rows {
		key := make([]Value, len(cols))
		for i, c := range cols {
			key[i] = r[c]
		}
		seen := false
		for _, k := range keys {
			if tupleEqual(k, key) {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		keys = append(keys, key)
		rep := make(Row, len(cols))
		for i, c := range cols {
			rep[c] = key[i]
		}
		out = append(out, rep)
	}
	return out
}

// tupleEqual compares group keys by value equality across all kinds; two
// nulls are equal.
func tupleEqual(a, b []Value) bool {
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Data != b[i].Data {
			return false
		}
	}
	return true
}
