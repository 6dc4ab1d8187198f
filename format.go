package minisql

import (
	"fmt"
	"sort"
	"strings"
)

// FormatQuery renders a query tree back into statement form.
func FormatQuery(q Query) string {
	r := strings.Builder{}
	r.WriteString("SELECT ")
	r.WriteString(strings.Join(q.Select, ", "))
	r.WriteString(" FROM ")
	r.WriteString(q.From)
	for _, j := range q.Joins {
		r.WriteString(fmt.Sprintf(" JOIN %s ON %s", j.Table, j.On))
	}
	if q.Filter != nil {
		r.WriteString(" WHERE ")
		r.WriteString(q.Filter.String())
	}
	if len(q.GroupBy) > 0 {
		r.WriteString(" GROUP BY ")
		r.WriteString(strings.Join(q.GroupBy, ", "))
	}
	if len(q.OrderBy) > 0 {
		r.WriteString(" ORDER BY ")
		for i, k := range q.OrderBy {
			if i > 0 {
				r.WriteString(", ")
			}
			r.WriteString(k.Column)
			if k.Desc {
				r.WriteString(" DESC")
			}
		}
	}
	if q.Limit.Set {
		r.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit.Value))
	}
	return r.String()
}

// FormatRows dumps rows one per line, columns sorted by name so the output
// is stable for display and tests.
func FormatRows(rows []Row) string {
	sb := strings.Builder{}
	for _, r := range rows {
		for i, name := range columnNames(r) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s=%s", name, r[name]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// columnNames returns a row's column names in sorted order.
func columnNames(r Row) []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
