package minisql

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// LoadJSONTable reads a file holding an array of flat JSON objects and
// builds a table out of it. Cell types are inferred per value; a JSON
// number without a fractional part becomes an integer the way the query
// language distinguishes the two. Unknown shapes and JSON null load as the
// null value.
func LoadJSONTable(name, path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, errors.Wrap(err, "failed to read table file")
	}
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return Table{}, errors.Wrapf(err, "failed to parse %s", path)
	}
	t := Table{Name: name}
	known := map[string]bool{}
	for _, item := range items {
		row := make(Row, len(item))
		for k, v := range item {
			if !known[k] {
				known[k] = true
				t.Columns = append(t.Columns, k)
			}
			row[k] = jsonValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func jsonValue(x any) Value {
	switch v := x.(type) {
	case string:
		return Value{String, v}
	case float64:
		if float64(int64(v)) == v {
			return Value{Int, int64(v)}
		}
		return Value{Float, v}
	case bool:
		return Value{Bool, v}
	default:
		return Value{}
	}
}
