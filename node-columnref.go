package minisql

// columnRef is an expression node that refers to a column by name. A
// qualified name like USERS.ID is a plain string here: it matches a row key
// literally or not at all, there is no table resolution.
type columnRef struct {
	Name string
}

func (e columnRef) eval(r Row) Value {
	if v, ok := r[e.Name]; ok {
		return v
	}
	return Value{}
}

func (e columnRef) String() string {
	return e.Name
}
