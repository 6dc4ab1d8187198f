package minisql

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func intv(n int64) Value  { return Value{Int, n} }
func strv(s string) Value { return Value{String, s} }

func testDB() *Database {
	db := NewDatabase()
	db.AddTable(Table{
		Name:    "users",
		Columns: []string{"id", "name", "age", "dept"},
		Rows: []Row{
			{"id": intv(1), "name": strv("Alice"), "age": intv(30), "dept": strv("ENGINEERING")},
			{"id": intv(2), "name": strv("Bob"), "age": intv(28), "dept": strv("SALES")},
			{"id": intv(3), "name": strv("Carol"), "age": intv(35), "dept": strv("ENGINEERING")},
			{"id": intv(4), "name": strv("David"), "age": intv(28), "dept": strv("SALES")},
		},
	})
	db.AddTable(Table{
		Name:    "orders",
		Columns: []string{"order_id", "user_id", "amount"},
		Rows: []Row{
			{"order_id": intv(101), "user_id": intv(1), "amount": intv(500)},
			{"order_id": intv(102), "user_id": intv(2), "amount": intv(300)},
			{"order_id": intv(103), "user_id": intv(1), "amount": intv(700)},
			{"order_id": intv(104), "user_id": intv(3), "amount": intv(450)},
		},
	})
	return db
}

func TestQueries(t *testing.T) {
	db := testDB()
	check := func(name, query string, want []Row) {
		t.Run(name, func(t *testing.T) {
			got, err := db.ExecString(query)
			if err != nil {
				t.Fatalf("query %q: %v", query, err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("query %q:\ngot:\n%s\n%s", query, FormatRows(got), diff)
			}
		})
	}

	check("plain projection preserves table order",
		"SELECT id, name FROM users",
		[]Row{
			{"ID": intv(1), "NAME": strv("Alice")},
			{"ID": intv(2), "NAME": strv("Bob")},
			{"ID": intv(3), "NAME": strv("Carol")},
			{"ID": intv(4), "NAME": strv("David")},
		})
	check("where filters by boolean true only",
		"SELECT name FROM users WHERE age > 28",
		[]Row{
			{"NAME": strv("Alice")},
			{"NAME": strv("Carol")},
		})
	check("where with and",
		"SELECT name FROM users WHERE age > 25 AND dept = 'Sales'",
		[]Row{
			{"NAME": strv("Bob")},
			{"NAME": strv("David")},
		})
	check("where with or",
		"SELECT name FROM users WHERE age = 30 OR age = 35",
		[]Row{
			{"NAME": strv("Alice")},
			{"NAME": strv("Carol")},
		})
	check("order by desc",
		"SELECT name FROM users ORDER BY age DESC LIMIT 1",
		[]Row{
			{"NAME": strv("Carol")},
		})
	check("limit truncates",
		"SELECT name FROM users LIMIT 2",
		[]Row{
			{"NAME": strv("Alice")},
			{"NAME": strv("Bob")},
		})
	check("limit zero yields nothing",
		"SELECT name FROM users LIMIT 0",
		nil)
	check("limit larger than result",
		"SELECT name FROM users WHERE age = 30 LIMIT 10",
		[]Row{
			{"NAME": strv("Alice")},
		})
	check("group by emits one representative row per group",
		"SELECT dept FROM users GROUP BY dept ORDER BY dept",
		[]Row{
			{"DEPT": strv("ENGINEERING")},
			{"DEPT": strv("SALES")},
		})
	check("group by tuple",
		"SELECT dept, age FROM users GROUP BY dept, age ORDER BY age, dept",
		[]Row{
			{"DEPT": strv("SALES"), "AGE": intv(28)},
			{"DEPT": strv("ENGINEERING"), "AGE": intv(30)},
			{"DEPT": strv("ENGINEERING"), "AGE": intv(35)},
		})
	check("missing column projects as null",
		"SELECT name, salary FROM users LIMIT 1",
		[]Row{
			{"NAME": strv("Alice"), "SALARY": {}},
		})
	check("function calls evaluate to null and filter everything out",
		"SELECT name FROM users WHERE upper(name) = 'ALICE'",
		nil)
	check("float comparison is never true",
		"SELECT name FROM users WHERE age > 27.5",
		nil)
	check("empty result",
		"SELECT name FROM users WHERE age > 100",
		nil)
	check("wildcard over empty result has zero columns",
		"SELECT * FROM users WHERE age > 100",
		nil)
}

func TestRoundTripScenario(t *testing.T) {
	db := testDB()
	rows, err := db.ExecString("SELECT name, age FROM users WHERE age > 28 ORDER BY age DESC")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{
		{"NAME": strv("Carol"), "AGE": intv(35)},
		{"NAME": strv("Alice"), "AGE": intv(30)},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatal(diff)
	}
}

func TestJoin(t *testing.T) {
	// Column references stay literal strings, so joinable data carries the
	// lexed qualified names as row keys.
	db := NewDatabase()
	db.AddTable(Table{
		Name:    "users",
		Columns: []string{"users.id", "users.name"},
		Rows: []Row{
			{"users.id": intv(1), "users.name": strv("Alice")},
		},
	})
	db.AddTable(Table{
		Name:    "orders",
		Columns: []string{"orders.user_id", "orders.amount"},
		Rows: []Row{
			{"orders.user_id": intv(1), "orders.amount": intv(100)},
		},
	})
	rows, err := db.ExecString("SELECT * FROM users JOIN orders ON users.id = orders.user_id")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{
		{
			"USERS.ID":       intv(1),
			"USERS.NAME":     strv("Alice"),
			"ORDERS.USER_ID": intv(1),
			"ORDERS.AMOUNT":  intv(100),
		},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatal(diff)
	}
}

func TestJoinCardinality(t *testing.T) {
	// With an always-absent ON column the condition is null everywhere and
	// nothing survives; with matching keys the join is |left| x |right|
	// filtered down to the true pairs.
	db := NewDatabase()
	db.AddTable(Table{
		Name: "l",
		Rows: []Row{
			{"l.k": intv(1)},
			{"l.k": intv(2)},
		},
	})
	db.AddTable(Table{
		Name: "r",
		Rows: []Row{
			{"r.k": intv(1)},
			{"r.k": intv(1)},
			{"r.k": intv(3)},
		},
	})
	rows, err := db.ExecString("SELECT * FROM l JOIN r ON l.k = r.k")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 surviving pairs, got %d:\n%s", len(rows), FormatRows(rows))
	}

	rows, err = db.ExecString("SELECT * FROM l JOIN r ON l.k = r.missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("null condition must drop every pair, got:\n%s", FormatRows(rows))
	}
}

func TestJoinOverlayRightWins(t *testing.T) {
	db := NewDatabase()
	db.AddTable(Table{
		Name: "a",
		Rows: []Row{
			{"k": intv(1), "v": strv("left")},
		},
	})
	db.AddTable(Table{
		Name: "b",
		Rows: []Row{
			{"k": intv(1), "v": strv("right")},
		},
	})
	rows, err := db.ExecString("SELECT v FROM a JOIN b ON k = k")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{{"V": strv("right")}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatal(diff)
	}
}

func TestWhereRunsBeforeJoins(t *testing.T) {
	// The filter stage precedes the join stage, so a WHERE clause over a
	// joined column sees only nulls and keeps nothing.
	db := NewDatabase()
	db.AddTable(Table{
		Name: "a",
		Rows: []Row{{"x": intv(1)}},
	})
	db.AddTable(Table{
		Name: "b",
		Rows: []Row{{"y": intv(1)}},
	})
	rows, err := db.ExecString("SELECT * FROM a JOIN b ON x = y WHERE y = 1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got:\n%s", FormatRows(rows))
	}
}

func TestOrderByStability(t *testing.T) {
	db := NewDatabase()
	db.AddTable(Table{
		Name: "t",
		Rows: []Row{
			{"k1": intv(2), "k2": intv(1), "tag": strv("a")},
			{"k1": intv(1), "k2": intv(2), "tag": strv("b")},
			{"k1": intv(1), "k2": intv(3), "tag": strv("c")},
			{"k1": intv(2), "k2": intv(3), "tag": strv("d")},
			{"k1": intv(1), "k2": intv(2), "tag": strv("e")},
		},
	})
	rows, err := db.ExecString("SELECT tag FROM t ORDER BY k1 ASC, k2 DESC")
	if err != nil {
		t.Fatal(err)
	}
	var tags []string
	for _, r := range rows {
		tags = append(tags, r["TAG"].String())
	}
	// Equal k1 rows stay grouped and are ordered by k2 descending; the two
	// (1,2) rows keep their original relative order.
	want := "c,b,e,d,a"
	if got := strings.Join(tags, ","); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	// Sorting an already sorted sequence changes nothing.
	again, err := db.ExecString("SELECT tag FROM t ORDER BY k1 ASC, k2 DESC")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rows, again); diff != "" {
		t.Fatal(diff)
	}
}

func TestOrderByMixedKindsKeepOrder(t *testing.T) {
	db := NewDatabase()
	db.AddTable(Table{
		Name: "t",
		Rows: []Row{
			{"x": strv("b"), "n": intv(1)},
			{"x": intv(7), "n": intv(2)},
			{"x": strv("a"), "n": intv(3)},
			{"x": Value{}, "n": intv(4)},
		},
	})
	// Mixed-kind pairs compare as equal, so the stable sort leaves the
	// sequence exactly as it came in.
	rows, err := db.ExecString("SELECT n FROM t ORDER BY x")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{
		{"N": intv(1)},
		{"N": intv(2)},
		{"N": intv(3)},
		{"N": intv(4)},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatal(diff)
	}
}

func TestGroupByAbsentColumn(t *testing.T) {
	db := NewDatabase()
	db.AddTable(Table{
		Name: "t",
		Rows: []Row{
			{"a": intv(1)},
			{"a": intv(2)},
		},
	})
	// Every row lands in the single all-null group.
	rows, err := db.ExecString("SELECT missing FROM t GROUP BY missing")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{{"MISSING": {}}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatal(diff)
	}
}

func TestTableNotFound(t *testing.T) {
	db := testDB()
	_, err := db.Execute(Query{Select: []string{"*"}, From: "NOPE"})
	if err == nil || !strings.Contains(err.Error(), "table not found: NOPE") {
		t.Fatalf("err = %v", err)
	}

	q, err := Parse("SELECT * FROM users JOIN nope ON a = b")
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Execute(q)
	if err == nil || !strings.Contains(err.Error(), "table not found: NOPE") {
		t.Fatalf("err = %v", err)
	}
}

func TestAddTableReplaces(t *testing.T) {
	db := NewDatabase()
	db.AddTable(Table{Name: "t", Rows: []Row{{"a": intv(1)}}})
	db.AddTable(Table{Name: "T", Rows: []Row{{"a": intv(2)}}})
	rows, err := db.ExecString("SELECT a FROM t")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{{"A": intv(2)}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatal(diff)
	}
}

func TestStringLiteralsAreUpperCased(t *testing.T) {
	// The lexer upper-cases the whole input, literals included, so a filter
	// only matches data that is stored upper-case.
	db := NewDatabase()
	db.AddTable(Table{
		Name: "t",
		Rows: []Row{
			{"name": strv("Alice")},
			{"name": strv("ALICE")},
		},
	})
	rows, err := db.ExecString("SELECT name FROM t WHERE name = 'Alice'")
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{{"NAME": strv("ALICE")}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatal(diff)
	}
}
