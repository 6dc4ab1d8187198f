package main

import (
	"fmt"

	"github.com/urfave/cli"

	"minisql"
)

var demoQueries = []string{
	"SELECT id, name FROM users",
	"SELECT name, age FROM users WHERE age > 28",
	"SELECT name, age FROM users ORDER BY age DESC",
	"SELECT name FROM users LIMIT 2",
	"SELECT users.name, orders.amount FROM users JOIN orders ON users.id = orders.user_id",
	"SELECT users.name, orders.amount FROM users JOIN orders ON users.id = orders.user_id WHERE orders.amount > 400",
	"SELECT * FROM users",
	"SELECT name, age FROM users WHERE age > 25 AND dept = 'SALES'",
	"SELECT dept FROM users GROUP BY dept",
}

func demoCommand(c *cli.Context) error {
	fmt.Println("=== minisql demo ===")
	db := sampleDatabase()
	for _, query := range demoQueries {
		fmt.Println()
		fmt.Println(cyan("query: " + query))
		q, err := minisql.Parse(query)
		if err != nil {
			fmt.Println(red("parse error: " + err.Error()))
			continue
		}
		log.Debugf("parsed: %s", minisql.FormatQuery(q))
		rows, err := db.Execute(q)
		if err != nil {
			fmt.Println(red("error: " + err.Error()))
			continue
		}
		printRows(rows)
	}
	return nil
}

// sampleDatabase builds the users/orders toy dataset. Column references
// are matched against row keys literally, so each cell is registered under
// its bare name and its table-qualified name; that way both spellings
// resolve in queries.
func sampleDatabase() *minisql.Database {
	db := minisql.NewDatabase()
	db.AddTable(sampleTable("users", []string{"id", "name", "age", "dept"}, [][]minisql.Value{
		{intv(1), strv("Alice"), intv(30), strv("ENGINEERING")},
		{intv(2), strv("Bob"), intv(28), strv("SALES")},
		{intv(3), strv("Carol"), intv(35), strv("ENGINEERING")},
		{intv(4), strv("David"), intv(28), strv("SALES")},
	}))
	db.AddTable(sampleTable("orders", []string{"order_id", "user_id", "amount"}, [][]minisql.Value{
		{intv(101), intv(1), intv(500)},
		{intv(102), intv(2), intv(300)},
		{intv(103), intv(1), intv(700)},
		{intv(104), intv(3), intv(450)},
	}))
	return db
}

func sampleTable(name string, columns []string, data [][]minisql.Value) minisql.Table {
	t := minisql.Table{Name: name, Columns: columns}
	for _, cells := range data {
		row := minisql.Row{}
		for i, col := range columns {
			row[col] = cells[i]
			row[name+"."+col] = cells[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func intv(n int64) minisql.Value  { return minisql.Value{Kind: minisql.Int, Data: n} }
func strv(s string) minisql.Value { return minisql.Value{Kind: minisql.String, Data: s} }
