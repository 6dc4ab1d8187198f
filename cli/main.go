package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli"

	"minisql"
)

func main() {
	setupLogging()
	app := cli.NewApp()
	app.Name = "minisql"
	app.Usage = "run SQL-like queries against in-memory tables"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:   "demo",
			Usage:  "load the sample dataset and run the canned queries",
			Action: demoCommand,
		},
		{
			Name:   "repl",
			Usage:  "interactive prompt over the sample dataset, with a token dump per line",
			Action: replCommand,
		},
		{
			Name:      "run",
			Usage:     "run one query against a JSON table file",
			ArgsUsage: "<table.json> <query>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "table", Value: "t", Usage: "name to register the table under"},
			},
			Action: runCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return cli.NewExitError("usage: minisql run <table.json> <query>", 1)
	}
	name := c.String("table")
	table, err := minisql.LoadJSONTable(name, args[0])
	if err != nil {
		return err
	}
	log.Debugf("loaded table %s: %d columns, %d rows", name, len(table.Columns), len(table.Rows))
	db := minisql.NewDatabase()
	db.AddTable(table)
	rows, err := db.ExecString(args[1])
	if err != nil {
		return err
	}
	printRows(rows)
	return nil
}

// printRows writes a result set as a column-name header line followed by
// one line per row, columns in sorted name order.
func printRows(rows []minisql.Row) {
	if len(rows) == 0 {
		fmt.Println("(no results)")
		return
	}
	cols := sortedColumns(rows[0])
	fmt.Println(green(strings.Join(cols, " | ")))
	for _, r := range rows {
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = r[c].String()
		}
		fmt.Println(strings.Join(vals, " | "))
	}
}

func sortedColumns(r minisql.Row) []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
