package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"minisql"
)

// replCommand reads one query per line against the sample dataset. Each
// line gets its raw token dump first; a line that parses is executed too.
func replCommand(c *cli.Context) error {
	db := sampleDatabase()
	fmt.Println("minisql repl, sample tables: users, orders. Type exit to quit.")
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cyan("minisql> "))
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		fmt.Println(yellow(tokenDump(line)))
		rows, err := db.ExecString(line)
		if err != nil {
			fmt.Println(red(err.Error()))
			continue
		}
		printRows(rows)
	}
	return in.Err()
}

func tokenDump(line string) string {
	tokens := minisql.Tokenize(line)
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
