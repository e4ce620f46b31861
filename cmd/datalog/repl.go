package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/annotations"
	"github.com/wbrown/janus-triples/datalog/parser"
	"github.com/wbrown/janus-triples/datalog/storage"
)

func newReplCmd(c *cli) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive query mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := c.loadDatabase()
			if errors.Is(err, errNoDataset) {
				db, err = storage.NewDatabase(nil), nil
			}
			if err != nil {
				return err
			}
			handler := c.queryHandler(cmd.ErrOrStderr(), verbose)
			return c.runRepl(cmd.InOrStdin(), cmd.OutOrStdout(), handler, db)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show query annotations")
	return cmd
}

const replHelp = `Commands:
  .help    - Show help
  .exit    - Exit
  .stats   - Show dataset statistics
  .add     - Add triples, one [e a v] per line, empty line to finish
  [:find ...] or {:find ...} - Run a query (may span lines)`

func (c *cli) runRepl(in io.Reader, out io.Writer, handler annotations.Handler, db *storage.Database) error {
	fmt.Fprintln(out, "=== Datalog Interactive Mode ===")
	fmt.Fprintln(out, replHelp)
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue

		case line == ".exit":
			return nil

		case line == ".help":
			fmt.Fprintln(out, replHelp)

		case line == ".stats":
			s := db.Stats()
			fmt.Fprintf(out, "%d triples, %d entities, %d attributes, %d values\n",
				s.Triples, s.Entities, s.Attributes, s.Values)

		case line == ".add":
			db = addTriples(scanner, out, db)

		case strings.HasPrefix(line, "[") || strings.HasPrefix(line, "{"):
			text := line
			for depth(text) > 0 {
				fmt.Fprint(out, "  ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				text += "\n" + scanner.Text()
			}

			q, err := parser.ParseQuery(text)
			if err != nil {
				fmt.Fprintf(out, "Parse error: %v\n", err)
				continue
			}
			if err := c.runQuery(out, handler, db, q); err != nil {
				fmt.Fprintf(out, "%v\n", err)
			}

		default:
			fmt.Fprintln(out, "Unknown command. Use .help for help.")
		}
	}
}

// addTriples reads [e a v] lines until an empty line and returns a store
// holding the previous triples followed by the new ones.
func addTriples(scanner *bufio.Scanner, out io.Writer, db *storage.Database) *storage.Database {
	fmt.Fprintln(out, "Adding data (empty line to finish):")

	var added []datalog.Triple
	for {
		fmt.Fprint(out, "  [e a v]> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if !strings.HasPrefix(line, "[") {
			line = "[" + line + "]"
		}

		triples, err := parser.ParseTriples("[" + line + "]")
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		added = append(added, triples...)
	}

	if len(added) == 0 {
		fmt.Fprintln(out, "No data added")
		return db
	}

	all := make([]datalog.Triple, 0, db.Size()+len(added))
	all = append(all, db.Triples()...)
	all = append(all, added...)
	fmt.Fprintf(out, "Added %d triples\n", len(added))
	return storage.NewDatabase(all)
}

// depth returns how many brackets are still open in text, ignoring
// brackets inside strings and comments.
func depth(text string) int {
	open := 0
	inString, inComment := false, false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case inComment:
			if ch == '\n' {
				inComment = false
			}
		case inString:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == ';':
			inComment = true
		case ch == '[' || ch == '{' || ch == '(':
			open++
		case ch == ']' || ch == '}' || ch == ')':
			open--
		}
	}
	return open
}
