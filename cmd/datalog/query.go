package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wbrown/janus-triples/datalog/annotations"
	"github.com/wbrown/janus-triples/datalog/executor"
	"github.com/wbrown/janus-triples/datalog/parser"
	"github.com/wbrown/janus-triples/datalog/query"
	"github.com/wbrown/janus-triples/datalog/storage"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newQueryCmd(c *cli) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "query QUERY",
		Short: "Run a single query and print the result table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := c.loadDatabase()
			if err != nil {
				return err
			}
			q, err := parser.ParseQuery(args[0])
			if err != nil {
				return fmt.Errorf("parse error: %w", err)
			}
			return c.runQuery(cmd.OutOrStdout(), c.queryHandler(cmd.ErrOrStderr(), verbose), db, q)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "show query annotations")
	flags.Bool("allow-unbound", false, "project unbound find variables as nil instead of failing")
	flags.Bool("sort", false, "sort result rows")
	_ = c.v.BindPFlag("query.allow_unbound", flags.Lookup("allow-unbound"))
	_ = c.v.BindPFlag("query.sort", flags.Lookup("sort"))
	return cmd
}

// queryHandler picks where annotation events go: the console formatter in
// verbose mode, the logger when it is at debug level, otherwise nowhere.
func (c *cli) queryHandler(stderr io.Writer, verbose bool) annotations.Handler {
	switch {
	case verbose:
		return annotations.ConsoleHandler(stderr)
	case c.logger.Core().Enabled(zapcore.DebugLevel):
		return annotations.NewZapHandler(c.logger)
	default:
		return nil
	}
}

func (c *cli) runQuery(out io.Writer, handler annotations.Handler, db *storage.Database, q *query.Query) error {
	exec := executor.NewExecutor(db, executor.Options{
		AllowUnboundFind: c.cfg.Query.AllowUnbound,
		Handler:          handler,
	})
	rows, err := exec.Execute(q)
	if err != nil {
		c.logger.Warn("query failed", zap.String("query", q.String()), zap.Error(err))
		return fmt.Errorf("execution error: %w", err)
	}
	if c.cfg.Query.Sort {
		executor.SortTuples(rows)
	}
	fmt.Fprintln(out, executor.TuplesString(q.Columns(), rows))
	return nil
}
