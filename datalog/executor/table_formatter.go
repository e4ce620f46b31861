package executor

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/wbrown/janus-triples/datalog"
)

// TableFormatter provides utilities for formatting query results as tables
type TableFormatter struct {
	// MaxWidth is the maximum width for a column
	MaxWidth int
	// TruncateString is the string to append when truncating
	TruncateString string
}

// NewTableFormatter creates a new table formatter with default settings
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatTuples formats result rows as a markdown table with the given headers
func (tf *TableFormatter) FormatTuples(columns []string, tuples []Tuple) string {
	if len(tuples) == 0 {
		return fmt.Sprintf("_Columns: %v_\n\n_No rows_", columns)
	}

	tableString := &strings.Builder{}

	// Create alignment array with all columns using AlignNone for simple separators
	alignment := make([]tw.Align, len(columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header(columns)

	for _, tuple := range tuples {
		row := make([]string, len(tuple))
		for j, val := range tuple {
			row[j] = tf.truncate(tf.formatValue(val))
		}
		table.Append(row)
	}

	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d rows_\n", len(tuples)))

	return tableString.String()
}

// formatValue converts a value to a string representation
func (tf *TableFormatter) formatValue(val datalog.Value) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case float32, float64:
		return fmt.Sprintf("%g", v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return datalog.FormatValue(v)
	}
}

func (tf *TableFormatter) truncate(s string) string {
	if tf.MaxWidth <= 0 || utf8.RuneCountInString(s) <= tf.MaxWidth {
		return s
	}
	keep := tf.MaxWidth - utf8.RuneCountInString(tf.TruncateString)
	if keep < 0 {
		keep = 0
	}
	return string([]rune(s)[:keep]) + tf.TruncateString
}

// TuplesString returns the markdown table for a query result
func TuplesString(columns []string, tuples []Tuple) string {
	return NewTableFormatter().FormatTuples(columns, tuples)
}
