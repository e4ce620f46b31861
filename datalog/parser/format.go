package parser

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/edn"
	"github.com/wbrown/janus-triples/datalog/query"
)

// FormatQuery formats a query as readable EDN, one pattern per line:
//
//	[:find ?year
//	 :where [?id "movie/title" "Alien"]
//	        [?id "movie/year" ?year]]
//
// The output parses back to an equivalent query.
func FormatQuery(q *query.Query) string {
	var sb strings.Builder

	sb.WriteString("[:find")
	for _, elem := range q.Find {
		sb.WriteString(" ")
		formatPatternElement(&sb, elem)
	}

	sb.WriteString("\n :where")
	for i, p := range q.Where {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString("\n        ") // align under the first pattern
		}
		FormatPattern(&sb, p)
	}

	sb.WriteString("]")
	return sb.String()
}

// FormatPattern writes a pattern in EDN format
func FormatPattern(sb *strings.Builder, p query.Pattern) {
	sb.WriteString("[")
	for i, elem := range p.Elements {
		if i > 0 {
			sb.WriteString(" ")
		}
		formatPatternElement(sb, elem)
	}
	sb.WriteString("]")
}

func formatPatternElement(sb *strings.Builder, elem query.PatternElement) {
	switch e := elem.(type) {
	case query.Variable:
		sb.WriteString(string(e.Name))
	case query.Blank:
		sb.WriteString("_")
	case query.Constant:
		formatValue(sb, e.Value)
	default:
		sb.WriteString(elem.String())
	}
}

// formatValue writes a literal in EDN format
func formatValue(sb *strings.Builder, v interface{}) {
	switch val := datalog.Normalize(v).(type) {
	case nil:
		sb.WriteString("nil")
	case datalog.Keyword:
		sb.WriteString(val.String())
	case string:
		sb.WriteString(edn.Quote(val))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case uint64:
		sb.WriteString(strconv.FormatUint(val, 10))
	case float64:
		sb.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	case time.Time:
		sb.WriteString(`#inst "`)
		sb.WriteString(val.Format(time.RFC3339Nano))
		sb.WriteString(`"`)
	case []byte:
		sb.WriteString(`#bytes "`)
		sb.WriteString(hex.EncodeToString(val))
		sb.WriteString(`"`)
	default:
		// No EDN literal; render as a string
		sb.WriteString(edn.Quote(fmt.Sprintf("%v", v)))
	}
}
