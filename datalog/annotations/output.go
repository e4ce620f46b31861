package annotations

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// OutputFormatter formats events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
	renderer *ContextRenderer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	// Auto-detect color support
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd()) && !color.NoColor
	}

	return &OutputFormatter{
		useColor: useColor,
		writer:   w,
		renderer: NewContextRenderer(useColor),
	}
}

// Handle implements the Handler interface - prints events as they occur
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable string.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)

	switch event.Name {
	case QueryInvoked:
		query, _ := event.Data["query"].(string)
		return fmt.Sprintf("%s Query: %s", latency, truncateQuery(query))

	case PatternIndexSelection:
		return fmt.Sprintf("%s %s via %s: %s",
			latency,
			event.Data["pattern"],
			f.colorize(fmt.Sprint(event.Data["index"]), color.FgYellow),
			f.colorizeCount("candidates", intData(event, "candidates")))

	case PatternMatch:
		pattern, _ := event.Data["pattern"].(string)
		before, _ := event.Data["symbols.before"].([]string)
		after, _ := event.Data["symbols.after"].([]string)
		return fmt.Sprintf("%s %s (%s)",
			latency,
			f.renderer.RenderMatch(pattern, before, intData(event, "contexts.in"), after, intData(event, "contexts.out")),
			f.colorizeCount("triples", intData(event, "triples.scanned")))

	case QueryProjected:
		return fmt.Sprintf("%s Projected %s",
			latency,
			f.colorizeCount("rows", intData(event, "rows")))

	case QueryComplete:
		if success, _ := event.Data["success"].(bool); !success {
			return fmt.Sprintf("%s %s Query failed: %v",
				latency,
				f.colorize("✗", color.FgRed),
				event.Data["error"])
		}
		return fmt.Sprintf("%s %s Query done with %s from %s.",
			latency,
			f.colorize("===", color.FgGreen),
			f.colorizeCount("rows", intData(event, "rows")),
			f.colorizeCount("contexts", intData(event, "contexts")))

	case ErrorQueryValidation, ErrorQueryBinding:
		return fmt.Sprintf("%s %s %s: %v",
			latency,
			f.colorize("✗", color.FgRed),
			event.Name,
			event.Data["error"])

	default:
		// Generic format for unknown events
		return fmt.Sprintf("%s %s %v", latency, event.Name, event.Data)
	}
}

func intData(event Event, key string) int {
	n, _ := event.Data[key].(int)
	return n
}

// formatLatency formats a duration as [XXXms] or [XXXµs] with color coding.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	// Use microseconds for sub-millisecond durations
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)

	if !f.useColor {
		return s
	}

	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

// colorizeCount formats a count with a label, using color based on the label type.
func (f *OutputFormatter) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%d %s", count, label)

	if !f.useColor {
		return text
	}

	switch label {
	case "rows", "contexts":
		return color.CyanString(text)
	case "triples", "candidates":
		return color.MagentaString(text)
	default:
		return text
	}
}

// colorize applies color if enabled.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// truncateQuery shortens long queries for display.
func truncateQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")

	const maxLen = 80
	runes := []rune(query)
	if len(runes) <= maxLen {
		return query
	}

	return string(runes[:maxLen-3]) + "..."
}

// ConsoleHandler creates a handler that prints formatted events to w.
func ConsoleHandler(w io.Writer) Handler {
	return NewOutputFormatter(w).Handle
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
