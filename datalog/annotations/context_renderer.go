package annotations

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ContextRenderer pretty-prints sets of binding contexts
type ContextRenderer struct {
	useColor bool
}

// NewContextRenderer creates a new context renderer
func NewContextRenderer(useColor bool) *ContextRenderer {
	return &ContextRenderer{useColor: useColor}
}

// RenderContexts renders a context set by its variables and size, e.g.
// Contexts([?id ?year], 3)
func (r *ContextRenderer) RenderContexts(symbols []string, count int) string {
	symList := strings.Join(symbols, " ")

	if r.useColor {
		return fmt.Sprintf("%s%s%s%s%s",
			color.BlueString("Contexts(["),
			color.CyanString(symList),
			color.BlueString("], "),
			color.MagentaString(fmt.Sprintf("%d", count)),
			color.BlueString(")"))
	}

	return fmt.Sprintf("Contexts([%s], %d)", symList, count)
}

// RenderMatch renders one pattern step of a join:
// Match([?id :movie/year ?year]) Contexts([?id], 1) → Contexts([?id ?year], 1)
func (r *ContextRenderer) RenderMatch(pattern string, before []string, in int, after []string, out int) string {
	var match string
	if r.useColor {
		match = fmt.Sprintf("%s%s%s",
			color.BlueString("Match("),
			color.CyanString(pattern),
			color.BlueString(")"))
	} else {
		match = fmt.Sprintf("Match(%s)", pattern)
	}

	arrow := " → "
	if r.useColor {
		arrow = color.YellowString(arrow)
	}

	return match + " " + r.RenderContexts(before, in) + arrow + r.RenderContexts(after, out)
}
