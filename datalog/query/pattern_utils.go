package query

// ExtractVariables returns all unique variables from patterns, in order of
// first appearance
func ExtractVariables(patterns []Pattern) []Symbol {
	var vars []Symbol
	for _, p := range patterns {
		for _, sym := range p.Symbols() {
			if !containsSymbol(vars, sym) {
				vars = append(vars, sym)
			}
		}
	}
	return vars
}

// containsSymbol reports whether sym is in symbols
func containsSymbol(symbols []Symbol, sym Symbol) bool {
	for _, s := range symbols {
		if s == sym {
			return true
		}
	}
	return false
}
