package rules

// RegisterAll registers the built-in rules with the given registry, in the
// order they must run. Value rules run before layout so the layout sees
// final selector text.
func RegisterAll(reg *Registry) {
	reg.Register(NewSelectorListRule())
	reg.Register(NewAtRuleParamsRule())
	reg.Register(NewDeclarationRule())
	reg.Register(NewValueWhitespaceRule())
	reg.Register(NewFlagsRule())
	reg.Register(NewColorHexRule())
	reg.Register(NewStringQuotesRule())
	reg.Register(NewIndentationRule())
	reg.Register(NewFinalNewlineRule())
}

func init() {
	RegisterAll(DefaultRegistry)
}
