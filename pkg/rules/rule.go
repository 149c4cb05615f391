// Package rules provides the default style transform for stylefmt.
//
// Each rule rewrites node raws or values of a parsed stylesheet in place.
// Rules are registered by name and run in registration order by an Engine,
// which hides disabled regions from them.
package rules

// Rule is a single formatting rule.
type Rule interface {
	// Name returns the unique rule name (e.g., "indentation").
	Name() string

	// Description returns a one-line summary of what the rule rewrites.
	Description() string

	// Apply rewrites the tree reachable through ctx.
	//
	// Rules must:
	//   - Only touch nodes handed out by ctx.Each.
	//   - Be idempotent: applying twice equals applying once.
	//   - Return error only for internal failures.
	Apply(ctx *Context) error
}

// BaseRule provides the descriptive half of the Rule interface.
// Embed this in rule implementations and add Apply.
type BaseRule struct {
	name string
	desc string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(name, desc string) BaseRule {
	return BaseRule{name: name, desc: desc}
}

// Name returns the unique rule name.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a one-line summary of the rule.
func (r *BaseRule) Description() string {
	return r.desc
}
