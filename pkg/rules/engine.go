package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/stylefmt/pkg/format"
	"github.com/yaklabco/stylefmt/pkg/syntax"
)

// ErrRule is wrapped by every rule failure.
var ErrRule = errors.New("rule failed")

// Engine runs the registered rules over a parsed stylesheet.
// It satisfies format.Transform.
type Engine struct {
	// Registry holds the rules to run, in order.
	Registry *Registry
}

// NewEngine creates an Engine over registry. A nil registry selects
// DefaultRegistry.
func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Engine{Registry: registry}
}

// Apply rewrites root in place and returns it.
func (e *Engine) Apply(ctx context.Context, root *syntax.Root, opts *format.Options) (*syntax.Root, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrRule)
	}

	cfg := opts.RuleConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := NewContext(ctx, root, cfg)
	if opts == nil || !opts.IgnoreDisables {
		markDisabled(rc)
	}

	for _, rule := range e.Registry.Rules() {
		if rc.Cancelled() {
			return nil, fmt.Errorf("formatting cancelled: %w", ctx.Err())
		}
		if err := rule.Apply(rc); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRule, rule.Name(), err)
		}
	}

	return root, nil
}

var _ format.Transform = (*Engine)(nil)
