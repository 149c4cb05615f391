package rules

import "sync"

// Registry holds formatting rules in registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []Rule
	byName map[string]int
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]int),
	}
}

// Register appends a rule to the registry.
// If a rule with the same name already exists, it is replaced in place.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.byName[rule.Name()]; ok {
		r.order[idx] = rule
		return
	}
	r.byName[rule.Name()] = len(r.order)
	r.order = append(r.order, rule)
}

// Rules returns all registered rules in the order they run.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, len(r.order))
	copy(result, r.order)
	return result
}

// Names returns the registered rule names in the order they run.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.order))
	for _, rule := range r.order {
		result = append(result, rule.Name())
	}
	return result
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
