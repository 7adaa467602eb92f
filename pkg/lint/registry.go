package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry maps rule names to rules.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Rule)}
}

// Register adds a rule, replacing any rule with the same name. It panics
// on an incomplete rule, which is a programming error in the rule itself.
func (r *Registry) Register(rule *Rule) {
	if err := rule.validate(); err != nil {
		panic(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[rule.Name] = rule
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Rules returns all registered rules sorted by name.
func (r *Registry) Rules() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Rule, 0, len(r.byName))
	for _, rule := range r.byName {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b *Rule) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return result
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	rules := r.Rules()
	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Name
	}
	return names
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
