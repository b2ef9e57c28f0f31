package validator

// Registry holds rules by key, preserving registration order.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a rule, replacing any rule with the same key.
func (r *Registry) Register(rule Rule) {
	if i, ok := r.index[rule.RuleKey()]; ok {
		r.rules[i] = rule
		return
	}
	r.index[rule.RuleKey()] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	i, ok := r.index[key]
	if !ok {
		return nil
	}
	return r.rules[i]
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}
