package flowstate

// TableBuilder provides a fluent API for declaring a transition table
// using state names directly instead of building the map by hand.
type TableBuilder struct {
	transitions map[string][]string
}

// StateRule configures the outgoing transitions of one state.
type StateRule struct {
	b    *TableBuilder
	from string
}

// NewTableBuilder creates an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{transitions: make(map[string][]string)}
}

// From creates or retrieves the rule for a state. Calling From twice
// with the same name appends to the same rule.
func (b *TableBuilder) From(name string) *StateRule {
	if _, ok := b.transitions[name]; !ok {
		b.transitions[name] = nil
	}
	return &StateRule{b: b, from: name}
}

// Terminal declares states with no outgoing transitions.
func (b *TableBuilder) Terminal(names ...string) *TableBuilder {
	for _, name := range names {
		if _, ok := b.transitions[name]; !ok {
			b.transitions[name] = nil
		}
	}
	return b
}

// Build validates the accumulated rules and constructs the Table.
func (b *TableBuilder) Build() (*Table, error) {
	return NewTable(b.transitions)
}

// To appends allowed targets for this rule's state and returns the
// builder for further chaining. Targets must themselves be declared
// (via From or Terminal) before Build.
func (r *StateRule) To(targets ...string) *TableBuilder {
	r.b.transitions[r.from] = append(r.b.transitions[r.from], targets...)
	return r.b
}
