package flowstate

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Table is the closed mapping of state tags to the targets they may
// move to. Terminal states are declared with an empty target list.
// A Table is immutable after construction and safe for concurrent reads.
type Table struct {
	transitions map[string][]string
}

// NewTable builds and validates a table from a tag -> allowed targets
// map. The input map is copied; later mutation of it does not affect
// the table.
func NewTable(transitions map[string][]string) (*Table, error) {
	t := &Table{transitions: make(map[string][]string, len(transitions))}
	for from, targets := range transitions {
		t.transitions[from] = append([]string(nil), targets...)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// validate checks the table is non-empty and every transition target is
// itself a declared state.
func (t *Table) validate() error {
	if len(t.transitions) == 0 {
		return ErrEmptyTable
	}
	for from, targets := range t.transitions {
		for _, to := range targets {
			if _, ok := t.transitions[to]; !ok {
				return fmt.Errorf("state %q has transition to %q: %w", from, to, ErrUnknownState)
			}
		}
	}
	return nil
}

// CanTransition reports whether the table permits moving from one tag
// to another. Unknown tags never permit anything.
func (t *Table) CanTransition(from, to string) bool {
	for _, target := range t.transitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Has reports whether tag is a declared state.
func (t *Table) Has(tag string) bool {
	_, ok := t.transitions[tag]
	return ok
}

// Terminal reports whether tag is declared and has no outgoing
// transitions.
func (t *Table) Terminal(tag string) bool {
	targets, ok := t.transitions[tag]
	return ok && len(targets) == 0
}

// Targets returns a copy of the allowed targets for tag, in declaration
// order. Nil for unknown tags.
func (t *Table) Targets(tag string) []string {
	targets, ok := t.transitions[tag]
	if !ok {
		return nil
	}
	return append([]string(nil), targets...)
}

// States returns all declared tags, sorted.
func (t *Table) States() []string {
	tags := make([]string, 0, len(t.transitions))
	for tag := range t.transitions {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// tableFile is the on-disk declarative form:
//
//	transitions:
//	  pending: [confirmed, cancelled]
//	  confirmed: [shipped, cancelled]
//	  shipped: [delivered]
//	  delivered: []
//	  cancelled: []
type tableFile struct {
	Transitions map[string][]string `yaml:"transitions"`
}

// ParseTable decodes a YAML table document and validates it.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return NewTable(f.Transitions)
}

// LoadTable reads and parses a YAML table file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseTable(data)
}
