package flowstate

import (
	"context"

	"github.com/rs/zerolog"
)

// Snapshot is any immutable state value carrying a discriminating tag.
// Transitions never mutate a Snapshot; they produce a new one.
type Snapshot interface {
	StateTag() string
}

// Guard decides whether a table-legal transition may proceed. A veto
// (false, nil) keeps the current snapshot without error.
type Guard func(ctx context.Context, from, to Snapshot) (bool, error)

// Hook runs at a fixed point of a transition: state entry, state exit,
// or the transition action between them.
type Hook func(ctx context.Context, from, to Snapshot) error

// Machine drives snapshot-to-snapshot transitions against a Table,
// running any configured guard and hooks along the way. The machine
// itself holds no current state: callers own their snapshots.
type Machine struct {
	table  *Table
	ext    *Context
	log    zerolog.Logger
	guard  Guard
	action Hook
	entry  map[string]Hook
	exit   map[string]Hook
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger configures the Machine with a logger. Default is a no-op
// logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// WithGuard configures a guard consulted before every transition.
func WithGuard(g Guard) Option {
	return func(m *Machine) {
		m.guard = g
	}
}

// WithAction configures the action run between exiting the old state
// and entering the new one.
func WithAction(h Hook) Option {
	return func(m *Machine) {
		m.action = h
	}
}

// WithContext configures the extended-state context shared with hooks.
func WithContext(ext *Context) Option {
	return func(m *Machine) {
		m.ext = ext
	}
}

// NewMachine creates a Machine over a validated table.
func NewMachine(table *Table, opts ...Option) (*Machine, error) {
	if table == nil || len(table.transitions) == 0 {
		return nil, ErrEmptyTable
	}
	m := &Machine{
		table: table,
		ext:   NewContext(),
		log:   zerolog.Nop(),
		entry: make(map[string]Hook),
		exit:  make(map[string]Hook),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Ext returns the machine's extended-state context.
func (m *Machine) Ext() *Context {
	return m.ext
}

// Table returns the machine's transition table.
func (m *Machine) Table() *Table {
	return m.table
}

// OnEntry registers a hook that runs whenever a transition enters the
// tagged state. At most one hook per tag; later calls replace.
func (m *Machine) OnEntry(tag string, h Hook) {
	m.entry[tag] = h
}

// OnExit registers a hook that runs whenever a transition leaves the
// tagged state.
func (m *Machine) OnExit(tag string, h Hook) {
	m.exit[tag] = h
}

// CanTransition reports whether the table permits moving between the
// two snapshots' tags. Pure lookup, no side effects.
func (m *Machine) CanTransition(current, candidate Snapshot) bool {
	return m.table.CanTransition(current.StateTag(), candidate.StateTag())
}

// Transition moves from current to target. It is total-or-noop: on any
// failure the original snapshot is returned unchanged alongside the
// error. Evaluation order follows guard, exit hook, action, entry hook.
func (m *Machine) Transition(ctx context.Context, current, target Snapshot) (Snapshot, error) {
	from, to := current.StateTag(), target.StateTag()

	if !m.table.CanTransition(from, to) {
		m.log.Debug().Str("from", from).Str("to", to).Msg("transition rejected by table")
		return current, &InvalidTransitionError{From: from, To: to}
	}

	if m.guard != nil {
		pass, err := m.guard(ctx, current, target)
		if err != nil {
			return current, err
		}
		if !pass {
			// Guard veto keeps the current snapshot without error.
			m.log.Debug().Str("from", from).Str("to", to).Msg("transition vetoed by guard")
			return current, nil
		}
	}

	if h := m.exit[from]; h != nil {
		if err := h(ctx, current, target); err != nil {
			return current, err
		}
	}

	if m.action != nil {
		if err := m.action(ctx, current, target); err != nil {
			return current, err
		}
	}

	if h := m.entry[to]; h != nil {
		if err := h(ctx, current, target); err != nil {
			return current, err
		}
	}

	m.log.Debug().Str("from", from).Str("to", to).Msg("transition")
	return target, nil
}
