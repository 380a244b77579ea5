package order

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/okenna/flowstate"
	"github.com/okenna/flowstate/emitter"
)

var table = mustTable()

func mustTable() *flowstate.Table {
	t, err := flowstate.NewTableBuilder().
		From(StatusPending).To(StatusConfirmed, StatusCancelled).
		From(StatusConfirmed).To(StatusShipped, StatusCancelled).
		From(StatusShipped).To(StatusDelivered).
		Terminal(StatusDelivered, StatusCancelled).
		Build()
	if err != nil {
		panic(err)
	}
	return t
}

// Table returns the order transition table:
//
//	pending   -> confirmed, cancelled
//	confirmed -> shipped, cancelled
//	shipped   -> delivered
//	delivered, cancelled terminal
func Table() *flowstate.Table {
	return table
}

// Apply transitions an order snapshot by one event, returning the new
// snapshot. It is pure and total-or-noop: a move the table disallows
// returns the input unchanged with an *flowstate.InvalidTransitionError,
// and the input is never mutated.
func Apply(current State, ev Event) (State, error) {
	from, to := current.StateTag(), ev.Target()
	if !table.CanTransition(from, to) {
		return current, &flowstate.InvalidTransitionError{From: from, To: to}
	}

	switch e := ev.(type) {
	case Confirm:
		return Confirmed{OrderID: current.ID()}, nil
	case Ship:
		return Shipped{OrderID: current.ID(), TrackingNumber: e.TrackingNumber}, nil
	case Deliver:
		// Table only admits shipped -> delivered.
		prev, ok := current.(Shipped)
		if !ok {
			unhandled(from)
		}
		return Delivered{OrderID: prev.OrderID, TrackingNumber: prev.TrackingNumber}, nil
	case Cancel:
		return Cancelled{OrderID: current.ID(), Reason: e.Reason}, nil
	default:
		unhandled(to)
		return nil, nil
	}
}

// Events is the closed registry of order notifications: one typed
// emitter per event name, declared once. A handler subscribed to
// Shipped receives exactly the Shipped payload shape, checked at
// compile time.
type Events struct {
	Confirmed *emitter.Emitter[Confirmed]
	Shipped   *emitter.Emitter[Shipped]
	Delivered *emitter.Emitter[Delivered]
	Cancelled *emitter.Emitter[Cancelled]
}

// NewEvents creates the registry. Options apply to every emitter.
func NewEvents(opts ...emitter.Option) *Events {
	return &Events{
		Confirmed: emitter.New[Confirmed]("order.confirmed", opts...),
		Shipped:   emitter.New[Shipped]("order.shipped", opts...),
		Delivered: emitter.New[Delivered]("order.delivered", opts...),
		Cancelled: emitter.New[Cancelled]("order.cancelled", opts...),
	}
}

// Lifecycle tracks one order through its states, publishing a typed
// notification after every successful transition.
type Lifecycle struct {
	log     zerolog.Logger
	events  *Events
	machine *flowstate.Machine
	state   State
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithLogger configures the lifecycle logger. Default no-op.
func WithLogger(log zerolog.Logger) LifecycleOption {
	return func(l *Lifecycle) {
		l.log = log
	}
}

// WithEvents supplies a shared event registry. By default every
// lifecycle gets its own.
func WithEvents(ev *Events) LifecycleOption {
	return func(l *Lifecycle) {
		l.events = ev
	}
}

// NewLifecycle starts tracking from an initial snapshot, usually
// order.New().
func NewLifecycle(initial State, opts ...LifecycleOption) (*Lifecycle, error) {
	l := &Lifecycle{log: zerolog.Nop(), state: initial}
	for _, opt := range opts {
		opt(l)
	}
	if l.events == nil {
		l.events = NewEvents()
	}
	m, err := flowstate.NewMachine(table, flowstate.WithLogger(l.log))
	if err != nil {
		return nil, err
	}
	l.machine = m
	return l, nil
}

// State returns the current snapshot.
func (l *Lifecycle) State() State {
	return l.state
}

// Events returns the notification registry for subscribing.
func (l *Lifecycle) Events() *Events {
	return l.events
}

// Dispatch applies one event. On rejection the tracked state is
// unchanged and the error is returned; on success the new snapshot is
// stored, published, and returned.
func (l *Lifecycle) Dispatch(ctx context.Context, ev Event) (State, error) {
	next, err := Apply(l.state, ev)
	if err != nil {
		l.log.Warn().Err(err).Str("order_id", l.state.ID()).Msg("order event rejected")
		return l.state, err
	}
	got, err := l.machine.Transition(ctx, l.state, next)
	if err != nil {
		return l.state, err
	}
	l.state = got.(State)
	l.publish(l.state)
	return l.state, nil
}

func (l *Lifecycle) publish(s State) {
	var err error
	switch v := s.(type) {
	case Pending:
		// Initial state only; never a transition target.
	case Confirmed:
		err = l.events.Confirmed.Emit(v)
	case Shipped:
		err = l.events.Shipped.Emit(v)
	case Delivered:
		err = l.events.Delivered.Emit(v)
	case Cancelled:
		err = l.events.Cancelled.Emit(v)
	default:
		unhandled(s.StateTag())
	}
	if err != nil {
		l.log.Error().Err(err).Str("order_id", s.ID()).Msg("notification handlers failed")
	}
}
