package emitter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Subscription identifies one registered handler. Returned by On and
// Once, consumed by Off. The zero value never identifies a handler.
type Subscription uint64

// HandlerError reports a handler that panicked during Emit. Dispatch
// continues past the failed handler; the error is logged and returned
// joined with any others from the same Emit call.
type HandlerError struct {
	Event string
	Sub   Subscription
	Cause error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %d for event %q failed: %v", e.Sub, e.Event, e.Cause)
}

func (e *HandlerError) Unwrap() error {
	return e.Cause
}

type handler[P any] struct {
	id   Subscription
	fn   func(P)
	once bool
}

// Emitter is a synchronous in-process fan-out for one named event with
// payload type P. A closed (name -> payload shape) registry is spelled
// as a struct with one typed Emitter field per event, which gives each
// handler its payload shape at compile time.
//
// Handlers fire in registration order. Dispatch iterates a snapshot of
// the handler list, so On/Off from inside a handler takes effect on
// the next Emit. A handler that re-emits its own event recurses
// unboundedly; that is not guarded against.
type Emitter[P any] struct {
	mu       sync.Mutex
	name     string
	log      zerolog.Logger
	nextID   Subscription
	handlers []handler[P]
}

type options struct {
	log zerolog.Logger
}

// Option configures an Emitter.
type Option func(*options)

// WithLogger configures the logger used to report handler failures.
// Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// New creates an Emitter for the named event.
func New[P any](name string, opts ...Option) *Emitter[P] {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Emitter[P]{name: name, log: o.log}
}

// Name returns the event name given at construction.
func (e *Emitter[P]) Name() string {
	return e.name
}

// On registers fn to run on every future Emit. Handlers for the same
// event fire in registration order.
func (e *Emitter[P]) On(fn func(P)) Subscription {
	return e.register(fn, false)
}

// Once registers fn to run on the next Emit only. After it fires the
// subscription is gone; Off on it afterwards is a no-op.
func (e *Emitter[P]) Once(fn func(P)) Subscription {
	return e.register(fn, true)
}

func (e *Emitter[P]) register(fn func(P), once bool) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.handlers = append(e.handlers, handler[P]{id: e.nextID, fn: fn, once: once})
	return e.nextID
}

// Off removes the handler identified by sub. Removing a subscription
// that is absent, already fired (Once), or already removed is a no-op.
// Other handlers keep their registration order.
func (e *Emitter[P]) Off(sub Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.handlers {
		if h.id == sub {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Len returns the number of currently registered handlers.
func (e *Emitter[P]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// Emit synchronously invokes every registered handler with payload, in
// registration order. Emitting with no handlers registered is a
// successful no-op.
//
// A handler panic is recovered, reported as a HandlerError, and does
// not stop dispatch: the remaining handlers still run. Emit returns
// the joined HandlerErrors, or nil if every handler completed.
func (e *Emitter[P]) Emit(payload P) error {
	e.mu.Lock()
	dispatch := make([]handler[P], len(e.handlers))
	copy(dispatch, e.handlers)
	// Drop one-shot handlers before dispatch so they cannot fire twice
	// even if a handler emits reentrantly.
	kept := e.handlers[:0]
	for _, h := range e.handlers {
		if !h.once {
			kept = append(kept, h)
		}
	}
	e.handlers = kept
	e.mu.Unlock()

	var errs []error
	for _, h := range dispatch {
		if err := e.invoke(h, payload); err != nil {
			e.log.Error().Err(err).Str("event", e.name).Uint64("subscription", uint64(h.id)).Msg("event handler failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Emitter[P]) invoke(h handler[P], payload P) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}
			err = &HandlerError{Event: e.name, Sub: h.id, Cause: cause}
		}
	}()
	h.fn(payload)
	return nil
}
