// Package emitter provides a typed, synchronous publish/subscribe
// primitive: one Emitter per event name, with the payload shape fixed
// by the type parameter.
//
// Ordering guarantees:
//  1. Handlers fire in registration order.
//  2. Each Emit dispatches to a snapshot of the handler list;
//     registrations and removals made during dispatch apply to the
//     next Emit.
//  3. A Once handler fires at most once across all Emits.
//
// This is an in-process fan-out, not a durable message bus: no retry,
// no backpressure, no delivery guarantee beyond the synchronous call.
package emitter
