// Package order models an order-processing lifecycle as a
// discriminated union: a closed set of state variants sharing one tag,
// each carrying only the fields valid for that state, driven by an
// explicit transition table.
package order

import (
	"fmt"

	"github.com/google/uuid"
)

// State tags. These are the discriminant values; the Go variant set is
// closed by the unexported marker method on State.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// State is the sealed union of order snapshots. Exactly one variant
// holds at a time; a value cannot mix fields from two variants.
// Snapshots are immutable: transitions build a new value.
type State interface {
	StateTag() string
	ID() string
	sealed()
}

// Pending is the initial state of every order.
type Pending struct {
	OrderID string
}

// Confirmed means payment went through and the order awaits shipment.
type Confirmed struct {
	OrderID string
}

// Shipped carries the tracking number assigned at dispatch.
type Shipped struct {
	OrderID        string
	TrackingNumber string
}

// Delivered is terminal. It keeps the tracking number for reference.
type Delivered struct {
	OrderID        string
	TrackingNumber string
}

// Cancelled is terminal and records why.
type Cancelled struct {
	OrderID string
	Reason  string
}

func (s Pending) StateTag() string   { return StatusPending }
func (s Confirmed) StateTag() string { return StatusConfirmed }
func (s Shipped) StateTag() string   { return StatusShipped }
func (s Delivered) StateTag() string { return StatusDelivered }
func (s Cancelled) StateTag() string { return StatusCancelled }

func (s Pending) ID() string   { return s.OrderID }
func (s Confirmed) ID() string { return s.OrderID }
func (s Shipped) ID() string   { return s.OrderID }
func (s Delivered) ID() string { return s.OrderID }
func (s Cancelled) ID() string { return s.OrderID }

func (Pending) sealed()   {}
func (Confirmed) sealed() {}
func (Shipped) sealed()   {}
func (Delivered) sealed() {}
func (Cancelled) sealed() {}

// New mints a fresh order in the pending state.
func New() Pending {
	return Pending{OrderID: uuid.NewString()}
}

// Describe renders a one-line human summary of a snapshot. The type
// switch is exhaustive over the sealed variant set; the default branch
// stands in for an unreachable-value assertion and panics loudly if a
// new variant is ever left unhandled.
func Describe(s State) string {
	switch v := s.(type) {
	case Pending:
		return fmt.Sprintf("order %s is pending", v.OrderID)
	case Confirmed:
		return fmt.Sprintf("order %s is confirmed", v.OrderID)
	case Shipped:
		return fmt.Sprintf("order %s shipped with tracking %s", v.OrderID, v.TrackingNumber)
	case Delivered:
		return fmt.Sprintf("order %s delivered (tracking %s)", v.OrderID, v.TrackingNumber)
	case Cancelled:
		return fmt.Sprintf("order %s cancelled: %s", v.OrderID, v.Reason)
	default:
		unhandled(s.StateTag())
		return ""
	}
}

// unhandled is the runtime stand-in for a compile-time exhaustiveness
// check. Reaching it means the sealed union grew a variant that some
// switch does not handle.
func unhandled(tag string) {
	panic(fmt.Sprintf("unhandled order variant %q: update every switch over order.State", tag))
}
