// Package flowstate implements a small transition-table state machine
// for tagged, immutable state snapshots. Tables are declared in code
// via TableBuilder or loaded from YAML; Machine enforces them with
// optional guards and entry/exit hooks.
//
// The companion emitter package provides the typed publish/subscribe
// half of the pair, and the order package shows both in use on an
// order-processing lifecycle.
package flowstate
