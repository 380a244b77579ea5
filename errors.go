package flowstate

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when a table is built with no states.
	ErrEmptyTable = errors.New("transition table has no states")

	// ErrUnknownState is returned when a transition names a state the
	// table never declared.
	ErrUnknownState = errors.New("state not declared in transition table")
)

// InvalidTransitionError reports an attempted move the transition table
// does not allow. It carries both tags for diagnostics.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}
