// Package run tracks the lifecycle of a bootstrap-and-seed run.
package run

import "fmt"

// State is a stage in the run lifecycle. Runs move strictly forward:
// Unauthenticated → Authenticated → Provisioned → Seeding → Complete.
// Aborted is terminal and reachable from any non-terminal state; an aborted
// run cannot resume and must restart from Unauthenticated.
type State int

const (
	Unauthenticated State = iota
	Authenticated
	Provisioned
	Seeding
	Complete
	Aborted
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case Provisioned:
		return "provisioned"
	case Seeding:
		return "seeding"
	case Complete:
		return "complete"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) terminal() bool {
	return s == Complete || s == Aborted
}

// Tracker enforces the forward-only run lifecycle.
type Tracker struct {
	state State
}

// NewTracker starts a run in Unauthenticated.
func NewTracker() *Tracker {
	return &Tracker{state: Unauthenticated}
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// Advance moves to the next stage. Only the immediate successor is legal;
// skipping stages or leaving a terminal state is rejected.
func (t *Tracker) Advance(next State) error {
	if t.state.terminal() {
		return fmt.Errorf("run is %s; cannot advance to %s", t.state, next)
	}
	if next != t.state+1 || next == Aborted {
		return fmt.Errorf("illegal transition %s → %s", t.state, next)
	}
	t.state = next
	return nil
}

// Abort marks the run failed. Aborting a terminal run is rejected.
func (t *Tracker) Abort() error {
	if t.state.terminal() {
		return fmt.Errorf("run is %s; cannot abort", t.state)
	}
	t.state = Aborted
	return nil
}
