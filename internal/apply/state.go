// Package apply assembles the job-application form and drives the apply
// modal through its lifecycle.
//
// Modal state graph:
//
//	LOADING ──► READY ──► SUBMITTING ──► SUCCESS
//	              ▲            │
//	              └── FAILED ◄─┘
//
// SUCCESS is terminal: the modal closes and the job is remembered as applied.
// FAILED keeps the entered values so the applicant can retry.
package apply

import "fmt"

// State is the lifecycle position of an apply modal.
type State string

const (
	StateLoading    State = "LOADING"
	StateReady      State = "READY"
	StateSubmitting State = "SUBMITTING"
	StateSuccess    State = "SUCCESS"
	StateFailed     State = "FAILED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[State][]State{
	StateLoading:    {StateReady},
	StateReady:      {StateSubmitting},
	StateSubmitting: {StateSuccess, StateFailed},
	StateFailed:     {StateReady},
	// SUCCESS is terminal
}

// IsTransitionAllowed reports whether from → to is permitted.
func IsTransitionAllowed(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s State) bool { return len(validTransitions[s]) == 0 }

// TransitionError is returned when an operation needs a transition the state
// machine forbids, e.g. a second submission while one is in flight.
type TransitionError struct {
	From, To State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s → %s is not allowed", e.From, e.To)
}
