package engine

import "fmt"

// State is the search lifecycle phase
type State uint8

const (
	Idle State = iota
	Running
	Found
	Exhausted
)

var stateNames = [...]string{
	Idle:      "idle",
	Running:   "running",
	Found:     "found",
	Exhausted: "exhausted",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Terminal reports whether no further transitions are possible
func (s State) Terminal() bool {
	return s == Found || s == Exhausted
}

// validTransitions maps each state to the states it may move to
// Running -> Running is a step and is not modelled as a transition
var validTransitions = map[State][]State{
	Idle:    {Running},
	Running: {Found, Exhausted},
}

// CanTransition checks if a state transition is valid
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
