package dfamin

import "errors"

var (
	// ErrMalformedAutomaton reports an automaton whose start state or transitions reference
	// states that were never declared. Minimization refuses to run on such input.
	ErrMalformedAutomaton = errors.New("malformed automaton")

	// ErrUnreachableBlock reports a transition target that belongs to no block of the partition
	// during reconstruction. It is an internal invariant violation, never an input error.
	ErrUnreachableBlock = errors.New("transition target outside every block")

	ErrDuplicateState      = errors.New("duplicate state name")
	ErrDuplicateTransition = errors.New("conflicting transition for state and symbol")
	ErrUnknownSymbol       = errors.New("symbol not in alphabet")
	ErrParse               = errors.New("parse automaton")
)
