package dfamin

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Automaton Represents a deterministic finite automaton and all its states and transitions. States are
// integers handed out by CreateState in declaration order and are distinct from their display names.
// Mark a state as an accept state using SetAccept and pick the initial state with SetStart. Transitions
// form a partial function: a (state, symbol) pair has at most one destination, and a missing entry
// means "no move".
type Automaton struct {
	// Ordered symbols; the position of a symbol is its index in every transition row.
	alphabet []string
	symbols  map[string]int

	// Display name per state, and the reverse lookup used by the loader.
	names      []string
	stateIndex map[string]int

	// Initial state, or -1 until SetStart is called.
	start int

	isAccept *bitset.BitSet

	// Packed table of len(names) rows by len(alphabet) columns. Each slot holds the destination state
	// or -1 if the state has no transition on that symbol.
	transitions []int

	numTransitions int
}

func NewAutomaton(alphabet ...string) *Automaton {
	return NewAutomatonV1(2, alphabet...)
}

// NewAutomatonV1 creates an automaton sized for numStates states. Duplicate symbols collapse onto their
// first occurrence.
func NewAutomatonV1(numStates int, alphabet ...string) *Automaton {
	a := &Automaton{
		alphabet:    make([]string, 0, len(alphabet)),
		symbols:     make(map[string]int, len(alphabet)),
		names:       make([]string, 0, numStates),
		stateIndex:  make(map[string]int, numStates),
		start:       -1,
		isAccept:    bitset.New(uint(numStates)),
		transitions: make([]int, 0, numStates*len(alphabet)),
	}
	for _, symbol := range alphabet {
		if _, ok := a.symbols[symbol]; ok {
			continue
		}
		a.symbols[symbol] = len(a.alphabet)
		a.alphabet = append(a.alphabet, symbol)
	}
	return a
}

// CreateState Create a new state with the given display name.
func (a *Automaton) CreateState(name string) (int, error) {
	if _, ok := a.stateIndex[name]; ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateState, name)
	}
	state := len(a.names)
	a.names = append(a.names, name)
	a.stateIndex[name] = state
	a.transitions = grow(a.transitions, (state+1)*len(a.alphabet), -1)
	return state, nil
}

// SetAccept Set or clear this state as an accept state.
func (a *Automaton) SetAccept(state int, accept bool) {
	if !a.hasState(state) {
		return
	}
	a.isAccept.SetTo(uint(state), accept)
}

// SetStart marks state as the initial state.
func (a *Automaton) SetStart(state int) error {
	if !a.hasState(state) {
		return fmt.Errorf("%w: start state %d not declared", ErrMalformedAutomaton, state)
	}
	a.start = state
	return nil
}

// AddTransition Add a transition from source to dest on symbol. Adding the same transition twice is a
// no-op; a second, different destination for the same (source, symbol) pair is rejected.
func (a *Automaton) AddTransition(source int, symbol string, dest int) error {
	label, ok := a.symbols[symbol]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	if !a.hasState(source) {
		return fmt.Errorf("%w: source state %d not declared", ErrMalformedAutomaton, source)
	}
	if !a.hasState(dest) {
		return fmt.Errorf("%w: dest state %d not declared", ErrMalformedAutomaton, dest)
	}

	slot := a.slot(source, label)
	switch current := a.transitions[slot]; current {
	case -1:
		a.transitions[slot] = dest
		a.numTransitions++
	case dest:
	default:
		return fmt.Errorf("%w: %s -%s-> %s already goes to %s",
			ErrDuplicateTransition, a.names[source], symbol, a.names[dest], a.names[current])
	}
	return nil
}

// Transition Returns the destination of state on symbol, or false if there is no move. Unknown symbols
// and undeclared states never move.
func (a *Automaton) Transition(state int, symbol string) (int, bool) {
	label, ok := a.symbols[symbol]
	if !ok {
		return -1, false
	}
	dest := a.Step(state, label)
	return dest, dest != -1
}

// Step Performs lookup in transitions by symbol index.
// Returns: destination state, -1 if no matching outgoing transition
func (a *Automaton) Step(state, label int) int {
	if !a.hasState(state) || label < 0 || label >= len(a.alphabet) {
		return -1
	}
	return a.transitions[a.slot(state, label)]
}

// IsAccept Returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return a.hasState(state) && a.isAccept.Test(uint(state))
}

// States Returns all state identifiers in declaration order.
func (a *Automaton) States() []int {
	states := make([]int, len(a.names))
	for i := range states {
		states[i] = i
	}
	return states
}

// AcceptStates Returns the accept states in ascending order.
func (a *Automaton) AcceptStates() []int {
	accept := make([]int, 0, a.isAccept.Count())
	for i, ok := a.isAccept.NextSet(0); ok && int(i) < len(a.names); i, ok = a.isAccept.NextSet(i + 1) {
		accept = append(accept, int(i))
	}
	return accept
}

// Returns accept states. If the bit is set then that state is an accept state.
func (a *Automaton) getAcceptStates() *bitset.BitSet {
	return a.isAccept
}

func (a *Automaton) Start() int {
	return a.start
}

// Alphabet Returns a copy of the ordered alphabet.
func (a *Automaton) Alphabet() []string {
	return append([]string(nil), a.alphabet...)
}

func (a *Automaton) SymbolIndex(symbol string) (int, bool) {
	label, ok := a.symbols[symbol]
	return label, ok
}

func (a *Automaton) Name(state int) string {
	if !a.hasState(state) {
		return ""
	}
	return a.names[state]
}

func (a *Automaton) StateByName(name string) (int, bool) {
	state, ok := a.stateIndex[name]
	return state, ok
}

// GetNumStates How many states this automaton has.
func (a *Automaton) GetNumStates() int {
	return len(a.names)
}

// GetNumTransitions How many transitions this automaton has.
func (a *Automaton) GetNumTransitions() int {
	return a.numTransitions
}

// GetNumTransitionsWithState How many transitions leave this state.
func (a *Automaton) GetNumTransitionsWithState(state int) int {
	count := 0
	for label := range a.alphabet {
		if a.Step(state, label) != -1 {
			count++
		}
	}
	return count
}

// IsDeterministic Returns true if this automaton is deterministic. The transition table cannot hold two
// destinations for one label, so this always holds.
func (a *Automaton) IsDeterministic() bool {
	return true
}

// Validate reports ErrMalformedAutomaton if a non-empty automaton has no declared start state or a
// transition points outside the declared states.
func (a *Automaton) Validate() error {
	numStates := len(a.names)
	if numStates == 0 {
		return nil
	}
	if !a.hasState(a.start) {
		return fmt.Errorf("%w: start state not declared", ErrMalformedAutomaton)
	}
	if len(a.transitions) != numStates*len(a.alphabet) {
		return fmt.Errorf("%w: transition table holds %d slots for %d states",
			ErrMalformedAutomaton, len(a.transitions), numStates)
	}
	for i, dest := range a.transitions {
		if dest != -1 && !a.hasState(dest) {
			return fmt.Errorf("%w: %s -%s-> undeclared state %d",
				ErrMalformedAutomaton, a.names[i/len(a.alphabet)], a.alphabet[i%len(a.alphabet)], dest)
		}
	}
	return nil
}

func (a *Automaton) String() string {
	var sb strings.Builder
	_ = Write(&sb, a)
	return sb.String()
}

func (a *Automaton) hasState(state int) bool {
	return state >= 0 && state < len(a.names)
}

func (a *Automaton) slot(state, label int) int {
	return state*len(a.alphabet) + label
}
