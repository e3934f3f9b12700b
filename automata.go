package dfamin

import "strconv"

type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new automaton over alphabet with the empty language: one non-accepting start state and no
// transitions.
func (*Automata) MakeEmpty(alphabet ...string) *Automaton {
	a := NewAutomaton(alphabet...)
	s, _ := a.CreateState("empty")
	_ = a.SetStart(s)
	return a
}

// MakeEmptyString
// Returns a new automaton over alphabet that accepts only the empty string.
func (*Automata) MakeEmptyString(alphabet ...string) *Automaton {
	a := NewAutomaton(alphabet...)
	s, _ := a.CreateState("eps")
	a.SetAccept(s, true)
	_ = a.SetStart(s)
	return a
}

// MakeAnyString
// Returns a new automaton that accepts every string over alphabet.
func (*Automata) MakeAnyString(alphabet ...string) (*Automaton, error) {
	a := NewAutomaton(alphabet...)
	s, err := a.CreateState("any")
	if err != nil {
		return nil, err
	}
	a.SetAccept(s, true)
	if err := a.SetStart(s); err != nil {
		return nil, err
	}
	for _, symbol := range a.alphabet {
		if err := a.AddTransition(s, symbol, s); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// MakeString
// Returns a new automaton over alphabet that accepts exactly word. The states are named w0..wN, where wN
// accepts.
func (*Automata) MakeString(alphabet []string, word ...string) (*Automaton, error) {
	a := NewAutomatonV1(len(word)+1, alphabet...)
	prev, err := a.CreateState("w0")
	if err != nil {
		return nil, err
	}
	if err := a.SetStart(prev); err != nil {
		return nil, err
	}
	for i, symbol := range word {
		next, err := a.CreateState("w" + strconv.Itoa(i+1))
		if err != nil {
			return nil, err
		}
		if err := a.AddTransition(prev, symbol, next); err != nil {
			return nil, err
		}
		prev = next
	}
	a.SetAccept(prev, true)
	return a, nil
}
