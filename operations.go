package dfamin

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// IsEmptyAutomaton
// Returns true if the given automaton accepts no strings.
func IsEmptyAutomaton(a *Automaton) bool {
	if a.GetNumStates() == 0 || a.Start() == -1 {
		// Common case: no states
		return true
	}
	if a.getAcceptStates().Count() == 0 {
		return true
	}
	if a.IsAccept(a.Start()) {
		// Accepts the empty string
		return false
	}

	live := getLiveStatesFromInitial(a)
	return !live.Intersection(a.getAcceptStates()).Any()
}

// HasUnreachableStates Returns true if some state cannot be reached from the start state.
func HasUnreachableStates(a *Automaton) bool {
	return int(getLiveStatesFromInitial(a).Count()) < a.GetNumStates()
}

// RemoveUnreachable
// Returns a copy of a without the states that cannot be reached from the start state. Surviving states keep
// their names and relative order.
func RemoveUnreachable(a *Automaton) (*Automaton, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("remove unreachable: %w", err)
	}

	numStates := a.GetNumStates()
	liveSet := getLiveStatesFromInitial(a)

	mp := make([]int, numStates)
	result := NewAutomatonV1(int(liveSet.Count()), a.alphabet...)
	for i := 0; i < numStates; i++ {
		mp[i] = -1
		if liveSet.Test(uint(i)) {
			state, err := result.CreateState(a.Name(i))
			if err != nil {
				return nil, err
			}
			mp[i] = state
			result.SetAccept(state, a.IsAccept(i))
		}
	}
	if numStates == 0 {
		return result, nil
	}
	if err := result.SetStart(mp[a.Start()]); err != nil {
		return nil, err
	}

	for i := 0; i < numStates; i++ {
		if mp[i] == -1 {
			continue
		}
		for label, symbol := range a.alphabet {
			if dest := a.Step(i, label); dest != -1 {
				if err := result.AddTransition(mp[i], symbol, mp[dest]); err != nil {
					return nil, err
				}
			}
		}
	}
	return result, nil
}

func getLiveStatesFromInitial(a *Automaton) *bitset.BitSet {
	numStates := a.GetNumStates()
	live := bitset.New(uint(numStates))
	if numStates == 0 || a.Start() == -1 {
		return live
	}
	workList := make([]int, 0)
	live.Set(uint(a.Start()))
	workList = append(workList, a.Start())

	numSymbols := len(a.alphabet)
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for label := 0; label < numSymbols; label++ {
			dest := a.Step(s, label)
			if dest != -1 && !live.Test(uint(dest)) {
				live.Set(uint(dest))
				workList = append(workList, dest)
			}
		}
	}

	return live
}

// Isomorphic
// Returns true if a and b have the same alphabet and are identical up to renaming of the states reachable
// from their start states: a bijection pairs start with start, preserves acceptance and maps every
// transition onto a transition with the same symbol.
func Isomorphic(a, b *Automaton) bool {
	if len(a.alphabet) != len(b.alphabet) {
		return false
	}
	for _, symbol := range a.alphabet {
		if _, ok := b.symbols[symbol]; !ok {
			return false
		}
	}
	if a.GetNumStates() == 0 || b.GetNumStates() == 0 {
		return a.GetNumStates() == b.GetNumStates()
	}
	if a.Start() == -1 || b.Start() == -1 {
		return a.Start() == b.Start()
	}

	// toB[s] is the state of b paired with state s of a, toA the inverse.
	toB := make(map[int]int)
	toA := make(map[int]int)
	pair := func(x, y int) bool {
		if bx, ok := toB[x]; ok {
			return bx == y
		}
		if _, ok := toA[y]; ok {
			return false
		}
		toB[x], toA[y] = y, x
		return true
	}

	pair(a.Start(), b.Start())
	workList := []int{a.Start()}
	for len(workList) > 0 {
		x := workList[0]
		workList = workList[1:]
		y := toB[x]
		if a.IsAccept(x) != b.IsAccept(y) {
			return false
		}
		for _, symbol := range a.alphabet {
			dx, okx := a.Transition(x, symbol)
			dy, oky := b.Transition(y, symbol)
			if okx != oky {
				return false
			}
			if !okx {
				continue
			}
			_, seen := toB[dx]
			if !pair(dx, dy) {
				return false
			}
			if !seen {
				workList = append(workList, dx)
			}
		}
	}
	return int(getLiveStatesFromInitial(b).Count()) == len(toA)
}
