package dfamin

import (
	"fmt"
	"strconv"
	"strings"
)

// Namer picks the display name of the state built from the index'th block. members holds the source
// names of the block in ascending state order.
type Namer func(index int, members []string) string

// SequentialNames names states q0, q1, ... in block order.
func SequentialNames(index int, _ []string) string {
	return "q" + strconv.Itoa(index)
}

// MemberNames names a state after the source states it merges, e.g. {s1,s2}. Names that are empty or
// contain a comma, brace or double quote are written as Go-quoted strings, so distinct blocks never share
// a name.
func MemberNames(_ int, members []string) string {
	parts := make([]string, len(members))
	for i, name := range members {
		if name == "" || strings.ContainsAny(name, ",{}\"") {
			name = strconv.Quote(name)
		}
		parts[i] = name
	}
	return "{" + strings.Join(parts, ",") + "}"
}

type rebuildOption struct {
	namer Namer
}

type RebuildOption func(*rebuildOption)

func WithNamer(namer Namer) RebuildOption {
	return func(o *rebuildOption) {
		if namer != nil {
			o.namer = namer
		}
	}
}

func newRebuildOption(opts ...RebuildOption) *rebuildOption {
	o := &rebuildOption{namer: SequentialNames}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Rebuild
// Builds a new automaton whose states are the blocks of p, in block order. A state accepts iff a member of
// its block accepts, the start state is the block holding the start state of a, and transitions follow the
// smallest member of each block. The result shares no storage with a.
//
// Returns ErrUnreachableBlock if a transition lands outside every block, and ErrMalformedAutomaton if p is
// otherwise not a partition of the states of a.
func Rebuild(a *Automaton, p *Partition, opts ...RebuildOption) (*Automaton, error) {
	o := newRebuildOption(opts...)

	numStates := a.GetNumStates()
	if p.NumStates() != numStates {
		return nil, fmt.Errorf("rebuild: %w: partition covers %d states, automaton has %d",
			ErrMalformedAutomaton, p.NumStates(), numStates)
	}

	result := NewAutomatonV1(p.Len(), a.alphabet...)
	if numStates == 0 {
		return result, nil
	}

	for i, b := range p.blocks {
		members := make([]string, len(b))
		accept := false
		for j, s := range b {
			members[j] = a.Name(s)
			accept = accept || a.IsAccept(s)
		}
		state, err := result.CreateState(o.namer(i, members))
		if err != nil {
			return nil, fmt.Errorf("rebuild: block %d: %w", i, err)
		}
		result.SetAccept(state, accept)
	}

	start := p.BlockOf(a.Start())
	if start == -1 {
		return nil, fmt.Errorf("rebuild: %w: start state %q in no block", ErrMalformedAutomaton, a.Name(a.Start()))
	}
	if err := result.SetStart(start); err != nil {
		return nil, fmt.Errorf("rebuild: %w", err)
	}

	for i, b := range p.blocks {
		rep := b.Min()
		for label, symbol := range a.alphabet {
			dest := a.Step(rep, label)
			if dest == -1 {
				continue
			}
			target := p.BlockOf(dest)
			if target == -1 {
				return nil, fmt.Errorf("rebuild: %w: %s -%s-> %s",
					ErrUnreachableBlock, a.Name(rep), symbol, a.Name(dest))
			}
			if err := result.AddTransition(i, symbol, target); err != nil {
				return nil, fmt.Errorf("rebuild: %w", err)
			}
		}
	}

	// States that neither start nor any transition refers to must still belong to a block.
	if err := p.Validate(a); err != nil {
		return nil, fmt.Errorf("rebuild: %w", err)
	}

	return result, nil
}

// MinimizeAutomaton Minimizes a and builds the resulting automaton.
func MinimizeAutomaton(a *Automaton, opts ...RebuildOption) (*Automaton, error) {
	p, err := Minimize(a)
	if err != nil {
		return nil, err
	}
	return Rebuild(a, p, opts...)
}
