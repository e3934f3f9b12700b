package dfamin

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Minimize
// Computes the coarsest stable partition of the states of a using partition refinement. States start in
// two blocks, accept and non-accept, and a block is split whenever two of its members move into different
// blocks (or one moves and the other does not) on some symbol. Blocks of the returned partition are ordered
// by their smallest member.
//
// Returns ErrMalformedAutomaton if a has no start state or a dangling transition. An automaton without
// states yields an empty partition.
func Minimize(a *Automaton) (*Partition, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("minimize: %w", err)
	}

	numStates := a.GetNumStates()
	p := newPartition(numStates)
	if numStates == 0 {
		return p, nil
	}

	accept := make(Block, 0, numStates)
	reject := make(Block, 0, numStates)
	for _, s := range a.States() {
		if a.IsAccept(s) {
			accept = append(accept, s)
		} else {
			reject = append(reject, s)
		}
	}

	r := &refiner{
		a:      a,
		p:      p,
		preds:  predecessors(a),
		queued: bitset.New(uint(numStates)),
	}
	for _, b := range []Block{reject, accept} {
		if len(b) > 0 {
			r.enqueue(p.addBlock(b))
		}
	}

	for len(r.worklist) > 0 {
		id := r.worklist[0]
		r.worklist = r.worklist[1:]
		r.queued.Clear(uint(id))
		r.refine(id)
	}

	p.canonicalize()
	return p, nil
}

type refiner struct {
	a *Automaton
	p *Partition

	// preds[s] lists every state with a transition into s, on any symbol.
	preds [][]int

	// Block ids pending re-examination, FIFO, and their membership bits.
	worklist []int
	queued   *bitset.BitSet
}

func (r *refiner) enqueue(id int) {
	if r.queued.Test(uint(id)) {
		return
	}
	r.queued.Set(uint(id))
	r.worklist = append(r.worklist, id)
}

// refine splits block id on the first symbol that tells its members apart.
func (r *refiner) refine(id int) {
	b := r.p.blocks[id]
	if len(b) < 2 {
		return
	}
	numSymbols := len(r.a.alphabet)
	for label := 0; label < numSymbols; label++ {
		groups := r.groupByTarget(b, label)
		if len(groups) < 2 {
			continue
		}

		for _, sub := range r.p.split(id, groups) {
			r.enqueue(sub)
		}
		// Blocks that move into b may now reach different sub-blocks.
		for _, s := range b {
			for _, pred := range r.preds[s] {
				r.enqueue(r.p.blockOf[pred])
			}
		}
		return
	}
}

// groupByTarget partitions members by the block their transition on label currently lands in. States
// with no move share the group keyed -1. Groups keep the ascending order of members and appear in order
// of their first member.
func (r *refiner) groupByTarget(members Block, label int) []Block {
	index := make(map[int]int)
	groups := make([]Block, 0, 2)
	for _, s := range members {
		target := r.p.BlockOf(r.a.Step(s, label))
		g, ok := index[target]
		if !ok {
			g = len(groups)
			index[target] = g
			groups = append(groups, make(Block, 0, len(members)))
		}
		groups[g] = append(groups[g], s)
	}
	return groups
}

// predecessors inverts the transition table of a.
func predecessors(a *Automaton) [][]int {
	numStates := a.GetNumStates()
	numSymbols := len(a.alphabet)
	preds := make([][]int, numStates)
	for s := 0; s < numStates; s++ {
		for label := 0; label < numSymbols; label++ {
			if dest := a.Step(s, label); dest != -1 {
				preds[dest] = append(preds[dest], s)
			}
		}
	}
	return preds
}
