package dfamin

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Block is a non-empty, ascending set of state identifiers conjectured to be equivalent.
type Block []int

// Min returns the smallest member, or -1 for an empty block.
func (b Block) Min() int {
	if len(b) == 0 {
		return -1
	}
	return b[0]
}

func (b Block) Contains(state int) bool {
	_, ok := slices.BinarySearch(b, state)
	return ok
}

// Partition is a collection of disjoint blocks covering every state of an automaton. blockOf is the
// authoritative state to block index used for every target-block lookup during refinement.
type Partition struct {
	blocks  []Block
	blockOf []int
}

func newPartition(numStates int) *Partition {
	blockOf := make([]int, numStates)
	for i := range blockOf {
		blockOf[i] = -1
	}
	return &Partition{blockOf: blockOf}
}

// NewPartition builds a partition of numStates states from explicit blocks. Members are sorted; the
// result is not checked against any automaton, use Validate for that.
func NewPartition(numStates int, blocks ...[]int) (*Partition, error) {
	p := newPartition(numStates)
	for _, members := range blocks {
		if len(members) == 0 {
			return nil, fmt.Errorf("%w: empty block", ErrMalformedAutomaton)
		}
		for _, s := range members {
			if s < 0 || s >= numStates {
				return nil, fmt.Errorf("%w: state %d out of range", ErrMalformedAutomaton, s)
			}
			if p.blockOf[s] != -1 {
				return nil, fmt.Errorf("%w: state %d in more than one block", ErrMalformedAutomaton, s)
			}
		}
		p.addBlock(slices.Clone(members))
	}
	return p, nil
}

// addBlock appends a block and points its members at it.
func (p *Partition) addBlock(members Block) int {
	slices.Sort(members)
	id := len(p.blocks)
	p.blocks = append(p.blocks, members)
	for _, s := range members {
		p.blockOf[s] = id
	}
	return id
}

// split replaces block id with groups. The first group keeps id, the rest are appended. Returns the ids
// of all resulting blocks.
func (p *Partition) split(id int, groups []Block) []int {
	ids := make([]int, 0, len(groups))
	p.blocks[id] = groups[0]
	ids = append(ids, id)
	for _, g := range groups[1:] {
		ids = append(ids, p.addBlock(g))
	}
	return ids
}

// canonicalize orders blocks by their smallest member and renumbers blockOf to match.
func (p *Partition) canonicalize() {
	slices.SortFunc(p.blocks, func(x, y Block) int {
		return x.Min() - y.Min()
	})
	for id, b := range p.blocks {
		for _, s := range b {
			p.blockOf[s] = id
		}
	}
}

// Len How many blocks this partition has.
func (p *Partition) Len() int {
	return len(p.blocks)
}

// NumStates How many states this partition covers.
func (p *Partition) NumStates() int {
	return len(p.blockOf)
}

// Block returns a copy of the i'th block.
func (p *Partition) Block(i int) Block {
	return slices.Clone(p.blocks[i])
}

// Blocks returns copies of all blocks in order.
func (p *Partition) Blocks() []Block {
	blocks := make([]Block, len(p.blocks))
	for i, b := range p.blocks {
		blocks[i] = slices.Clone(b)
	}
	return blocks
}

// BlockOf returns the index of the block holding state, or -1 if no block holds it.
func (p *Partition) BlockOf(state int) int {
	if state < 0 || state >= len(p.blockOf) {
		return -1
	}
	return p.blockOf[state]
}

// Validate checks the partition invariant against a: blocks are non-empty and pairwise disjoint, and
// together they cover exactly the states of a.
func (p *Partition) Validate(a *Automaton) error {
	numStates := a.GetNumStates()
	if len(p.blockOf) != numStates {
		return fmt.Errorf("%w: partition covers %d states, automaton has %d",
			ErrMalformedAutomaton, len(p.blockOf), numStates)
	}
	seen := bitset.New(uint(numStates))
	for id, b := range p.blocks {
		if len(b) == 0 {
			return fmt.Errorf("%w: block %d is empty", ErrMalformedAutomaton, id)
		}
		for _, s := range b {
			if s < 0 || s >= numStates {
				return fmt.Errorf("%w: block %d holds unknown state %d", ErrMalformedAutomaton, id, s)
			}
			if seen.Test(uint(s)) {
				return fmt.Errorf("%w: state %d in more than one block", ErrMalformedAutomaton, s)
			}
			if p.blockOf[s] != id {
				return fmt.Errorf("%w: state %d indexed to block %d, found in %d",
					ErrMalformedAutomaton, s, p.blockOf[s], id)
			}
			seen.Set(uint(s))
		}
	}
	if int(seen.Count()) != numStates {
		return fmt.Errorf("%w: %d of %d states in no block",
			ErrMalformedAutomaton, numStates-int(seen.Count()), numStates)
	}
	return nil
}

// IsStable Returns true if, for every block and every symbol, all members move into the same block or
// all have no move.
func (p *Partition) IsStable(a *Automaton) bool {
	numSymbols := len(a.alphabet)
	for _, b := range p.blocks {
		for label := 0; label < numSymbols; label++ {
			want := p.BlockOf(a.Step(b[0], label))
			for _, s := range b[1:] {
				if p.BlockOf(a.Step(s, label)) != want {
					return false
				}
			}
		}
	}
	return true
}

// IsAcceptConsistent Returns true if no block mixes accept and non-accept states.
func (p *Partition) IsAcceptConsistent(a *Automaton) bool {
	for _, b := range p.blocks {
		accept := a.IsAccept(b[0])
		for _, s := range b[1:] {
			if a.IsAccept(s) != accept {
				return false
			}
		}
	}
	return true
}

func (p *Partition) String() string {
	var sb strings.Builder
	for i, b := range p.blocks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('{')
		for j, s := range b {
			if j > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", s)
		}
		sb.WriteByte('}')
	}
	return sb.String()
}
