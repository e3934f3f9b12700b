package dfamin

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourStateDFA = `a b
s0 s1 s2 s3
s0
s3
s0 a s1
s0 b s2
s1 a s3
s1 b s2
s2 a s3
s2 b s2
s3 a s3
s3 b s3
`

func TestMinimizeMergesEquivalentStates(t *testing.T) {
	a := mustLoad(t, fourStateDFA)

	p, err := Minimize(a)
	require.NoError(t, err)
	assert.Equal(t, []Block{{0}, {1, 2}, {3}}, p.Blocks())
	assert.Equal(t, p.BlockOf(1), p.BlockOf(2))
	assertStablePartition(t, a, p)

	m, err := Rebuild(a, p)
	require.NoError(t, err)
	assert.Equal(t, 3, m.GetNumStates())
	assert.Equal(t, "q0", m.Name(m.Start()))
	assert.Equal(t, []int{2}, m.AcceptStates())
	assertSameLanguage(t, a, m, 6)
}

func TestMinimizeCollapsesDeadStates(t *testing.T) {
	a := mustLoad(t, `a b
s0 d1 d2 f
s0
f
s0 a f
s0 b d1
f a d2
f b d2
d1 a d1
d1 b d2
d2 a d2
d2 b d1
`)
	m, err := MinimizeAutomaton(a)
	require.NoError(t, err)
	assert.Equal(t, 3, m.GetNumStates())
	assertSameLanguage(t, a, m, 6)
}

func TestMinimizeEmptyAutomaton(t *testing.T) {
	a := NewAutomaton("a", "b")

	p, err := Minimize(a)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.NoError(t, p.Validate(a))

	m, err := Rebuild(a, p)
	require.NoError(t, err)
	assert.Equal(t, 0, m.GetNumStates())
	assert.Equal(t, -1, m.Start())
}

func TestMinimizeSingleBlockWhenAllAgree(t *testing.T) {
	t.Run("all accepting", func(t *testing.T) {
		a := mustLoad(t, "a\nx y z\nx\nx y z\nx a y\ny a z\nz a x\n")
		p, err := Minimize(a)
		require.NoError(t, err)
		assert.Equal(t, []Block{{0, 1, 2}}, p.Blocks())
	})

	t.Run("none accepting", func(t *testing.T) {
		a := mustLoad(t, "a\nx y\nx\n\nx a y\ny a x\n")
		p, err := Minimize(a)
		require.NoError(t, err)
		assert.Equal(t, []Block{{0, 1}}, p.Blocks())
	})
}

func TestMinimizeSplitsOnMissingTransition(t *testing.T) {
	// x and y only differ in that y has no move on b.
	a := mustLoad(t, "a b\nx y f\nx\nf\nx a f\nx b f\ny a f\nf a f\nf b f\n")
	p, err := Minimize(a)
	require.NoError(t, err)
	assert.Equal(t, []Block{{0}, {1}, {2}}, p.Blocks())
	assertStablePartition(t, a, p)
}

func TestMinimizeRequeuesPredecessors(t *testing.T) {
	// A chain where distinguishing c from d only becomes visible to a and b after c and d split.
	a := mustLoad(t, `x
a b c d f
a
f
a x c
b x d
c x f
d x d
f x f
`)
	p, err := Minimize(a)
	require.NoError(t, err)
	assertStablePartition(t, a, p)
	assertMatchesReference(t, a, p)
	assert.Equal(t, 4, p.Len())
}

func TestMinimizeMalformed(t *testing.T) {
	a := NewAutomaton("a")
	_, _ = a.CreateState("s0")

	_, err := Minimize(a)
	assert.ErrorIs(t, err, ErrMalformedAutomaton)

	_, err = MinimizeAutomaton(a)
	assert.ErrorIs(t, err, ErrMalformedAutomaton)
}

func TestMinimizeIdempotent(t *testing.T) {
	a := mustLoad(t, fourStateDFA)
	m1, err := MinimizeAutomaton(a)
	require.NoError(t, err)
	m2, err := MinimizeAutomaton(m1)
	require.NoError(t, err)

	assert.Equal(t, m1.GetNumStates(), m2.GetNumStates())
	assert.True(t, Isomorphic(m1, m2))
	assert.Equal(t, m1.String(), m2.String(), "canonical numbering makes reruns byte-identical")
}

func TestMinimizeRandomAutomata(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a := randomAutomaton(rnd)
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			p, err := Minimize(a)
			require.NoError(t, err)
			assertStablePartition(t, a, p)
			assertMatchesReference(t, a, p)

			m, err := Rebuild(a, p)
			require.NoError(t, err)
			assert.Equal(t, p.Len(), m.GetNumStates())
			assertSameLanguage(t, a, m, 5)

			again, err := MinimizeAutomaton(m)
			require.NoError(t, err)
			assert.Equal(t, m.GetNumStates(), again.GetNumStates())
			assert.True(t, Isomorphic(m, again))
		})
	}
}

func assertStablePartition(t *testing.T, a *Automaton, p *Partition) {
	t.Helper()
	assert.NoError(t, p.Validate(a), "partition invariant")
	assert.True(t, p.IsStable(a), "stability")
	assert.True(t, p.IsAcceptConsistent(a), "accept consistency")
}

// assertMatchesReference compares p with the equivalence computed by the table-filling algorithm.
func assertMatchesReference(t *testing.T, a *Automaton, p *Partition) {
	t.Helper()
	n := a.GetNumStates()
	dist := make([][]bool, n)
	for i := range dist {
		dist[i] = make([]bool, n)
		for j := range dist[i] {
			dist[i][j] = a.IsAccept(i) != a.IsAccept(j)
		}
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][j] {
					continue
				}
				for label := range a.alphabet {
					di, dj := a.Step(i, label), a.Step(j, label)
					if (di == -1) != (dj == -1) || (di != -1 && dist[di][dj]) {
						dist[i][j] = true
						changed = true
						break
					}
				}
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, !dist[i][j], p.BlockOf(i) == p.BlockOf(j), "states %d and %d", i, j)
		}
	}
}

// assertSameLanguage runs every string up to maxLen symbols through both automata.
func assertSameLanguage(t *testing.T, a, b *Automaton, maxLen int) {
	t.Helper()
	alphabet := a.Alphabet()
	var walk func(prefix []string)
	walk = func(prefix []string) {
		if Run(a, prefix) != Run(b, prefix) {
			t.Errorf("automata disagree on %v", prefix)
			return
		}
		if len(prefix) == maxLen {
			return
		}
		for _, symbol := range alphabet {
			walk(append(prefix[:len(prefix):len(prefix)], symbol))
		}
	}
	walk(nil)
}

func randomAutomaton(rnd *rand.Rand) *Automaton {
	alphabet := []string{"a", "b", "c"}[:1+rnd.Intn(3)]
	numStates := 1 + rnd.Intn(12)
	a := NewAutomatonV1(numStates, alphabet...)
	for i := 0; i < numStates; i++ {
		s, _ := a.CreateState("s" + strconv.Itoa(i))
		a.SetAccept(s, rnd.Intn(10) < 3)
	}
	_ = a.SetStart(rnd.Intn(numStates))
	for s := 0; s < numStates; s++ {
		for _, symbol := range alphabet {
			if rnd.Intn(10) < 8 {
				_ = a.AddTransition(s, symbol, rnd.Intn(numStates))
			}
		}
	}
	return a
}

func BenchmarkMinimize(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	alphabet := []string{"a", "b", "c", "d"}
	numStates := 2000
	a := NewAutomatonV1(numStates, alphabet...)
	for i := 0; i < numStates; i++ {
		s, _ := a.CreateState("s" + strconv.Itoa(i))
		a.SetAccept(s, rnd.Intn(4) == 0)
	}
	_ = a.SetStart(0)
	for s := 0; s < numStates; s++ {
		for _, symbol := range alphabet {
			_ = a.AddTransition(s, symbol, rnd.Intn(numStates))
		}
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := Minimize(a); err != nil {
			b.Fatal(err)
		}
	}
}
