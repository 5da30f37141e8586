package brain

import (
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed draws, then falls back to zeros.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		panic("scriptedRand: scripted int out of range")
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// sourceIDs lists the source ids of n's connections, dead ones as uuid.Nil.
func sourceIDs(n *Neuron) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(n.Inputs()))
	for _, c := range n.Inputs() {
		ids = append(ids, c.ID())
	}
	return ids
}

// shape maps every neuron to its connection sources, for structural comparison.
func shape(t *Topology) map[uuid.UUID][]uuid.UUID {
	out := make(map[uuid.UUID][]uuid.UUID, t.Len())
	for _, n := range t.Neurons() {
		out[n.ID()] = sourceIDs(n)
	}
	return out
}

// requireAcyclic walks upstream from every neuron with a recursion stack and
// fails if a neuron is reached while still on it.
func requireAcyclic(t *testing.T, topo *Topology) {
	t.Helper()
	onStack := make(map[*Neuron]bool)
	done := make(map[*Neuron]bool)
	var visit func(n *Neuron)
	visit = func(n *Neuron) {
		if done[n] {
			return
		}
		require.False(t, onStack[n], "cycle through neuron %s", n.ID())
		onStack[n] = true
		for _, c := range n.Inputs() {
			if src, ok := c.Source(); ok {
				visit(src)
			}
		}
		onStack[n] = false
		done[n] = true
	}
	for _, n := range topo.Neurons() {
		visit(n)
	}
}

func countKind(t *Topology, k Kind) int {
	return len(slices.DeleteFunc(slices.Clone(t.Neurons()), func(n *Neuron) bool {
		return n.Kind() != k
	}))
}
