package brain

import (
	"github.com/google/uuid"
)

// DeepClone returns a structurally isomorphic copy with a fresh identifier for
// every neuron. Live connections keep their weight and exponent; connections
// that were already dead are not carried over.
func (t *Topology) DeepClone() *Topology {
	out := &Topology{
		arena:   newArena(t.arena.size()),
		neurons: make([]*Neuron, 0, len(t.neurons)),
		inputs:  make([]*Neuron, 0, len(t.inputs)),
		outputs: make([]*Neuron, 0, len(t.outputs)),
		index:   make(map[uuid.UUID]int, len(t.neurons)),
		chances: t.chances.Clone(),
		config:  t.config,
	}

	// Connections can point at neurons later in the list, so all neurons
	// exist before any connection is relinked.
	byOldID := make(map[uuid.UUID]*Neuron, len(t.neurons))
	for _, n := range t.neurons {
		cp := newNeuron(n.kind, n.Activation)
		cp.Bias = n.Bias
		out.insert(cp)
		byOldID[n.id] = cp
	}
	for _, n := range t.inputs {
		out.inputs = append(out.inputs, byOldID[n.id])
	}
	for _, n := range t.outputs {
		out.outputs = append(out.outputs, byOldID[n.id])
	}

	for _, n := range t.neurons {
		cp := byOldID[n.id]
		if len(n.inputs) == 0 {
			continue
		}
		cp.inputs = make([]*Connection, 0, len(n.inputs))
		for _, c := range n.inputs {
			src, ok := c.Source()
			if !ok {
				continue
			}
			newSrc, ok := byOldID[src.id]
			if !ok {
				continue
			}
			cp.inputs = append(cp.inputs, &Connection{
				Weight:   c.Weight,
				Exponent: c.Exponent,
				source:   newSrc.self,
			})
		}
	}
	return out
}

// Replicate produces a mutated offspring: deep clone, apply a mutation
// sequence drawn from the clone's chances, drift the chances, then restore
// the acyclic invariant. The receiver is not modified.
func (t *Topology) Replicate(rng Rand) *Topology {
	child := t.DeepClone()
	child.Mutate(child.chances.YieldMutations(rng), rng)
	child.chances.AdjustMutationChances(rng)
	Clean(child)
	return child
}
