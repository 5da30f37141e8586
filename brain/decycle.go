package brain

import (
	"slices"
)

// Clean prunes dead connections and then removes every cycle. It returns the
// number of connections dropped. Running it on a clean topology is a no-op.
func Clean(t *Topology) int {
	return PruneDead(t) + Decycle(t)
}

// PruneDead drops every connection whose source no longer resolves.
func PruneDead(t *Topology) int {
	removed := 0
	for _, n := range t.neurons {
		before := len(n.inputs)
		n.inputs = slices.DeleteFunc(n.inputs, func(c *Connection) bool {
			return !t.owns(c)
		})
		removed += before - len(n.inputs)
	}
	return removed
}

// owns reports whether c's source is alive and stored in t.
func (t *Topology) owns(c *Connection) bool {
	return c.source.arena == t.arena && c.source.valid()
}

// trim records the connections of one neuron that close a cycle.
type trim struct {
	neuron  *Neuron
	indices []int
}

// frame is one level of the explicit DFS stack.
type frame struct {
	neuron *Neuron
	next   int
}

// Decycle removes connections until the graph has no directed cycle. Each
// sweep runs a depth-first traversal from every neuron, following connections
// upstream to their sources; a connection whose source is still on the
// recursion stack closes a cycle and is scheduled for removal. Sweeps repeat
// until one schedules nothing. Self-loops are the one-step case of the same
// check. It returns the number of connections removed.
func Decycle(t *Topology) int {
	removed := 0
	for {
		trims := t.findBackEdges()
		if len(trims) == 0 {
			return removed
		}
		for _, tr := range trims {
			removed += len(tr.indices)
			tr.neuron.removeInputsAt(tr.indices)
		}
	}
}

// IsAcyclic reports whether no connection in t closes a cycle.
func IsAcyclic(t *Topology) bool {
	return len(t.findBackEdges()) == 0
}

func (t *Topology) findBackEdges() []trim {
	size := t.arena.size()
	onStack := make([]bool, size)
	visited := make([]bool, size)
	var trims []trim
	var stack []frame
	pos := make(map[*Neuron]int)

	// Indices of one neuron arrive in ascending order since its frame walks
	// its inputs front to back.
	schedule := func(n *Neuron, i int) {
		if k, ok := pos[n]; ok {
			trims[k].indices = append(trims[k].indices, i)
			return
		}
		pos[n] = len(trims)
		trims = append(trims, trim{neuron: n, indices: []int{i}})
	}

	for _, root := range t.neurons {
		if visited[root.self.index] {
			continue
		}
		onStack[root.self.index] = true
		stack = append(stack[:0], frame{neuron: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			n := top.neuron
			if top.next >= len(n.inputs) {
				onStack[n.self.index] = false
				visited[n.self.index] = true
				stack = stack[:len(stack)-1]
				continue
			}
			i := top.next
			top.next++

			c := n.inputs[i]
			if !t.owns(c) {
				continue
			}
			src := t.arena.slots[c.source.index].neuron
			switch {
			case onStack[c.source.index]:
				schedule(n, i)
			case !visited[c.source.index]:
				onStack[c.source.index] = true
				stack = append(stack, frame{neuron: src})
			}
		}
	}
	return trims
}

// removeInputsAt deletes the connections at the given ascending indices,
// keeping the order of the rest.
func (n *Neuron) removeInputsAt(indices []int) {
	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		drop[i] = struct{}{}
	}
	kept := n.inputs[:0]
	for i, c := range n.inputs {
		if _, ok := drop[i]; !ok {
			kept = append(kept, c)
		}
	}
	clear(n.inputs[len(kept):])
	n.inputs = kept
}
