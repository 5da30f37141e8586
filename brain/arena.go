package brain

// arena is the stable neuron table a topology owns. Slots are reused after
// a neuron is released, and each reuse bumps the slot generation so stale
// references stop resolving.
type arena struct {
	slots []slot
	free  []int32
}

type slot struct {
	gen    uint32
	neuron *Neuron
}

// ref is a non-owning reference to a neuron slot.
type ref struct {
	arena *arena
	index int32
	gen   uint32
}

func newArena(capacity int) *arena {
	return &arena{slots: make([]slot, 0, capacity)}
}

// insert stores n in a free slot and stamps n with its reference.
func (a *arena) insert(n *Neuron) ref {
	var idx int32
	if k := len(a.free); k > 0 {
		idx = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		idx = int32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	a.slots[idx].neuron = n
	r := ref{arena: a, index: idx, gen: a.slots[idx].gen}
	n.self = r
	return r
}

// release frees the slot behind r. Every outstanding ref to it goes dead.
func (a *arena) release(r ref) {
	if !r.valid() || r.arena != a {
		return
	}
	s := &a.slots[r.index]
	s.neuron = nil
	s.gen++
	a.free = append(a.free, r.index)
}

// size is the slot count, used to size traversal bitsets.
func (a *arena) size() int {
	return len(a.slots)
}

func (r ref) valid() bool {
	if r.arena == nil || r.index < 0 || int(r.index) >= len(r.arena.slots) {
		return false
	}
	s := r.arena.slots[r.index]
	return s.gen == r.gen && s.neuron != nil
}

func (r ref) resolve() (*Neuron, bool) {
	if !r.valid() {
		return nil, false
	}
	return r.arena.slots[r.index].neuron, true
}
