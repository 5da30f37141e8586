package brain

// Mutate applies each action in order. Actions with no valid target are
// no-ops: they consume their turn and leave the graph unchanged.
func (t *Topology) Mutate(actions []Action, rng Rand) {
	for _, a := range actions {
		t.apply(a, rng)
	}
}

func (t *Topology) apply(a Action, rng Rand) bool {
	if len(t.neurons) == 0 {
		return false
	}
	switch a {
	case SplitConnection:
		return t.mutateSplitConnection(rng)
	case AddConnection:
		return t.mutateAddConnection(rng)
	case RemoveNeuron:
		return t.mutateRemoveNeuron(rng)
	case MutateWeight:
		return t.mutateWeight(rng)
	case MutateActivation:
		return t.mutateActivation(rng)
	case MutateExponent:
		return t.mutateExponent(rng)
	case MutateBias:
		return t.mutateBias(rng)
	}
	return false
}

// mutateSplitConnection moves a random connection of a random neuron onto a
// new Hidden neuron and feeds that Hidden neuron back into the original.
func (t *Topology) mutateSplitConnection(rng Rand) bool {
	dst := t.RandomNeuron(rng)
	c := dst.takeRandomInput(rng)
	if c == nil {
		return false
	}
	hidden := t.AddHiddenNeuron(t.randomActivation(rng))
	hidden.inputs = append(hidden.inputs, c)
	t.connect(hidden, dst, rng)
	return true
}

// mutateAddConnection wires a random source into a random destination.
// Input neurons are never destinations. Cycles this creates are removed by
// the decycler.
func (t *Topology) mutateAddConnection(rng Rand) bool {
	src := t.RandomNeuron(rng)
	dst := t.RandomNeuron(rng)
	if !dst.HasInputs() {
		return false
	}
	return t.connect(src, dst, rng) != nil
}

// mutateRemoveNeuron drops a random Hidden neuron.
func (t *Topology) mutateRemoveNeuron(rng Rand) bool {
	return t.removeNeuron(t.RandomNeuron(rng))
}

func (t *Topology) mutateWeight(rng Rand) bool {
	c := t.RandomNeuron(rng).RandomInput(rng)
	if c == nil {
		return false
	}
	c.Weight += randSigned(rng, t.config.Topology.WeightMutatePower)
	return true
}

func (t *Topology) mutateActivation(rng Rand) bool {
	n := t.RandomNeuron(rng)
	if !n.HasInputs() {
		return false
	}
	n.Activation = t.randomActivation(rng)
	return true
}

// mutateExponent steps a random connection's exponent by one, within
// [1, exponent_max]. Only the polynomial variant carries exponents.
func (t *Topology) mutateExponent(rng Rand) bool {
	if !t.config.Topology.Polynomial {
		return false
	}
	c := t.RandomNeuron(rng).RandomInput(rng)
	if c == nil {
		return false
	}
	step := 1
	if randBool(rng) {
		step = -1
	}
	c.Exponent = clampInt(c.Exponent+step, 1, t.config.Topology.ExponentMax)
	return true
}

func (t *Topology) mutateBias(rng Rand) bool {
	n := t.RandomNeuron(rng)
	if !n.HasInputs() {
		return false
	}
	n.Bias += randSigned(rng, t.config.Topology.BiasMutatePower)
	return true
}
