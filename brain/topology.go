package brain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNoNeurons is returned when a topology would be built without inputs or outputs.
var ErrNoNeurons = errors.New("topology needs at least one input and one output")

// Topology is the mutable graph of neurons and connections representing one
// organism's brain. It owns every neuron; connections only reference them.
//
// A Topology is not safe for concurrent mutation.
type Topology struct {
	arena   *arena
	neurons []*Neuron // no order guarantee
	inputs  []*Neuron // ordered, never removed
	outputs []*Neuron // ordered, never removed
	index   map[uuid.UUID]int

	chances *MutationChances
	config  *Config
}

// NewSandbox creates an empty topology for hand-built graphs.
// A nil config uses DefaultConfig.
func NewSandbox(config *Config) *Topology {
	if config == nil {
		config = DefaultConfig()
	}
	return &Topology{
		arena:   newArena(config.Topology.NumInputs + config.Topology.NumOutputs),
		index:   make(map[uuid.UUID]int),
		chances: NewMutationChancesFromConfig(config.MutationChances),
		config:  config,
	}
}

// New creates a randomly wired topology. Each input-output pair is connected
// with probability initial_connection_prob and every output receives at least
// one connection. When the config asks for full initial connection this is
// the same as NewThoroughlyConnected.
func New(numInputs, numOutputs int, config *Config, rng Rand) (*Topology, error) {
	t, err := newLayered(numInputs, numOutputs, config, rng)
	if err != nil {
		return nil, err
	}
	if t.config.Topology.InitialConnection == ConnectFull {
		t.connectAll(rng)
		return t, nil
	}
	p := t.config.Topology.InitialConnectionProb
	for _, out := range t.outputs {
		for _, in := range t.inputs {
			if rng.Float64() < p {
				t.connect(in, out, rng)
			}
		}
		if len(out.inputs) == 0 {
			t.connect(t.inputs[rng.Intn(len(t.inputs))], out, rng)
		}
	}
	return t, nil
}

// NewThoroughlyConnected creates a topology wiring every input to every output.
func NewThoroughlyConnected(numInputs, numOutputs int, config *Config, rng Rand) (*Topology, error) {
	t, err := newLayered(numInputs, numOutputs, config, rng)
	if err != nil {
		return nil, err
	}
	t.connectAll(rng)
	return t, nil
}

func newLayered(numInputs, numOutputs int, config *Config, rng Rand) (*Topology, error) {
	if numInputs <= 0 || numOutputs <= 0 {
		return nil, fmt.Errorf("new topology with %d inputs and %d outputs: %w", numInputs, numOutputs, ErrNoNeurons)
	}
	t := NewSandbox(config)
	for i := 0; i < numInputs; i++ {
		t.AddInputNeuron()
	}
	for i := 0; i < numOutputs; i++ {
		out := t.AddOutputNeuron(t.initActivation(rng))
		out.Bias = t.initBias(rng)
	}
	return t, nil
}

func (t *Topology) connectAll(rng Rand) {
	for _, out := range t.outputs {
		for _, in := range t.inputs {
			t.connect(in, out, rng)
		}
	}
}

// AddInputNeuron appends a new Input neuron to the input layer.
func (t *Topology) AddInputNeuron() *Neuron {
	n := newNeuron(Input, "")
	t.insert(n)
	t.inputs = append(t.inputs, n)
	return n
}

// AddHiddenNeuron adds a Hidden neuron with the given activation.
func (t *Topology) AddHiddenNeuron(activation string) *Neuron {
	n := newNeuron(Hidden, activation)
	t.insert(n)
	return n
}

// AddOutputNeuron appends a new Output neuron to the output layer.
func (t *Topology) AddOutputNeuron(activation string) *Neuron {
	n := newNeuron(Output, activation)
	t.insert(n)
	t.outputs = append(t.outputs, n)
	return n
}

func (t *Topology) insert(n *Neuron) {
	t.arena.insert(n)
	t.index[n.id] = len(t.neurons)
	t.neurons = append(t.neurons, n)
}

// removeNeuron drops a Hidden neuron from the collection. Connections that
// reference it go dead; they are not rewritten.
func (t *Topology) removeNeuron(n *Neuron) bool {
	if n.kind != Hidden {
		return false
	}
	i, ok := t.index[n.id]
	if !ok {
		return false
	}
	last := len(t.neurons) - 1
	moved := t.neurons[last]
	t.neurons[i] = moved
	t.index[moved.id] = i
	t.neurons[last] = nil
	t.neurons = t.neurons[:last]
	delete(t.index, n.id)
	t.arena.release(n.self)
	return true
}

// connect adds a connection from src into dst with configured random
// weight and exponent.
func (t *Topology) connect(src, dst *Neuron, rng Rand) *Connection {
	c := dst.AddInput(src)
	if c == nil {
		return nil
	}
	c.Weight = t.initWeight(rng)
	c.Exponent = t.initExponent(rng)
	return c
}

func (t *Topology) initWeight(rng Rand) float64 {
	return randSigned(rng, t.config.Topology.WeightInitRange)
}

func (t *Topology) initBias(rng Rand) float64 {
	if t.config.Topology.BiasInitRange == 0 {
		return 0
	}
	return randSigned(rng, t.config.Topology.BiasInitRange)
}

func (t *Topology) initExponent(rng Rand) int {
	if !t.config.Topology.Polynomial || t.config.Topology.ExponentMax <= 1 {
		return 1
	}
	return 1 + rng.Intn(t.config.Topology.ExponentMax)
}

func (t *Topology) initActivation(rng Rand) string {
	cfg := t.config.Topology
	if cfg.ActivationDefault != "" && cfg.ActivationDefault != "random" {
		return cfg.ActivationDefault
	}
	return t.randomActivation(rng)
}

func (t *Topology) randomActivation(rng Rand) string {
	opts := t.config.Topology.ActivationOptions
	if len(opts) == 0 {
		return "identity"
	}
	return opts[rng.Intn(len(opts))]
}

// RandomNeuron picks uniformly over all neurons. It panics on an empty
// topology, which construction never produces.
func (t *Topology) RandomNeuron(rng Rand) *Neuron {
	if len(t.neurons) == 0 {
		panic("brain: RandomNeuron on empty topology")
	}
	return t.neurons[rng.Intn(len(t.neurons))]
}

// Neurons returns every neuron in no particular order. The slice is owned by
// the topology.
func (t *Topology) Neurons() []*Neuron { return t.neurons }

// Inputs returns the ordered input layer.
func (t *Topology) Inputs() []*Neuron { return t.inputs }

// Outputs returns the ordered output layer.
func (t *Topology) Outputs() []*Neuron { return t.outputs }

// Len returns the neuron count.
func (t *Topology) Len() int { return len(t.neurons) }

// NeuronIDs returns the identifiers of every neuron, in Neurons order.
func (t *Topology) NeuronIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(t.neurons))
	for i, n := range t.neurons {
		ids[i] = n.id
	}
	return ids
}

// Neuron looks a neuron up by identifier.
func (t *Topology) Neuron(id uuid.UUID) (*Neuron, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.neurons[i], true
}

// MutationChances returns the topology's mutation model.
func (t *Topology) MutationChances() *MutationChances { return t.chances }

// SetMutationChances replaces the mutation model.
func (t *Topology) SetMutationChances(mc *MutationChances) { t.chances = mc }

// Config returns the configuration the topology was built with.
func (t *Topology) Config() *Config { return t.config }

// ConnectionCount counts live and dead connections.
func (t *Topology) ConnectionCount() (live, dead int) {
	for _, n := range t.neurons {
		for _, c := range n.inputs {
			if c.IsAlive() {
				live++
			} else {
				dead++
			}
		}
	}
	return live, dead
}

// String dumps the graph for diagnostics.
func (t *Topology) String() string {
	var b strings.Builder
	live, dead := t.ConnectionCount()
	fmt.Fprintf(&b, "Topology(Neurons: %d, Connections: %d, Dead: %d)\n", len(t.neurons), live, dead)
	fmt.Fprintf(&b, "  %s\n", t.chances)
	for _, n := range t.neurons {
		fmt.Fprintf(&b, "  %s\n", n)
		for _, c := range n.inputs {
			fmt.Fprintf(&b, "    <- %s\n", c)
		}
	}
	return b.String()
}
