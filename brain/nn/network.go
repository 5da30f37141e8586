package nn

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/baldhumanity/brain-go/brain"
)

var (
	// ErrCyclic is returned when a topology still contains a directed cycle.
	ErrCyclic = errors.New("topology contains a cycle")
	// ErrUnknownActivation is returned for an activation name missing from the registry.
	ErrUnknownActivation = errors.New("unknown activation")
)

// runtimeInput is a compiled connection into a runtime neuron.
type runtimeInput struct {
	source   int
	weight   float64
	exponent int
}

// runtimeNeuron represents a neuron during network activation. The memo slot
// holds its output for the current prediction.
type runtimeNeuron struct {
	bias       float64
	activation brain.ActivationType
	inputs     []runtimeInput
	isInput    bool

	mu       sync.Mutex
	memo     float64
	computed bool
}

// Network is an executable network compiled from a topology.
type Network struct {
	neurons []runtimeNeuron
	inputs  []int // aligned to the topology's input layer
	outputs []int // aligned to the topology's output layer

	mu sync.Mutex // serializes predictions
}

// FromTopology compiles an acyclic topology into an executable network.
// Dead connections are skipped.
func FromTopology(t *brain.Topology) (*Network, error) {
	neurons := t.Neurons()
	index := make(map[*brain.Neuron]int, len(neurons))
	for i, n := range neurons {
		index[n] = i
	}

	net := &Network{
		neurons: make([]runtimeNeuron, len(neurons)),
		inputs:  make([]int, 0, len(t.Inputs())),
		outputs: make([]int, 0, len(t.Outputs())),
	}

	g := simple.NewDirectedGraph()
	for i := range neurons {
		g.AddNode(simple.Node(i))
	}

	for i, n := range neurons {
		rn := &net.neurons[i]
		if n.Kind() == brain.Input {
			rn.isInput = true
			continue
		}
		actFn, err := brain.GetActivation(n.Activation)
		if err != nil {
			return nil, fmt.Errorf("neuron %s: %w %q", n.ID(), ErrUnknownActivation, n.Activation)
		}
		rn.bias = n.Bias
		rn.activation = actFn

		for _, c := range n.Inputs() {
			src, ok := c.Source()
			if !ok {
				continue
			}
			j, ok := index[src]
			if !ok {
				continue
			}
			if j == i {
				return nil, fmt.Errorf("neuron %s feeds itself: %w", n.ID(), ErrCyclic)
			}
			rn.inputs = append(rn.inputs, runtimeInput{source: j, weight: c.Weight, exponent: c.Exponent})
			g.SetEdge(g.NewEdge(simple.Node(j), simple.Node(i)))
		}
	}

	if _, err := topo.Sort(g); err != nil {
		return nil, fmt.Errorf("compile network: %w: %v", ErrCyclic, err)
	}

	for _, n := range t.Inputs() {
		net.inputs = append(net.inputs, index[n])
	}
	for _, n := range t.Outputs() {
		net.outputs = append(net.outputs, index[n])
	}
	return net, nil
}

// Len returns the number of runtime neurons.
func (net *Network) Len() int { return len(net.neurons) }

// NumInputs returns the input layer width.
func (net *Network) NumInputs() int { return len(net.inputs) }

// NumOutputs returns the output layer width.
func (net *Network) NumOutputs() int { return len(net.outputs) }

// Predict runs one forward pass. Inputs are assigned by position: extra
// values are ignored and missing ones read as zero. The result has one value
// per output neuron, in output-layer order.
func (net *Network) Predict(inputs []float64) []float64 {
	net.mu.Lock()
	defer net.mu.Unlock()

	net.load(inputs)
	outputs := make([]float64, len(net.outputs))
	for i, idx := range net.outputs {
		outputs[i] = net.resolve(idx)
	}
	return outputs
}

// PredictParallel is Predict with each output resolved on its own goroutine.
// Shared upstream neurons are computed once; the first resolver holds the
// neuron's lock while later ones wait and reuse the memo.
func (net *Network) PredictParallel(inputs []float64) []float64 {
	net.mu.Lock()
	defer net.mu.Unlock()

	net.load(inputs)
	outputs := make([]float64, len(net.outputs))
	var wg sync.WaitGroup
	for i, idx := range net.outputs {
		wg.Add(1)
		go func(i, idx int) {
			defer wg.Done()
			outputs[i] = net.resolve(idx)
		}(i, idx)
	}
	wg.Wait()
	return outputs
}

// load clears every memo and seeds the input layer.
func (net *Network) load(inputs []float64) {
	for i := range net.neurons {
		net.neurons[i].computed = false
		net.neurons[i].memo = 0
	}
	for i, idx := range net.inputs {
		v := 0.0
		if i < len(inputs) {
			v = inputs[i]
		}
		rn := &net.neurons[idx]
		rn.memo = v
		rn.computed = true
	}
}

// resolve returns a neuron's output, computing and memoizing it on first use.
// Locks are taken from a neuron towards its sources, which on an acyclic
// graph cannot deadlock.
func (net *Network) resolve(idx int) float64 {
	rn := &net.neurons[idx]
	rn.mu.Lock()
	defer rn.mu.Unlock()

	if rn.computed {
		return rn.memo
	}
	if rn.isInput {
		// Input neurons outside the input layer act as zero.
		rn.computed = true
		return 0
	}

	sum := 0.0
	for _, in := range rn.inputs {
		sum += brain.PowInt(net.resolve(in.source), in.exponent) * in.weight
	}
	rn.memo = rn.activation(sum + rn.bias)
	rn.computed = true
	return rn.memo
}
