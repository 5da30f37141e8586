package brain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind tags the role of a neuron in a topology.
type Kind uint8

const (
	// Input neurons are identity slots fed externally. They never hold connections.
	Input Kind = iota
	Hidden
	Output
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Hidden:
		return "hidden"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input":
		return Input, nil
	case "hidden":
		return Hidden, nil
	case "output":
		return Output, nil
	}
	return 0, fmt.Errorf("unknown neuron kind: %q", s)
}

// Neuron is a node in the topology graph.
type Neuron struct {
	Bias       float64
	Activation string // Name of the activation function

	id     uuid.UUID
	kind   Kind
	inputs []*Connection
	self   ref // set by the owning arena
}

func newNeuron(kind Kind, activation string) *Neuron {
	return &Neuron{
		id:         uuid.New(),
		kind:       kind,
		Activation: activation,
	}
}

// ID returns the neuron's process-unique identifier.
func (n *Neuron) ID() uuid.UUID { return n.id }

// Kind returns the neuron's role.
func (n *Neuron) Kind() Kind { return n.kind }

// HasInputs reports whether the neuron can be the destination of connections.
func (n *Neuron) HasInputs() bool { return n.kind != Input }

// Inputs returns the neuron's connection list. The slice is owned by the neuron.
func (n *Neuron) Inputs() []*Connection { return n.inputs }

// AddInput pushes a connection from src with weight 1 and exponent 1.
// It returns nil when n is an Input neuron or src is not stored in a topology.
func (n *Neuron) AddInput(src *Neuron) *Connection {
	if !n.HasInputs() || src == nil || src.self.arena == nil {
		return nil
	}
	c := &Connection{Weight: 1, Exponent: 1, source: src.self}
	n.inputs = append(n.inputs, c)
	return c
}

// RandomInput picks one connection uniformly, or nil if there are none.
func (n *Neuron) RandomInput(rng Rand) *Connection {
	if len(n.inputs) == 0 {
		return nil
	}
	return n.inputs[rng.Intn(len(n.inputs))]
}

// RemoveInput swap-removes every connection whose source is src and reports
// whether any was removed.
func (n *Neuron) RemoveInput(src *Neuron) bool {
	removed := false
	for i := 0; i < len(n.inputs); {
		if s, ok := n.inputs[i].Source(); ok && s == src {
			n.swapRemoveInput(i)
			removed = true
			continue
		}
		i++
	}
	return removed
}

// takeRandomInput removes a uniformly chosen connection and returns it.
func (n *Neuron) takeRandomInput(rng Rand) *Connection {
	if len(n.inputs) == 0 {
		return nil
	}
	i := rng.Intn(len(n.inputs))
	c := n.inputs[i]
	n.swapRemoveInput(i)
	return c
}

func (n *Neuron) swapRemoveInput(i int) {
	last := len(n.inputs) - 1
	n.inputs[i] = n.inputs[last]
	n.inputs[last] = nil
	n.inputs = n.inputs[:last]
}

// String returns a string representation of the Neuron.
func (n *Neuron) String() string {
	if n.kind == Input {
		return fmt.Sprintf("Neuron(ID: %s, Kind: %s)", n.id, n.kind)
	}
	return fmt.Sprintf("Neuron(ID: %s, Kind: %s, Bias: %.3f, Activation: %s, Inputs: %d)",
		n.id, n.kind, n.Bias, n.Activation, len(n.inputs))
}
