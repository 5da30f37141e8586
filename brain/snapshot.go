package brain

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Snapshot is a plain view of a topology, used for checkpoints and dumps.
// Dead connections are not recorded.
type Snapshot struct {
	SelfMutation int                `yaml:"self_mutation"`
	Chances      map[string]float64 `yaml:"chances"`
	Inputs       []string           `yaml:"inputs"`
	Outputs      []string           `yaml:"outputs"`
	Neurons      []NeuronSnapshot   `yaml:"neurons"`
}

// NeuronSnapshot describes one neuron and its incoming connections.
type NeuronSnapshot struct {
	ID         string               `yaml:"id"`
	Kind       string               `yaml:"kind"`
	Bias       float64              `yaml:"bias,omitempty"`
	Activation string               `yaml:"activation,omitempty"`
	Inputs     []ConnectionSnapshot `yaml:"inputs,omitempty"`
}

// ConnectionSnapshot describes one connection by its source identifier.
type ConnectionSnapshot struct {
	Source   string  `yaml:"source"`
	Weight   float64 `yaml:"weight"`
	Exponent int     `yaml:"exponent"`
}

// Snapshot captures the topology's current structure and mutation model.
func (t *Topology) Snapshot() *Snapshot {
	s := &Snapshot{
		SelfMutation: t.chances.SelfMutation(),
		Chances:      make(map[string]float64, NumActions),
		Inputs:       make([]string, len(t.inputs)),
		Outputs:      make([]string, len(t.outputs)),
		Neurons:      make([]NeuronSnapshot, 0, len(t.neurons)),
	}
	for i, w := range t.chances.Weights() {
		s.Chances[Action(i).String()] = w
	}
	for i, n := range t.inputs {
		s.Inputs[i] = n.id.String()
	}
	for i, n := range t.outputs {
		s.Outputs[i] = n.id.String()
	}
	for _, n := range t.neurons {
		ns := NeuronSnapshot{
			ID:         n.id.String(),
			Kind:       n.kind.String(),
			Bias:       n.Bias,
			Activation: n.Activation,
		}
		for _, c := range n.inputs {
			src, ok := c.Source()
			if !ok {
				continue
			}
			ns.Inputs = append(ns.Inputs, ConnectionSnapshot{
				Source:   src.id.String(),
				Weight:   c.Weight,
				Exponent: c.Exponent,
			})
		}
		s.Neurons = append(s.Neurons, ns)
	}
	return s
}

// FromSnapshot rebuilds a topology, keeping the recorded identifiers.
// A nil config uses DefaultConfig.
func FromSnapshot(s *Snapshot, config *Config) (*Topology, error) {
	t := NewSandbox(config)

	byID := make(map[string]*Neuron, len(s.Neurons))
	for _, ns := range s.Neurons {
		id, err := uuid.Parse(ns.ID)
		if err != nil {
			return nil, fmt.Errorf("neuron id %q: %w", ns.ID, err)
		}
		kind, err := ParseKind(ns.Kind)
		if err != nil {
			return nil, fmt.Errorf("neuron %s: %w", ns.ID, err)
		}
		if _, dup := byID[ns.ID]; dup {
			return nil, fmt.Errorf("duplicate neuron id %s", ns.ID)
		}
		n := &Neuron{id: id, kind: kind, Bias: ns.Bias, Activation: ns.Activation}
		t.insert(n)
		byID[ns.ID] = n
	}

	for _, ns := range s.Neurons {
		dst := byID[ns.ID]
		for _, cs := range ns.Inputs {
			src, ok := byID[cs.Source]
			if !ok {
				return nil, fmt.Errorf("neuron %s: unknown source %s", ns.ID, cs.Source)
			}
			c := dst.AddInput(src)
			if c == nil {
				return nil, fmt.Errorf("neuron %s: %s neurons cannot hold connections", ns.ID, dst.kind)
			}
			c.Weight = cs.Weight
			c.Exponent = cs.Exponent
		}
	}

	layer := func(ids []string, kind Kind) ([]*Neuron, error) {
		out := make([]*Neuron, 0, len(ids))
		for _, id := range ids {
			n, ok := byID[id]
			if !ok || n.kind != kind {
				return nil, fmt.Errorf("%s layer: %s is not a %s neuron", kind, id, kind)
			}
			out = append(out, n)
		}
		return out, nil
	}
	var err error
	if t.inputs, err = layer(s.Inputs, Input); err != nil {
		return nil, err
	}
	if t.outputs, err = layer(s.Outputs, Output); err != nil {
		return nil, err
	}

	var weights [NumActions]float64
	for i := range weights {
		weights[i] = s.Chances[Action(i).String()]
	}
	mc := NewMutationChancesFromConfig(t.config.MutationChances)
	mc.selfMutation = clampInt(s.SelfMutation, 0, 100)
	mc.weights = weights
	mc.normalize()
	t.chances = mc
	return t, nil
}

// MarshalYAML implements yaml.Marshaler.
func (t *Topology) MarshalYAML() (interface{}, error) {
	return t.Snapshot(), nil
}

// DumpYAML renders the topology as YAML for diagnostics.
func (t *Topology) DumpYAML() ([]byte, error) {
	return yaml.Marshal(t)
}
