package brain

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomTopology(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Topology.InitialConnectionProb = 0
	rng := rand.New(rand.NewSource(4))

	topo, err := New(3, 2, cfg, rng)
	require.NoError(t, err)
	assert.Equal(t, 5, topo.Len())
	assert.Len(t, topo.Inputs(), 3)
	assert.Len(t, topo.Outputs(), 2)
	for _, out := range topo.Outputs() {
		assert.Equal(t, Output, out.Kind())
		assert.Len(t, out.Inputs(), 1, "every output gets at least one connection")
		assert.Contains(t, cfg.Topology.ActivationOptions, out.Activation)
	}
	for _, in := range topo.Inputs() {
		assert.Equal(t, Input, in.Kind())
	}
	assert.Equal(t, cfg.MutationChances.SelfMutation, topo.MutationChances().SelfMutation())
}

func TestNewThoroughlyConnected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Topology.WeightInitRange = 1
	topo, err := NewThoroughlyConnected(4, 3, cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	live, dead := topo.ConnectionCount()
	assert.Equal(t, 12, live)
	assert.Zero(t, dead)
	for _, out := range topo.Outputs() {
		require.Len(t, out.Inputs(), 4)
		for i, c := range out.Inputs() {
			assert.Equal(t, topo.Inputs()[i].ID(), c.ID())
			assert.LessOrEqual(t, c.Weight, 1.0)
			assert.GreaterOrEqual(t, c.Weight, -1.0)
		}
	}
}

func TestNewFullFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Topology.InitialConnection = ConnectFull
	topo, err := New(2, 2, cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	live, _ := topo.ConnectionCount()
	assert.Equal(t, 4, live)
}

func TestNewRejectsEmptyLayers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := New(0, 1, nil, rng)
	assert.True(t, errors.Is(err, ErrNoNeurons))
	_, err = NewThoroughlyConnected(1, 0, nil, rng)
	assert.True(t, errors.Is(err, ErrNoNeurons))
}

func TestRandomNeuronPanicsWhenEmpty(t *testing.T) {
	topo := NewSandbox(nil)
	assert.Panics(t, func() { topo.RandomNeuron(rand.New(rand.NewSource(1))) })

	n := topo.AddHiddenNeuron("tanh")
	assert.Same(t, n, topo.RandomNeuron(rand.New(rand.NewSource(1))))
}

func TestNeuronLookup(t *testing.T) {
	topo, err := New(2, 1, nil, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	ids := topo.NeuronIDs()
	require.Len(t, ids, 3)
	for _, id := range ids {
		n, ok := topo.Neuron(id)
		require.True(t, ok)
		assert.Equal(t, id, n.ID())
	}

	hidden := topo.AddHiddenNeuron("relu")
	require.True(t, topo.removeNeuron(hidden))
	_, ok := topo.Neuron(hidden.ID())
	assert.False(t, ok)
	for _, id := range topo.NeuronIDs() {
		_, ok := topo.Neuron(id)
		assert.True(t, ok, "index stays consistent after swap-remove")
	}
}

func TestRemoveNeuronKeepsLayers(t *testing.T) {
	topo, err := New(2, 1, nil, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.False(t, topo.removeNeuron(topo.Inputs()[0]))
	assert.False(t, topo.removeNeuron(topo.Outputs()[0]))
	assert.Equal(t, 3, topo.Len())
}

func TestTopologyString(t *testing.T) {
	topo, err := NewThoroughlyConnected(1, 1, nil, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	s := topo.String()
	assert.Contains(t, s, "Topology(Neurons: 2, Connections: 1, Dead: 0)")
	assert.Contains(t, s, topo.Inputs()[0].ID().String())
	assert.Contains(t, s, "MutationChances(")
}
