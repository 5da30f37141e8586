package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/brain-go/brain"
)

func TestPredictSingleConnection(t *testing.T) {
	topo := brain.NewSandbox(nil)
	in0 := topo.AddInputNeuron()
	topo.AddInputNeuron()
	out := topo.AddOutputNeuron("identity")
	c := out.AddInput(in0)
	c.Weight = 2

	net, err := FromTopology(topo)
	require.NoError(t, err)
	assert.Equal(t, 2, net.NumInputs())
	assert.Equal(t, 1, net.NumOutputs())
	assert.Equal(t, []float64{6}, net.Predict([]float64{3, 5}))
}

func TestPredictIsRepeatable(t *testing.T) {
	cfg := brain.DefaultConfig()
	cfg.Topology.Polynomial = true
	rng := rand.New(rand.NewSource(3))
	topo, err := brain.New(3, 4, cfg, rng)
	require.NoError(t, err)
	for i := 0; i < 15; i++ {
		topo = topo.Replicate(rng)
	}

	net, err := FromTopology(topo)
	require.NoError(t, err)
	inputs := []float64{0.3, -1.2, 2.5}
	first := net.Predict(inputs)
	require.Len(t, first, 4)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, net.Predict(inputs))
		assert.Equal(t, first, net.PredictParallel(inputs))
	}
}

func TestPredictInputLength(t *testing.T) {
	topo := brain.NewSandbox(nil)
	a := topo.AddInputNeuron()
	b := topo.AddInputNeuron()
	out := topo.AddOutputNeuron("identity")
	out.AddInput(a)
	out.AddInput(b).Weight = 10

	net, err := FromTopology(topo)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, net.Predict([]float64{1}), "missing inputs read as zero")
	assert.Equal(t, []float64{21}, net.Predict([]float64{1, 2, 99}), "extra inputs are ignored")
	assert.Equal(t, []float64{0}, net.Predict(nil))
}

func TestPredictHiddenChain(t *testing.T) {
	topo := brain.NewSandbox(nil)
	in := topo.AddInputNeuron()
	hidden := topo.AddHiddenNeuron("relu")
	out := topo.AddOutputNeuron("identity")
	hidden.Bias = -1
	c := hidden.AddInput(in)
	c.Exponent = 2
	out.AddInput(hidden).Weight = 0.5
	out.Bias = 0.25

	net, err := FromTopology(topo)
	require.NoError(t, err)
	// relu(3^2 - 1) * 0.5 + 0.25
	assert.InDelta(t, 4.25, net.Predict([]float64{3})[0], 1e-12)
	// relu(0.5^2 - 1) clips to zero
	assert.InDelta(t, 0.25, net.Predict([]float64{0.5})[0], 1e-12)
}

func TestPredictSharedUpstream(t *testing.T) {
	topo := brain.NewSandbox(nil)
	in := topo.AddInputNeuron()
	hidden := topo.AddHiddenNeuron("tanh")
	hidden.AddInput(in)
	for i := 0; i < 6; i++ {
		out := topo.AddOutputNeuron("identity")
		out.AddInput(hidden).Weight = float64(i)
	}

	net, err := FromTopology(topo)
	require.NoError(t, err)
	want := math.Tanh(0.8)
	got := net.PredictParallel([]float64{0.8})
	require.Len(t, got, 6)
	for i, v := range got {
		assert.InDelta(t, want*float64(i), v, 1e-12)
	}
	assert.Equal(t, net.Predict([]float64{0.8}), got)
}

func TestStrayInputNeuronReadsZero(t *testing.T) {
	topo := brain.NewSandbox(nil)
	in := topo.AddInputNeuron()
	out := topo.AddOutputNeuron("identity")
	out.AddInput(in)

	// Drop the input layer so the input neuron is never seeded.
	snap := topo.Snapshot()
	snap.Inputs = nil
	restored, err := brain.FromSnapshot(snap, nil)
	require.NoError(t, err)

	net, err := FromTopology(restored)
	require.NoError(t, err)
	assert.Zero(t, net.NumInputs())
	assert.Equal(t, []float64{0}, net.Predict([]float64{7}))
}

func TestFromTopologySkipsForeignSources(t *testing.T) {
	topo := brain.NewSandbox(nil)
	in := topo.AddInputNeuron()
	out := topo.AddOutputNeuron("identity")
	out.AddInput(in)

	donor := brain.NewSandbox(nil)
	foreign := donor.AddHiddenNeuron("identity")
	c := out.AddInput(foreign)
	require.NotNil(t, c)

	net, err := FromTopology(topo)
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, net.Predict([]float64{4}))
}

func TestFromTopologyRejectsCycles(t *testing.T) {
	t.Run("self loop", func(t *testing.T) {
		topo := brain.NewSandbox(nil)
		in := topo.AddInputNeuron()
		out := topo.AddOutputNeuron("identity")
		out.AddInput(in)
		out.AddInput(out)

		_, err := FromTopology(topo)
		assert.ErrorIs(t, err, ErrCyclic)
	})

	t.Run("two cycle", func(t *testing.T) {
		topo := brain.NewSandbox(nil)
		a := topo.AddHiddenNeuron("identity")
		b := topo.AddHiddenNeuron("identity")
		out := topo.AddOutputNeuron("identity")
		a.AddInput(b)
		b.AddInput(a)
		out.AddInput(b)

		_, err := FromTopology(topo)
		require.ErrorIs(t, err, ErrCyclic)

		brain.Decycle(topo)
		_, err = FromTopology(topo)
		assert.NoError(t, err)
	})
}

func TestFromTopologyUnknownActivation(t *testing.T) {
	topo := brain.NewSandbox(nil)
	in := topo.AddInputNeuron()
	out := topo.AddOutputNeuron("softmax")
	out.AddInput(in)

	_, err := FromTopology(topo)
	require.ErrorIs(t, err, ErrUnknownActivation)
	assert.Contains(t, err.Error(), "softmax")
}
