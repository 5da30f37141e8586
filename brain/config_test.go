package brain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[Topology]
num_inputs          = 4
num_outputs         = 2
initial_connection  = full   # wire every pair
activation_default  = tanh
activation_options  = tanh  relu gaussian
polynomial          = true
exponent_max        = 4

[MutationChances]
self_mutation = 70
max_mutations = 12

[Lineage]
pop_size = 30
elitism  = 3
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Topology.NumInputs)
	assert.Equal(t, 2, cfg.Topology.NumOutputs)
	assert.Equal(t, ConnectFull, cfg.Topology.InitialConnection)
	assert.Equal(t, "tanh", cfg.Topology.ActivationDefault)
	assert.Equal(t, []string{"tanh", "relu", "gaussian"}, cfg.Topology.ActivationOptions)
	assert.True(t, cfg.Topology.Polynomial)
	assert.Equal(t, 4, cfg.Topology.ExponentMax)

	assert.Equal(t, 70, cfg.MutationChances.SelfMutation)
	assert.Equal(t, 12, cfg.MutationChances.MaxMutations)
	assert.Equal(t, 30, cfg.Lineage.PopSize)
	assert.Equal(t, 3, cfg.Lineage.Elitism)
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("[Topology]\nnum_inputs = 3\n"))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, 3, cfg.Topology.NumInputs)
	assert.Equal(t, def.Topology.NumOutputs, cfg.Topology.NumOutputs)
	assert.Equal(t, def.Topology.ActivationOptions, cfg.Topology.ActivationOptions)
	assert.Equal(t, def.MutationChances, cfg.MutationChances)
	assert.Equal(t, def.Lineage, cfg.Lineage)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.ini")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Topology.NumInputs)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		ini  string
		msg  string
	}{
		{"no inputs", "[Topology]\nnum_inputs = 0\n", "num_inputs"},
		{"bad wiring", "[Topology]\ninitial_connection = partial\n", "initial_connection"},
		{"bad probability", "[Topology]\ninitial_connection_prob = 1.5\n", "initial_connection_prob"},
		{"unknown activation", "[Topology]\nactivation_options = sigmoid softmax\n", "softmax"},
		{"unknown default", "[Topology]\nactivation_default = softmax\n", "activation_default"},
		{"exponent", "[Topology]\nexponent_max = 0\n", "exponent_max"},
		{"self mutation", "[MutationChances]\nself_mutation = 101\n", "self_mutation"},
		{"max mutations", "[MutationChances]\nmax_mutations = 0\n", "max_mutations"},
		{"survival", "[Lineage]\nsurvival_threshold = 0\n", "survival_threshold"},
		{"elitism", "[Lineage]\npop_size = 2\nelitism = 3\n", "elitism"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.ini))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "examples", "xor", "configs", "xor-config"))
	require.NoError(t, err)
	assert.Equal(t, ConnectFull, cfg.Topology.InitialConnection)
	assert.Equal(t, 150, cfg.Lineage.PopSize)
}
