package brain

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Initial wiring schemes for New.
const (
	ConnectRandom = "random"
	ConnectFull   = "full"
)

// Config stores the configuration parameters for topology evolution.
type Config struct {
	Topology        TopologyConfig
	MutationChances MutationChancesConfig
	Lineage         LineageConfig
}

// TopologyConfig holds parameters for building and mutating topologies.
type TopologyConfig struct {
	NumInputs             int     `ini:"num_inputs"`
	NumOutputs            int     `ini:"num_outputs"`
	InitialConnection     string  `ini:"initial_connection"` // random or full
	InitialConnectionProb float64 `ini:"initial_connection_prob"`

	ActivationDefault string   `ini:"activation_default"`           // Name, or 'random'
	ActivationOptions []string `ini:"activation_options" delim:" "` // Space-separated list

	// Polynomial enables per-connection exponents.
	Polynomial  bool `ini:"polynomial"`
	ExponentMax int  `ini:"exponent_max"`

	WeightInitRange   float64 `ini:"weight_init_range"`
	WeightMutatePower float64 `ini:"weight_mutate_power"`
	BiasInitRange     float64 `ini:"bias_init_range"`
	BiasMutatePower   float64 `ini:"bias_mutate_power"`
}

// MutationChancesConfig seeds and bounds the self-adapting mutation model.
type MutationChancesConfig struct {
	SelfMutation         int     `ini:"self_mutation"`
	ChanceMutatePower    float64 `ini:"chance_mutate_power"`
	MaxMutations         int     `ini:"max_mutations"`
	MaxChanceAdjustments int     `ini:"max_chance_adjustments"`
}

// LineageConfig holds parameters for the generational driver.
type LineageConfig struct {
	PopSize              int     `ini:"pop_size"`
	SurvivalThreshold    float64 `ini:"survival_threshold"`
	Elitism              int     `ini:"elitism"`
	FitnessThreshold     float64 `ini:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination"`
}

// DefaultConfig returns a configuration with usable defaults.
func DefaultConfig() *Config {
	return &Config{
		Topology: TopologyConfig{
			NumInputs:             2,
			NumOutputs:            1,
			InitialConnection:     ConnectRandom,
			InitialConnectionProb: 0.5,
			ActivationDefault:     "random",
			ActivationOptions:     []string{"sigmoid", "tanh", "relu", "identity"},
			Polynomial:            false,
			ExponentMax:           3,
			WeightInitRange:       1.0,
			WeightMutatePower:     0.5,
			BiasInitRange:         0.0,
			BiasMutatePower:       0.25,
		},
		MutationChances: MutationChancesConfig{
			SelfMutation:         50,
			ChanceMutatePower:    5,
			MaxMutations:         200,
			MaxChanceAdjustments: 8,
		},
		Lineage: LineageConfig{
			PopSize:           50,
			SurvivalThreshold: 0.2,
			Elitism:           1,
			FitnessThreshold:  3.9,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	config, err := loadConfig(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return config, nil
}

// ParseConfig parses INI configuration from memory.
func ParseConfig(data []byte) (*Config, error) {
	return loadConfig(data)
}

func loadConfig(source interface{}) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, source)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()

	if err := cfg.Section("Topology").MapTo(&config.Topology); err != nil {
		return nil, fmt.Errorf("failed to map [Topology] section: %w", err)
	}
	if err := cfg.Section("MutationChances").MapTo(&config.MutationChances); err != nil {
		return nil, fmt.Errorf("failed to map [MutationChances] section: %w", err)
	}
	if err := cfg.Section("Lineage").MapTo(&config.Lineage); err != nil {
		return nil, fmt.Errorf("failed to map [Lineage] section: %w", err)
	}

	config.Topology.InitialConnection = cleanIniString(config.Topology.InitialConnection)
	config.Topology.ActivationDefault = cleanIniString(config.Topology.ActivationDefault)
	opts := config.Topology.ActivationOptions[:0]
	for _, opt := range config.Topology.ActivationOptions {
		if opt = strings.TrimSpace(opt); opt != "" {
			opts = append(opts, opt)
		}
	}
	config.Topology.ActivationOptions = opts

	if config.Topology.InitialConnection == "" {
		config.Topology.InitialConnection = ConnectRandom
	}
	if config.Topology.ActivationDefault == "" {
		config.Topology.ActivationDefault = "random"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and cross-field constraints.
func (c *Config) Validate() error {
	t := c.Topology
	if t.NumInputs <= 0 {
		return fmt.Errorf("config error: num_inputs must be positive")
	}
	if t.NumOutputs <= 0 {
		return fmt.Errorf("config error: num_outputs must be positive")
	}
	switch t.InitialConnection {
	case ConnectRandom, ConnectFull:
	default:
		return fmt.Errorf("config error: invalid initial_connection type '%s'", t.InitialConnection)
	}
	if t.InitialConnectionProb < 0 || t.InitialConnectionProb > 1 {
		return fmt.Errorf("config error: initial_connection_prob must be between 0 and 1")
	}
	if len(t.ActivationOptions) == 0 {
		return fmt.Errorf("config error: activation_options must be specified")
	}
	for _, name := range t.ActivationOptions {
		if _, err := GetActivation(name); err != nil {
			return fmt.Errorf("config error: activation_options: %w", err)
		}
	}
	if t.ActivationDefault != "random" {
		if _, err := GetActivation(t.ActivationDefault); err != nil {
			return fmt.Errorf("config error: activation_default: %w", err)
		}
	}
	if t.ExponentMax < 1 {
		return fmt.Errorf("config error: exponent_max must be at least 1")
	}
	if t.WeightInitRange < 0 || t.WeightMutatePower < 0 || t.BiasInitRange < 0 || t.BiasMutatePower < 0 {
		return fmt.Errorf("config error: init ranges and mutate powers cannot be negative")
	}

	m := c.MutationChances
	if m.SelfMutation < 0 || m.SelfMutation > 100 {
		return fmt.Errorf("config error: self_mutation must be between 0 and 100")
	}
	if m.ChanceMutatePower < 0 {
		return fmt.Errorf("config error: chance_mutate_power cannot be negative")
	}
	if m.MaxMutations <= 0 {
		return fmt.Errorf("config error: max_mutations must be positive")
	}
	if m.MaxChanceAdjustments <= 0 {
		return fmt.Errorf("config error: max_chance_adjustments must be positive")
	}

	l := c.Lineage
	if l.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if l.SurvivalThreshold <= 0 || l.SurvivalThreshold > 1 {
		return fmt.Errorf("config error: survival_threshold must be in (0, 1]")
	}
	if l.Elitism < 0 || l.Elitism > l.PopSize {
		return fmt.Errorf("config error: elitism must be between 0 and pop_size")
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
