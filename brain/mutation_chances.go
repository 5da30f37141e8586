package brain

import (
	"fmt"
	"iter"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Action is a kind of mutation applied to a topology.
type Action uint8

const (
	SplitConnection Action = iota
	AddConnection
	RemoveNeuron
	MutateWeight
	MutateActivation
	MutateExponent
	MutateBias

	NumActions = int(MutateBias) + 1
)

var actionNames = [NumActions]string{
	"split_connection",
	"add_connection",
	"remove_neuron",
	"mutate_weight",
	"mutate_activation",
	"mutate_exponent",
	"mutate_bias",
}

func (a Action) String() string {
	if int(a) < NumActions {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Default bounds for the mutation model. MutationChancesConfig overrides them.
const (
	DefaultMaxMutations         = 200
	DefaultMaxChanceAdjustments = 8
	DefaultChanceMutatePower    = 5.0
)

// chancesTotal is the sum the action distribution is normalized to.
const chancesTotal = 100.0

// MutationChances is a self-adapting probability model over mutation actions.
// The weights always sum to 100 and selfMutation stays in [0,100].
type MutationChances struct {
	selfMutation int
	weights      [NumActions]float64

	maxMutations   int
	maxAdjustments int
	power          float64
}

// NewMutationChances starts from a uniform distribution over all actions.
func NewMutationChances(selfMutation int) *MutationChances {
	mc := &MutationChances{
		selfMutation:   clampInt(selfMutation, 0, 100),
		maxMutations:   DefaultMaxMutations,
		maxAdjustments: DefaultMaxChanceAdjustments,
		power:          DefaultChanceMutatePower,
	}
	mc.resetUniform()
	return mc
}

// NewMutationChancesFromConfig applies the configured rate and bounds.
func NewMutationChancesFromConfig(cfg MutationChancesConfig) *MutationChances {
	mc := NewMutationChances(cfg.SelfMutation)
	if cfg.MaxMutations > 0 {
		mc.maxMutations = cfg.MaxMutations
	}
	if cfg.MaxChanceAdjustments > 0 {
		mc.maxAdjustments = cfg.MaxChanceAdjustments
	}
	if cfg.ChanceMutatePower >= 0 {
		mc.power = cfg.ChanceMutatePower
	}
	return mc
}

// NewMutationChancesWithWeights builds a model with an explicit distribution.
// The weights are renormalized to sum to 100.
func NewMutationChancesWithWeights(selfMutation int, weights [NumActions]float64) *MutationChances {
	mc := NewMutationChances(selfMutation)
	mc.weights = weights
	mc.normalize()
	return mc
}

// SelfMutation returns the meta rate in [0,100].
func (mc *MutationChances) SelfMutation() int { return mc.selfMutation }

// Weight returns the share of the distribution held by a.
func (mc *MutationChances) Weight(a Action) float64 { return mc.weights[a] }

// Weights returns a copy of the distribution indexed by Action.
func (mc *MutationChances) Weights() [NumActions]float64 { return mc.weights }

// MaxMutations is the hard cap on the length of a mutation sequence.
func (mc *MutationChances) MaxMutations() int { return mc.maxMutations }

// Clone returns an independent copy.
func (mc *MutationChances) Clone() *MutationChances {
	cp := *mc
	return &cp
}

// AdjustMutationChances drifts the distribution and the meta rate itself.
func (mc *MutationChances) AdjustMutationChances(rng Rand) {
	for i := 0; i < mc.maxAdjustments && chance(rng, float64(mc.selfMutation)); i++ {
		a := rng.Intn(NumActions)
		mc.weights[a] += randSigned(rng, mc.power)
		mc.normalize()
	}
	mc.selfMutation = clampInt(mc.selfMutation+rng.Intn(3)-1, 0, 100)
}

// Mutations returns a lazy, finite sequence of actions. Before each yield a
// coin weighted by the meta rate is flipped; the first failure ends the
// sequence. It never yields more than MaxMutations actions.
func (mc *MutationChances) Mutations(rng Rand) iter.Seq[Action] {
	return func(yield func(Action) bool) {
		for n := 0; n < mc.maxMutations; n++ {
			if !chance(rng, float64(mc.selfMutation)) {
				return
			}
			if !yield(mc.sample(rng)) {
				return
			}
		}
	}
}

// YieldMutations collects a full Mutations sequence.
func (mc *MutationChances) YieldMutations(rng Rand) []Action {
	var actions []Action
	for a := range mc.Mutations(rng) {
		actions = append(actions, a)
	}
	return actions
}

// sample picks the first action whose cumulative weight exceeds a uniform
// draw in [0, total).
func (mc *MutationChances) sample(rng Rand) Action {
	total := floats.Sum(mc.weights[:])
	draw := rng.Float64() * total
	cumulative := 0.0
	for i, w := range mc.weights {
		cumulative += w
		if cumulative > draw {
			return Action(i)
		}
	}
	// Rounding left draw at the very top of the range.
	for i := NumActions - 1; i >= 0; i-- {
		if mc.weights[i] > 0 {
			return Action(i)
		}
	}
	return Action(NumActions - 1)
}

// normalize clamps negative weights to zero and rescales the sum to 100.
// A distribution with nothing left resets to uniform.
func (mc *MutationChances) normalize() {
	for i, w := range mc.weights {
		if w < 0 {
			mc.weights[i] = 0
		}
	}
	total := floats.Sum(mc.weights[:])
	if total <= 0 {
		mc.resetUniform()
		return
	}
	floats.Scale(chancesTotal/total, mc.weights[:])
}

func (mc *MutationChances) resetUniform() {
	for i := range mc.weights {
		mc.weights[i] = chancesTotal / float64(NumActions)
	}
}

// String returns a string representation of the MutationChances.
func (mc *MutationChances) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MutationChances(Self: %d", mc.selfMutation)
	for i, w := range mc.weights {
		fmt.Fprintf(&b, ", %s: %.2f", Action(i), w)
	}
	b.WriteString(")")
	return b.String()
}
