// Package lineage drives topology evolution across generations: it scores
// every topology, keeps the fittest and refills the population with their
// mutated offspring.
package lineage

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/baldhumanity/brain-go/brain"
	"github.com/baldhumanity/brain-go/brain/nn"
)

// ErrExtinct is returned when a generation has no individuals to evaluate.
var ErrExtinct = errors.New("population extinct")

// FitnessFunc scores one compiled network. Higher is better.
type FitnessFunc func(net *nn.Network) (float64, error)

// Individual is one topology and the fitness it scored.
type Individual struct {
	Topology *brain.Topology
	Fitness  float64
	Born     int // generation the individual was created in
}

// Population holds the state of the evolutionary process.
type Population struct {
	Config      *brain.Config
	Individuals []*Individual
	Generation  int
	Best        *Individual // Best individual found so far

	rng    brain.Rand
	logger *slog.Logger
}

// NewPopulation creates the first generation from the config. A nil logger
// uses slog.Default.
func NewPopulation(config *brain.Config, rng brain.Rand, logger *slog.Logger) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Population{
		Config: config,
		rng:    rng,
		logger: logger,
	}
	tc := config.Topology
	for i := 0; i < config.Lineage.PopSize; i++ {
		t, err := brain.New(tc.NumInputs, tc.NumOutputs, config, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create initial topology %d: %w", i, err)
		}
		p.Individuals = append(p.Individuals, &Individual{Topology: t})
	}
	return p, nil
}

// RunGeneration evaluates the current generation and breeds the next one.
// It returns the winner when the fitness threshold is met, otherwise nil.
func (p *Population) RunGeneration(fitness FitnessFunc) (*Individual, GenerationStats, error) {
	p.Generation++
	start := time.Now()

	if len(p.Individuals) == 0 {
		return p.Best, GenerationStats{Generation: p.Generation}, fmt.Errorf("generation %d: %w", p.Generation, ErrExtinct)
	}

	if err := p.evaluate(fitness); err != nil {
		return p.Best, GenerationStats{Generation: p.Generation}, fmt.Errorf("fitness evaluation failed in generation %d: %w", p.Generation, err)
	}

	currentBest := p.findBest()
	if p.Best == nil || currentBest.Fitness > p.Best.Fitness {
		p.Best = currentBest
		p.logger.Info("new best topology",
			"generation", p.Generation,
			"fitness", currentBest.Fitness,
			"neurons", currentBest.Topology.Len(),
		)
	}

	stats := p.collectStats()
	stats.Duration = time.Since(start)
	p.logger.Info("generation evaluated", "stats", stats)

	if !p.Config.Lineage.NoFitnessTermination && p.Best.Fitness >= p.Config.Lineage.FitnessThreshold {
		return p.Best, stats, nil
	}

	p.Individuals = p.reproduce()
	return nil, stats, nil
}

// evaluate compiles and scores every individual. Topologies that fail to
// compile score zero and are logged.
func (p *Population) evaluate(fitness FitnessFunc) error {
	for i, ind := range p.Individuals {
		net, err := nn.FromTopology(ind.Topology)
		if err != nil {
			p.logger.Warn("failed to compile topology, assigning fitness 0",
				"generation", p.Generation, "index", i, "error", err)
			ind.Fitness = 0
			continue
		}
		f, err := fitness(net)
		if err != nil {
			return fmt.Errorf("individual %d: %w", i, err)
		}
		if math.IsNaN(f) {
			f = 0
		}
		ind.Fitness = f
	}
	return nil
}

// findBest finds the individual with the highest fitness in the current generation.
func (p *Population) findBest() *Individual {
	var best *Individual
	maxFitness := math.Inf(-1)
	for _, ind := range p.Individuals {
		if best == nil || ind.Fitness > maxFitness {
			maxFitness = ind.Fitness
			best = ind
		}
	}
	return best
}
