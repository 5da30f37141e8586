package lineage

import (
	"math"
	"sort"
)

// reproduce builds the next generation: elites are carried over untouched,
// and the remaining slots are filled round-robin with offspring of the
// survivors, fittest first.
func (p *Population) reproduce() []*Individual {
	cfg := p.Config.Lineage
	ranked := make([]*Individual, len(p.Individuals))
	copy(ranked, p.Individuals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	survivalCutoff := int(math.Ceil(cfg.SurvivalThreshold * float64(len(ranked))))
	survivalCutoff = max(survivalCutoff, cfg.Elitism, 1)
	survivalCutoff = min(survivalCutoff, len(ranked))
	parents := ranked[:survivalCutoff]

	next := make([]*Individual, 0, cfg.PopSize)
	for i := 0; i < cfg.Elitism && i < len(ranked); i++ {
		next = append(next, ranked[i])
	}
	for i := 0; len(next) < cfg.PopSize; i++ {
		parent := parents[i%len(parents)]
		next = append(next, &Individual{
			Topology: parent.Topology.Replicate(p.rng),
			Born:     p.Generation,
		})
	}
	return next
}
