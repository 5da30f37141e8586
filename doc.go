// Package brain evolves small feed-forward neural networks whose topology,
// not just their weights, changes from generation to generation.
//
// A Topology owns a graph of Input, Hidden and Output neurons. Connections are
// owned by their destination and reference their source without keeping it
// alive, so removing a neuron leaves dead connections behind that the
// decycler prunes. Each topology carries a self-adapting MutationChances that
// decides how many and which mutations its offspring receive, and drifts a
// little every generation.
//
// Basic usage:
//
//	config, err := brain.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//	rng := rand.New(rand.NewSource(1))
//
//	parent, err := brain.New(2, 1, config, rng)
//	if err != nil {
//		log.Fatalf("Error creating topology: %v", err)
//	}
//
//	// Clone, mutate, drift the mutation model and remove cycles.
//	child := parent.Replicate(rng)
//
//	net, err := nn.FromTopology(child)
//	if err != nil {
//		log.Fatalf("Error compiling network: %v", err)
//	}
//	outputs := net.Predict([]float64{0.5, 1.0})
//
// The lineage package runs this loop over a whole population.
package brain
