package lineage

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes one evaluated generation.
type GenerationStats struct {
	Generation     int           `csv:"generation"`
	PopSize        int           `csv:"pop_size"`
	BestFitness    float64       `csv:"best_fitness"`
	MeanFitness    float64       `csv:"mean_fitness"`
	StdDevFitness  float64       `csv:"stddev_fitness"`
	WorstFitness   float64       `csv:"worst_fitness"`
	MeanNeurons    float64       `csv:"mean_neurons"`
	MeanLinks      float64       `csv:"mean_connections"`
	MeanSelfMutate float64       `csv:"mean_self_mutation"`
	DurationMS     float64       `csv:"duration_ms"`
	Duration       time.Duration `csv:"-"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("pop_size", s.PopSize),
		slog.Float64("best", s.BestFitness),
		slog.Float64("mean", s.MeanFitness),
		slog.Float64("stddev", s.StdDevFitness),
		slog.Float64("mean_neurons", s.MeanNeurons),
		slog.Float64("mean_connections", s.MeanLinks),
		slog.Float64("mean_self_mutation", s.MeanSelfMutate),
		slog.Duration("duration", s.Duration),
	)
}

func (p *Population) collectStats() GenerationStats {
	n := len(p.Individuals)
	fitness := make([]float64, n)
	neurons := make([]float64, n)
	links := make([]float64, n)
	selfMutation := make([]float64, n)
	for i, ind := range p.Individuals {
		fitness[i] = ind.Fitness
		neurons[i] = float64(ind.Topology.Len())
		live, _ := ind.Topology.ConnectionCount()
		links[i] = float64(live)
		selfMutation[i] = float64(ind.Topology.MutationChances().SelfMutation())
	}

	s := GenerationStats{Generation: p.Generation, PopSize: n}
	if n == 0 {
		return s
	}
	s.MeanFitness, s.StdDevFitness = stat.MeanStdDev(fitness, nil)
	if n < 2 {
		s.StdDevFitness = 0
	}
	s.BestFitness = floats.Max(fitness)
	s.WorstFitness = floats.Min(fitness)
	s.MeanNeurons = stat.Mean(neurons, nil)
	s.MeanLinks = stat.Mean(links, nil)
	s.MeanSelfMutate = stat.Mean(selfMutation, nil)
	return s
}

// StatsWriter appends generation stats to a CSV file.
type StatsWriter struct {
	file          *os.File
	headerWritten bool
}

// NewStatsWriter creates (or truncates) the CSV file at path.
func NewStatsWriter(path string) (*StatsWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &StatsWriter{file: f}, nil
}

// Write appends one record, writing the header on first use.
func (w *StatsWriter) Write(s GenerationStats) error {
	s.DurationMS = float64(s.Duration) / float64(time.Millisecond)
	records := []GenerationStats{s}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *StatsWriter) Close() error {
	return w.file.Close()
}
