package brain

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
)

// SaveCheckpoint writes the topology to a gzip-compressed gob file.
func (t *Topology) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	if err := gob.NewEncoder(gzWriter).Encode(t.Snapshot()); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode topology: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint '%s': %w", filePath, err)
	}
	return nil
}

// LoadCheckpoint reads a topology written by SaveCheckpoint. The config is
// not stored in the checkpoint; a nil config uses DefaultConfig.
func LoadCheckpoint(filePath string, config *Config) (*Topology, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var snap Snapshot
	if err := gob.NewDecoder(gzReader).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode topology from checkpoint: %w", err)
	}

	t, err := FromSnapshot(&snap, config)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild topology from checkpoint: %w", err)
	}
	return t, nil
}
