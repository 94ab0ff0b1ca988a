package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/festive/config"
)

// OutputManager writes frame timing CSV and a config snapshot to a run
// directory.
type OutputManager struct {
	dir        string
	framesFile *os.File

	framesHeaderWritten bool
}

// NewOutputManager creates the output directory and opens frames.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}

	return &OutputManager{dir: dir, framesFile: f}, nil
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil || cfg == nil {
		return nil
	}
	if err := cfg.WriteYAML(filepath.Join(om.dir, "config.yaml")); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	return nil
}

// WritePerf appends one window of stats to frames.csv.
func (om *OutputManager) WritePerf(stats PerfStats) error {
	if om == nil {
		return nil
	}

	rows := stats.ToCSV()

	if !om.framesHeaderWritten {
		if err := gocsv.Marshal(rows, om.framesFile); err != nil {
			return fmt.Errorf("writing frame stats: %w", err)
		}
		om.framesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, om.framesFile); err != nil {
			return fmt.Errorf("writing frame stats: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.framesFile == nil {
		return nil
	}
	return om.framesFile.Close()
}
