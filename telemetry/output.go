package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/termglow/config"
)

// SessionInfo records what is needed to replay a session's animation.
type SessionInfo struct {
	Seed       int64   `yaml:"seed"`
	TimeOffset float64 `yaml:"time_offset"`
	StartedAt  string  `yaml:"started_at"`
}

// OutputManager writes a session's output directory: frames.csv,
// config.yaml and session.yaml.
type OutputManager struct {
	dir        string
	framesFile *os.File

	framesHeaderWritten bool
}

// NewOutputManager creates dir and opens frames.csv.
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

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSession saves the seed and time offset of this session.
func (om *OutputManager) WriteSession(info SessionInfo) error {
	if om == nil {
		return nil
	}

	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "session.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing session.yaml: %w", err)
	}
	return nil
}

// WritePerf appends a statistics row to frames.csv.
func (om *OutputManager) WritePerf(stats PerfStats, elapsedSec float64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(elapsedSec)}

	if !om.framesHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		om.framesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
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

// Close closes frames.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.framesFile == nil {
		return nil
	}
	err := om.framesFile.Close()
	om.framesFile = nil
	return err
}
