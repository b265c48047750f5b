package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/export"
	"github.com/san-kum/powertrain/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	tableFile    = "table.json"
	csvFile      = "table.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string { return filepath.Join(s.baseDir, runID) }

type RunMetadata struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Timestamp  time.Time        `json:"timestamp"`
	Vehicle    string           `json:"vehicle"`
	Motor      string           `json:"motor"`
	Mode       dynamo.Mode      `json:"mode"`
	Gradient   float64          `json:"gradient"`
	Dt         float64          `json:"dt"`
	Duration   float64          `json:"duration"`
	Integrator string           `json:"integrator"`
	Summary    metrics.Summary  `json:"summary"`
	Config     dynamo.RunConfig `json:"config"`
}

// Save writes metadata, the full table and a CSV copy under a fresh run id.
func (s *Store) Save(name, integrator string, table *dynamo.Table) (string, error) {
	runID := uuid.NewString()
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	vehicle := "ev"
	if table.Params.IsUGV() {
		vehicle = "ugv"
	}
	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now(),
		Vehicle:    vehicle,
		Motor:      table.Params.Motor.Name,
		Mode:       table.Config.Mode,
		Gradient:   table.Config.Gradient,
		Dt:         table.Config.Dt,
		Duration:   table.Config.Duration,
		Integrator: integrator,
		Summary:    metrics.Summarize(table),
		Config:     table.Config,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, tableFile), table); err != nil {
		return "", err
	}
	if err := export.WriteFile(filepath.Join(runDir, csvFile), table, export.CSV); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	var meta RunMetadata
	if err := s.readJSON(runID, metadataFile, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTable(runID string) (*dynamo.Table, error) {
	var table dynamo.Table
	if err := s.readJSON(runID, tableFile, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(s.Dir(runID))
}

func (s *Store) readJSON(runID, name string, v any) error {
	if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
