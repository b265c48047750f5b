package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/sim"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	table, err := sim.New(sim.Options{}).Run(dynamo.DefaultParams(), dynamo.RunConfig{Mode: dynamo.Boost, Gradient: 5}.WithDefaults())
	if err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("hill", "euler", table)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Name != "hill" || meta.Vehicle != "ev" {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	if meta.Gradient != 5 || meta.Mode != dynamo.Boost {
		t.Errorf("expected boost at 5 deg, got %s at %v", meta.Mode, meta.Gradient)
	}

	if meta.Summary.FinalSpeedKmh <= 0 {
		t.Errorf("expected positive final speed, got %f", meta.Summary.FinalSpeedKmh)
	}

	loaded, err := st.LoadTable(runID)
	if err != nil {
		t.Fatalf("load table failed: %v", err)
	}

	if loaded.Len() != table.Len() {
		t.Fatalf("expected %d rows, got %d", table.Len(), loaded.Len())
	}

	if loaded.Last() != table.Last() {
		t.Error("reloaded last row differs")
	}

	if _, err := os.Stat(filepath.Join(tmpDir, runID, "table.csv")); err != nil {
		t.Errorf("csv copy missing: %v", err)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	table, err := sim.New(sim.Options{}).Run(dynamo.DefaultParams(), dynamo.RunConfig{Mode: dynamo.Eco}.WithDefaults())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"a", "b"} {
		if _, err := st.Save(name, "euler", table); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(st.baseDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if err := st.Delete(runs[0].ID); err != nil {
		t.Fatal(err)
	}
	if runs, _ = st.List(); len(runs) != 1 {
		t.Errorf("expected 1 run after delete, got %d", len(runs))
	}
}

func TestStoreMissing(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}

	if _, err := st.Load("../etc"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTable("2b0c7b46-2d64-4c1c-9d43-4b3c0b7f8e11"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
