package res

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	g := newTestGraph(t)

	g.AddTechnology("PWRHYD", "Hydroelectric Power Plant", 0)
	g.AddTechnology("PWRTRN", "Transmission of Electricity", 1)
	g.AddFuel("PWRHYD", "PWRTRN", "ELC001", "Electricity before Transmission")
	g.AddRegion("UTOPIA")

	path := filepath.Join(t.TempDir(), "res.snap")
	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	restored, err := LoadSnapshot(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	if restored.Order() != 2 || restored.Size() != 1 {
		t.Errorf("Expected 2 nodes and 1 edge, got %d and %d",
			restored.Order(), restored.Size())
	}

	tech, err := restored.GetTechnology("PWRHYD")
	if err != nil {
		t.Fatalf("Label lookup lost across snapshot: %v", err)
	}
	if tech.Params["capacity_factor"] != 0.85 {
		t.Errorf("Attached params lost: %v", tech.Params)
	}

	out, err := restored.OutFuels("PWRHYD")
	if err != nil || len(out) != 1 || out[0].Label != "ELC001" {
		t.Errorf("Adjacency lost across snapshot: %v, %v", out, err)
	}

	if len(restored.Set(SetRegion)) != 1 {
		t.Error("Index sets lost across snapshot")
	}
}

func TestSnapshot_CountersSurvive(t *testing.T) {
	g := newEmptyGraph(t)
	g.AddTechnology("PWRHYD", "Hydroelectric", 0)
	g.AddTechnology("PWRGEO", "Geothermal", 0)

	path := filepath.Join(t.TempDir(), "res.snap")
	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	restored, err := LoadSnapshot(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	tech, err := restored.AddTechnology("PWRSOL", "Photovoltaic", 0)
	if err != nil {
		t.Fatalf("Failed to add technology: %v", err)
	}
	if tech.ID != "t3" {
		t.Errorf("Counter state lost: expected 't3', got %q", tech.ID)
	}
}

func TestSnapshot_Corrupt(t *testing.T) {
	dir := t.TempDir()

	cases := map[string][]byte{
		"truncated.snap": []byte("RES"),
		"badmagic.snap":  append([]byte("NOTASNAP"), make([]byte, 16)...),
	}
	for name, data := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		if _, err := LoadSnapshot(context.Background(), path); !errors.Is(err, ErrSnapshotCorrupt) {
			t.Errorf("%s: expected ErrSnapshotCorrupt, got %v", name, err)
		}
	}
}

func TestSnapshot_ChecksumMismatch(t *testing.T) {
	g := newEmptyGraph(t)
	g.AddTechnology("PWRHYD", "Hydroelectric", 0)

	path := filepath.Join(t.TempDir(), "res.snap")
	if err := g.SaveSnapshot(path); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	// Flip a payload byte
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to rewrite snapshot: %v", err)
	}

	if _, err := LoadSnapshot(context.Background(), path); !errors.Is(err, ErrSnapshotCorrupt) {
		t.Errorf("Expected ErrSnapshotCorrupt after bit flip, got %v", err)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	_, err := LoadSnapshot(context.Background(), filepath.Join(t.TempDir(), "nope.snap"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
