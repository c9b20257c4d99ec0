package stage

import (
	"os"
	"testing"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(os.DirFS("testdata"), "tracks")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoadParsesStageDescriptors(t *testing.T) {
	c := loadTestCatalog(t)

	info, ok := c.Stage(5)
	if !ok {
		t.Fatal("stage 5 not found")
	}
	if info.Name != "Sunset Loop" {
		t.Errorf("Name = %q, want %q", info.Name, "Sunset Loop")
	}
	if info.Scene != "sunset_loop" {
		t.Errorf("Scene = %q, want %q", info.Scene, "sunset_loop")
	}
	if info.DefaultLaps != 4 {
		t.Errorf("DefaultLaps = %d, want 4", info.DefaultLaps)
	}
	if len(info.SpawnPoints) != 2 {
		t.Fatalf("SpawnPoints = %d, want 2", len(info.SpawnPoints))
	}
	// Sorted by spawn index regardless of file order.
	if info.SpawnPoints[0].Index != 0 || info.SpawnPoints[1].Index != 1 {
		t.Errorf("spawn order = %v", info.SpawnPoints)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	c := loadTestCatalog(t)

	info, ok := c.Stage(2)
	if !ok {
		t.Fatal("stage 2 not found")
	}
	// harbor_sprint.tmx has no laps property.
	if info.DefaultLaps != defaultLaps {
		t.Errorf("DefaultLaps = %d, want %d", info.DefaultLaps, defaultLaps)
	}
}

func TestStagesOrderedByID(t *testing.T) {
	c := loadTestCatalog(t)

	stages := c.Stages()
	if len(stages) != 2 {
		t.Fatalf("len(Stages()) = %d, want 2", len(stages))
	}
	if stages[0].ID != 2 || stages[1].ID != 5 {
		t.Errorf("order = [%d %d], want [2 5]", stages[0].ID, stages[1].ID)
	}
}

func TestDefaultSettingsUseLowestStage(t *testing.T) {
	c := loadTestCatalog(t)

	s := c.DefaultSettings()
	if s.StageID != 2 {
		t.Errorf("StageID = %d, want 2", s.StageID)
	}
	if s.Laps != defaultLaps {
		t.Errorf("Laps = %d, want %d", s.Laps, defaultLaps)
	}
	if s.MaxPlayers != 1 {
		t.Errorf("MaxPlayers = %d, want 1", s.MaxPlayers)
	}
}

func TestUnknownStage(t *testing.T) {
	c := loadTestCatalog(t)

	if _, ok := c.Stage(99); ok {
		t.Error("Stage(99) succeeded, want miss")
	}
}
