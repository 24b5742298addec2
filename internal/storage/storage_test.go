package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingFileIsEmptyProfile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "save.json"))
	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Currency != 0 || len(p.Levels) != 0 || p.Levels == nil {
		t.Fatalf("expected empty profile, got %+v", p)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.json")
	s := NewFileStore(path)

	want := Profile{Currency: 42, Levels: map[string]int{"VITALITY": 2}}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Currency != 42 || got.Level("VITALITY") != 2 {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestFileStoreCorruptData(t *testing.T) {
	tests := map[string]string{
		"garbage":           "{not json",
		"negative currency": `{"currency": -3}`,
		"negative level":    `{"currency": 1, "permanent_upgrade_levels": {"HASTE": -1}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.json")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			p, err := NewFileStore(path).Load()
			if !errors.Is(err, ErrCorruptProfile) {
				t.Fatalf("err = %v, want ErrCorruptProfile", err)
			}
			if p.Currency != 0 || len(p.Levels) != 0 {
				t.Fatalf("corrupt data not defaulted: %+v", p)
			}
		})
	}
}

func TestProfileCloneIsDeep(t *testing.T) {
	p := Profile{Currency: 1, Levels: map[string]int{"GREED": 1}}
	c := p.Clone()
	c.Levels["GREED"] = 5
	if p.Levels["GREED"] != 1 {
		t.Fatal("clone shares the levels map")
	}
}
