// Package storage persists the player profile between sessions.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// ErrCorruptProfile is returned when a saved profile cannot be decoded.
var ErrCorruptProfile = errors.New("corrupt profile")

// Profile is the progress kept across runs.
type Profile struct {
	Currency int            `json:"currency"`
	Levels   map[string]int `json:"permanent_upgrade_levels"`
}

// NewProfile returns an empty profile with zero currency and no levels.
func NewProfile() Profile {
	return Profile{Levels: make(map[string]int)}
}

// Level returns the permanent level for key, zero if never bought.
func (p Profile) Level(key string) int {
	return p.Levels[key]
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	c := Profile{Currency: p.Currency, Levels: make(map[string]int, len(p.Levels))}
	for k, v := range p.Levels {
		c.Levels[k] = v
	}
	return c
}

// Store loads and saves a profile.
type Store interface {
	Load() (Profile, error)
	Save(p Profile) error
}

// FileStore keeps a profile as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store writes to.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the profile. A missing file yields an empty profile with no
// error; undecodable data yields an empty profile and ErrCorruptProfile.
func (s *FileStore) Load() (Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewProfile(), nil
	}
	if err != nil {
		return NewProfile(), fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return NewProfile(), fmt.Errorf("%w: %s: %v", ErrCorruptProfile, s.path, err)
	}
	if p.Currency < 0 {
		return NewProfile(), fmt.Errorf("%w: negative currency %d", ErrCorruptProfile, p.Currency)
	}
	if p.Levels == nil {
		p.Levels = make(map[string]int)
	}
	for k, v := range p.Levels {
		if v < 0 {
			return NewProfile(), fmt.Errorf("%w: negative level %d for %q", ErrCorruptProfile, v, k)
		}
	}
	return p, nil
}

// Save writes the profile through a temporary file and rename so a crash
// never leaves a partially written profile behind.
func (s *FileStore) Save(p Profile) error {
	if p.Levels == nil {
		p.Levels = make(map[string]int)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp profile: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}
