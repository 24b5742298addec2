package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// View resolution - the visible viewport in logical world units.
const (
	ViewWidth  = 1024
	ViewHeight = 768
)

// World dimensions - five screens in each direction.
const (
	WorldWidth  = ViewWidth * 5
	WorldHeight = ViewHeight * 5
)

// Tick rate of the simulation loop.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Largest terminal area the renderer draws into. Bigger terminals get a
// centered viewport.
const (
	MaxTermWidth  = 256
	MaxTermHeight = 96
)

// Inactivity thresholds for remote sessions.
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Tuning holds the gameplay parameters that may be overridden from a TOML file.
// Durations are expressed in milliseconds to keep the file format flat.
type Tuning struct {
	WorldWidth  float64 `toml:"world_width"`
	WorldHeight float64 `toml:"world_height"`

	MaxEnemies      int     `toml:"max_enemies"`
	SpawnIntervalMs int     `toml:"spawn_interval_ms"`
	SpawnRadiusMin  float64 `toml:"spawn_radius_min"`
	SpawnRadiusMax  float64 `toml:"spawn_radius_max"`

	QuadtreeCapacity int `toml:"quadtree_capacity"`
	QuadtreeMaxDepth int `toml:"quadtree_max_depth"`

	SteeringRadius     float64 `toml:"steering_radius"`
	SteeringAttraction float64 `toml:"steering_attraction"`

	ContactDamageBase float64 `toml:"contact_damage_base"`
	UpgradeOffers     int     `toml:"upgrade_offers"`

	// Seed for the simulation RNG. Zero picks a time-based seed.
	Seed int64 `toml:"seed"`
}

// DefaultTuning returns the stock arena parameters.
func DefaultTuning() Tuning {
	return Tuning{
		WorldWidth:         WorldWidth,
		WorldHeight:        WorldHeight,
		MaxEnemies:         150,
		SpawnIntervalMs:    500,
		SpawnRadiusMin:     700,
		SpawnRadiusMax:     800,
		QuadtreeCapacity:   10,
		QuadtreeMaxDepth:   5,
		SteeringRadius:     40,
		SteeringAttraction: 0.7,
		ContactDamageBase:  5,
		UpgradeOffers:      3,
	}
}

// SpawnInterval returns the spawner period as a duration.
func (t Tuning) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnIntervalMs) * time.Millisecond
}

// Validate rejects parameter sets the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if t.WorldWidth <= 0 || t.WorldHeight <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", t.WorldWidth, t.WorldHeight))
	}
	if t.MaxEnemies < 0 {
		errs = append(errs, fmt.Errorf("max_enemies must not be negative, got %d", t.MaxEnemies))
	}
	if t.SpawnIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("spawn_interval_ms must be positive, got %d", t.SpawnIntervalMs))
	}
	if t.SpawnRadiusMin < 0 || t.SpawnRadiusMax < t.SpawnRadiusMin {
		errs = append(errs, fmt.Errorf("spawn radius range [%g, %g] is invalid", t.SpawnRadiusMin, t.SpawnRadiusMax))
	}
	if t.QuadtreeCapacity < 1 || t.QuadtreeMaxDepth < 0 {
		errs = append(errs, fmt.Errorf("quadtree capacity %d / depth %d is invalid", t.QuadtreeCapacity, t.QuadtreeMaxDepth))
	}
	if t.SteeringRadius <= 0 {
		errs = append(errs, fmt.Errorf("steering_radius must be positive, got %g", t.SteeringRadius))
	}
	if t.SteeringAttraction < 0 || t.SteeringAttraction > 1 {
		errs = append(errs, fmt.Errorf("steering_attraction must be in [0, 1], got %g", t.SteeringAttraction))
	}
	if t.UpgradeOffers < 0 {
		errs = append(errs, fmt.Errorf("upgrade_offers must not be negative, got %d", t.UpgradeOffers))
	}
	return errors.Join(errs...)
}

// LoadTuning reads overrides from a TOML file on top of DefaultTuning.
// An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning file: %w", err)
	}
	if _, err := toml.Decode(string(data), &t); err != nil {
		return DefaultTuning(), fmt.Errorf("decode tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}
