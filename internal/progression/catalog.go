package progression

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/tomz197/survivors/internal/object"
)

// Key of the acquire upgrade granted at the start of every run.
const StartingUpgrade = "ACQUIRE_BOLT"

var (
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	ErrNotEligible    = errors.New("upgrade not eligible")
)

//go:embed upgrades.toml
var defaultUpgrades []byte

// Kind classifies what an upgrade changes.
type Kind int

const (
	KindPassive Kind = iota
	KindAcquire
	KindSkill
)

func (k Kind) String() string {
	switch k {
	case KindPassive:
		return "passive"
	case KindAcquire:
		return "acquire"
	case KindSkill:
		return "skill"
	default:
		return "unknown"
	}
}

// Upgrade is a validated level-up upgrade descriptor.
type Upgrade struct {
	Key         string
	Name        string
	Description string
	Kind        Kind

	Skill      object.SkillKind  // Acquire and skill upgrades
	PlayerAttr object.PlayerAttr // Passive upgrades
	SkillAttr  object.SkillAttr  // Skill upgrades
	Op         object.Op
	Magnitude  float64
	Rebuild    bool
}

type rawUpgrade struct {
	Key         string  `toml:"key"`
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	Kind        string  `toml:"kind"`
	Skill       string  `toml:"skill"`
	Target      string  `toml:"target"`
	Op          string  `toml:"op"`
	Magnitude   float64 `toml:"magnitude"`
	Rebuild     bool    `toml:"rebuild"`
}

type rawCatalog struct {
	Upgrades []rawUpgrade `toml:"upgrade"`
}

// Catalog is the ordered set of upgrades a run can offer.
type Catalog struct {
	upgrades []Upgrade
	byKey    map[string]int
}

// DefaultCatalog loads the built-in upgrade table.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultUpgrades)
}

// LoadCatalog decodes and validates a TOML upgrade table. Every attribute
// name must belong to the entity it targets; any violation fails the load.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("decode upgrades: %w", err)
	}

	c := &Catalog{byKey: make(map[string]int, len(raw.Upgrades))}
	var errs []error
	for i, r := range raw.Upgrades {
		u, err := r.validate()
		if err != nil {
			errs = append(errs, fmt.Errorf("upgrade %d (%q): %w", i, r.Key, err))
			continue
		}
		if _, dup := c.byKey[u.Key]; dup {
			errs = append(errs, fmt.Errorf("upgrade %d: duplicate key %q", i, u.Key))
			continue
		}
		c.byKey[u.Key] = len(c.upgrades)
		c.upgrades = append(c.upgrades, u)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

func (r rawUpgrade) validate() (Upgrade, error) {
	u := Upgrade{
		Key:         r.Key,
		Name:        r.Name,
		Description: r.Description,
		Magnitude:   r.Magnitude,
		Rebuild:     r.Rebuild,
	}
	if u.Key == "" {
		return u, errors.New("missing key")
	}

	var err error
	switch r.Kind {
	case "passive":
		u.Kind = KindPassive
		if u.PlayerAttr, err = object.ParsePlayerAttr(r.Target); err != nil {
			return u, err
		}
		if u.Op, err = object.ParseOp(r.Op); err != nil {
			return u, err
		}
	case "acquire":
		u.Kind = KindAcquire
		if u.Skill, err = object.ParseSkillKind(r.Skill); err != nil {
			return u, err
		}
	case "skill":
		u.Kind = KindSkill
		if u.Skill, err = object.ParseSkillKind(r.Skill); err != nil {
			return u, err
		}
		if u.SkillAttr, err = object.ParseSkillAttr(r.Target); err != nil {
			return u, err
		}
		if !object.SkillSupports(u.Skill, u.SkillAttr) {
			return u, fmt.Errorf("skill %s has no attribute %q", u.Skill, r.Target)
		}
		if u.Op, err = object.ParseOp(r.Op); err != nil {
			return u, err
		}
	default:
		return u, fmt.Errorf("unknown kind %q", r.Kind)
	}
	return u, nil
}

// Len returns the number of upgrades in the catalog.
func (c *Catalog) Len() int {
	return len(c.upgrades)
}

// Lookup returns the upgrade with the given key.
func (c *Catalog) Lookup(key string) (Upgrade, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Upgrade{}, false
	}
	return c.upgrades[i], true
}
