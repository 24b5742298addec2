// Package shop sells permanent upgrades for currency banked across runs.
package shop

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/survivors/internal/object"
	"github.com/tomz197/survivors/internal/storage"
)

var (
	ErrUnknownUpgrade    = errors.New("unknown permanent upgrade")
	ErrMaxLevel          = errors.New("permanent upgrade at max level")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Upgrade describes a permanent upgrade and the bonus each level grants.
type Upgrade struct {
	Key      string
	Name     string
	BaseCost float64
	Growth   float64
	MaxLevel int

	Attr      object.PlayerAttr
	Op        object.Op
	Magnitude float64
}

// Cost returns the price of the next level when the upgrade is at level.
func (u Upgrade) Cost(level int) int {
	return int(math.Floor(u.BaseCost * math.Pow(u.Growth, float64(level))))
}

// DefaultUpgrades is the stock permanent upgrade list, in display order.
var DefaultUpgrades = []Upgrade{
	{Key: "VITALITY", Name: "Vitality", BaseCost: 100, Growth: 1.5, MaxLevel: 10, Attr: object.AttrMaxHealth, Op: object.OpAdd, Magnitude: 10},
	{Key: "HASTE", Name: "Haste", BaseCost: 150, Growth: 1.6, MaxLevel: 5, Attr: object.AttrSpeed, Op: object.OpAdd, Magnitude: 0.25},
	{Key: "WISDOM", Name: "Wisdom", BaseCost: 200, Growth: 1.5, MaxLevel: 5, Attr: object.AttrExpMultiplier, Op: object.OpAdd, Magnitude: 0.1},
	{Key: "GREED", Name: "Greed", BaseCost: 250, Growth: 1.7, MaxLevel: 5, Attr: object.AttrCurrencyMultiplier, Op: object.OpAdd, Magnitude: 0.1},
}

// Shop owns the profile in memory and persists every change through the store.
type Shop struct {
	store    storage.Store
	profile  storage.Profile
	upgrades []Upgrade
}

// New creates a shop over an already loaded profile.
func New(store storage.Store, profile storage.Profile, upgrades []Upgrade) *Shop {
	if profile.Levels == nil {
		profile.Levels = make(map[string]int)
	}
	return &Shop{store: store, profile: profile, upgrades: upgrades}
}

// Upgrades returns the upgrade list in display order.
func (s *Shop) Upgrades() []Upgrade {
	return s.upgrades
}

// Profile returns a copy of the current profile.
func (s *Shop) Profile() storage.Profile {
	return s.profile.Clone()
}

// Currency returns the banked currency.
func (s *Shop) Currency() int {
	return s.profile.Currency
}

// Level returns the purchased level of key.
func (s *Shop) Level(key string) int {
	return s.profile.Level(key)
}

func (s *Shop) lookup(key string) (Upgrade, bool) {
	for _, u := range s.upgrades {
		if u.Key == key {
			return u, true
		}
	}
	return Upgrade{}, false
}

// Cost returns the price of the next level of key.
func (s *Shop) Cost(key string) (int, error) {
	u, ok := s.lookup(key)
	if !ok {
		return 0, fmt.Errorf("cost %q: %w", key, ErrUnknownUpgrade)
	}
	return u.Cost(s.profile.Level(key)), nil
}

// Purchase buys the next level of key. It fails without changing state if
// the upgrade is unknown, capped or unaffordable. A save failure is
// returned after the purchase has been applied in memory.
func (s *Shop) Purchase(key string) error {
	u, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("purchase %q: %w", key, ErrUnknownUpgrade)
	}
	level := s.profile.Level(key)
	if level >= u.MaxLevel {
		return fmt.Errorf("purchase %q: %w", key, ErrMaxLevel)
	}
	cost := u.Cost(level)
	if s.profile.Currency < cost {
		return fmt.Errorf("purchase %q costs %d, have %d: %w", key, cost, s.profile.Currency, ErrInsufficientFunds)
	}

	s.profile.Currency -= cost
	s.profile.Levels[key] = level + 1
	return s.save()
}

// Deposit banks currency earned during a run and persists the profile.
func (s *Shop) Deposit(amount int) error {
	if amount <= 0 {
		return s.save()
	}
	s.profile.Currency += amount
	return s.save()
}

// ApplyBonuses grants every purchased level to p. Called at run start
// after the player has been reset.
func (s *Shop) ApplyBonuses(p *object.Player) {
	for _, u := range s.upgrades {
		for i := 0; i < s.profile.Level(u.Key); i++ {
			p.ApplyAttr(u.Attr, u.Op, u.Magnitude)
		}
	}
	p.Health = p.MaxHealth
}

func (s *Shop) save() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.profile.Clone()); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
