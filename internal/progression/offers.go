package progression

import (
	"math/rand/v2"

	"github.com/tomz197/survivors/internal/object"
)

// Eligible reports whether u may be offered to p.
// Passives always are; acquires only when unowned; skill upgrades only when owned.
func Eligible(p *object.Player, u Upgrade) bool {
	switch u.Kind {
	case KindPassive:
		return true
	case KindAcquire:
		return !p.HasSkill(u.Skill)
	case KindSkill:
		return p.HasSkill(u.Skill)
	}
	return false
}

// Eligible appends every upgrade currently eligible for p to dst, in catalog order.
func (c *Catalog) Eligible(p *object.Player, dst []Upgrade) []Upgrade {
	for _, u := range c.upgrades {
		if Eligible(p, u) {
			dst = append(dst, u)
		}
	}
	return dst
}

// Offers samples min(n, eligible) distinct upgrades for p. The result is
// empty when nothing is eligible.
func (c *Catalog) Offers(p *object.Player, rng *rand.Rand, n int) []Upgrade {
	pool := c.Eligible(p, nil)
	if n > len(pool) {
		n = len(pool)
	}
	// Partial Fisher-Yates: the first n slots become the sample
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
