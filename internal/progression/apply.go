package progression

import (
	"fmt"

	"github.com/tomz197/survivors/internal/object"
)

// Apply performs the upgrade identified by key on p. Unknown or ineligible
// keys return an error and leave p unchanged.
func (c *Catalog) Apply(p *object.Player, key string) error {
	u, ok := c.Lookup(key)
	if !ok {
		return fmt.Errorf("apply %q: %w", key, ErrUnknownUpgrade)
	}
	if !Eligible(p, u) {
		return fmt.Errorf("apply %q: %w", key, ErrNotEligible)
	}

	switch u.Kind {
	case KindPassive:
		p.ApplyAttr(u.PlayerAttr, u.Op, u.Magnitude)
	case KindAcquire:
		s, err := object.NewSkill(u.Skill)
		if err != nil {
			return fmt.Errorf("apply %q: %w", key, err)
		}
		p.Skills[u.Skill] = s
		s.Rebuild(p.Pos)
	case KindSkill:
		s := p.Skills[u.Skill]
		if err := s.ApplyUpgrade(u.SkillAttr, u.Op, u.Magnitude); err != nil {
			return fmt.Errorf("apply %q: %w", key, err)
		}
		if u.Rebuild {
			s.Rebuild(p.Pos)
		}
	}
	return nil
}
