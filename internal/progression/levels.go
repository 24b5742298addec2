// Package progression implements experience, leveling and the upgrade engine.
package progression

import "github.com/tomz197/survivors/internal/object"

// Experience needed to leave each level, starting at level 1.
var levelTable = []float64{50, 75, 110, 150, 220, 300, 450, 600, 800, 1000, 1250, 1500}

// Threshold returns the experience needed to advance past level.
// Past the end of the table the last step is repeated.
func Threshold(level int) float64 {
	if level < 1 {
		level = 1
	}
	n := len(levelTable)
	if level <= n {
		return levelTable[level-1]
	}
	step := levelTable[n-1] - levelTable[n-2]
	return levelTable[n-1] + float64(level-n)*step
}

// GainExp credits amount scaled by the player's multiplier and levels up
// while the accumulated experience covers the threshold. Returns the
// number of levels gained.
func GainExp(p *object.Player, amount float64) int {
	p.Exp += amount * p.ExpMultiplier

	gained := 0
	for p.ExpToNext > 0 && p.Exp >= p.ExpToNext {
		p.Exp -= p.ExpToNext
		p.Level++
		p.ExpToNext = Threshold(p.Level)
		gained++
	}
	return gained
}
