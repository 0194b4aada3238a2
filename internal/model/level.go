package model

import "math"

// CalculateLevel derives the level and the experience still needed for the next
// level from an experience total. Experience must be non-negative.
func CalculateLevel(experience int) (level, untilNextLevel int) {
	level = int((math.Sqrt(float64(2500+200*experience)) - 50) / 100)
	untilNextLevel = 50*(level+1)*(level+2) - experience
	return level, untilNextLevel
}

// ApplyLevel recomputes Level and UntilNextLevel from Experience
func (p *Player) ApplyLevel() {
	p.Level, p.UntilNextLevel = CalculateLevel(p.Experience)
}
