// Package normalize provides the pure scoring math shared by the relevance
// scorer and the bid evaluator: min-max rescaling to [0, 100] and a linear
// recency decay.
package normalize

// MinMax rescales value into [0, 100] relative to min and max. When
// max == min the axis carries no discriminative signal, so every input
// scores 100; this avoids division by zero and avoids penalizing a
// degenerate axis. invert flips the direction for "lower is better" axes
// such as price or delivery days.
func MinMax(value, min, max float64, invert bool) float64 {
	if max == min {
		return 100
	}
	score := (value - min) / (max - min) * 100
	if invert {
		score = 100 - score
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RecencyBonus returns a bonus in [0, 10] that decays linearly with age:
// max(0, 10 - ageDays/(halfLifeDays/10)), zero beyond the window.
func RecencyBonus(ageDays, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		return 0
	}
	bonus := 10 - ageDays/(halfLifeDays/10)
	if bonus < 0 {
		return 0
	}
	if bonus > 10 {
		return 10
	}
	return bonus
}

// DefaultHalfLifeDays is the recency window used when no override is given.
const DefaultHalfLifeDays = 30.0
