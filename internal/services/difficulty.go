package services

import "github.com/dataarena/dataarena-backend/internal/domain"

// Point values are fixed per difficulty. The scoring scale never derives
// from caller-supplied numbers; the enum selector is the only input.
var difficultyPoints = map[string]int{
	domain.DifficultyEasy:   450,
	domain.DifficultyMedium: 800,
	domain.DifficultyHard:   1200,
}

// PointsForDifficulty returns the point value awarded for completing a
// challenge of the given difficulty, or 0 for an unknown value.
func PointsForDifficulty(difficulty string) int {
	return difficultyPoints[difficulty]
}

// ParseDifficulty reports whether the given string is one of the
// enumerated difficulty values.
func ParseDifficulty(s string) (string, bool) {
	if _, ok := difficultyPoints[s]; !ok {
		return "", false
	}
	return s, true
}
