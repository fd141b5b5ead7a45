package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataarena/dataarena-backend/internal/domain"
)

func TestPointsForDifficulty(t *testing.T) {
	assert.Equal(t, 450, PointsForDifficulty(domain.DifficultyEasy))
	assert.Equal(t, 800, PointsForDifficulty(domain.DifficultyMedium))
	assert.Equal(t, 1200, PointsForDifficulty(domain.DifficultyHard))
	assert.Equal(t, 0, PointsForDifficulty("legendary"))
}

func TestParseDifficulty(t *testing.T) {
	for _, valid := range []string{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		got, ok := ParseDifficulty(valid)
		assert.True(t, ok)
		assert.Equal(t, valid, got)
	}

	for _, invalid := range []string{"", "EASY", "Medium", " hard", "extreme"} {
		_, ok := ParseDifficulty(invalid)
		assert.False(t, ok, "expected %q to be rejected", invalid)
	}
}
