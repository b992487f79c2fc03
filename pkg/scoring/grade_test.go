package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeBands(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		score float64
		grade string
	}{
		{0, "F"},
		{99.99, "F"},
		{100, "E"},
		{249.99, "E"},
		{250, "D"},
		{499.99, "D"},
		{500, "C"},
		{649.99, "C"},
		{650, "B"},
		{799.99, "B"},
		{800, "A"},
		{2880, "A"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.grade, th.Grade(tc.score), "score %v", tc.score)
	}
}

func TestGradeBelowZero(t *testing.T) {
	assert.Equal(t, "F", DefaultThresholds().Grade(-5))
}

func TestGradeMonotonic(t *testing.T) {
	th := DefaultThresholds()

	// Better scores never earn worse letters.
	rank := map[string]int{"F": 0, "E": 1, "D": 2, "C": 3, "B": 4, "A": 5}

	prev := th.Grade(0)
	for s := 0.5; s <= 3000; s += 0.5 {
		g := th.Grade(s)
		assert.GreaterOrEqual(t, rank[g], rank[prev], "score %v", s)
		prev = g
	}
}
