package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCount(t *testing.T) {
	assert.Equal(t, int64(0), NormalizeCount(nil))

	neg := int64(-3)
	assert.Equal(t, int64(0), NormalizeCount(&neg))

	v := int64(7)
	assert.Equal(t, int64(7), NormalizeCount(&v))
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, float64(0), NormalizeAmount(nil))

	neg := -12.5
	assert.Equal(t, float64(0), NormalizeAmount(&neg))

	nan := math.NaN()
	assert.Equal(t, float64(0), NormalizeAmount(&nan))

	inf := math.Inf(1)
	assert.Equal(t, float64(0), NormalizeAmount(&inf))

	v := 1234.56
	assert.Equal(t, 1234.56, NormalizeAmount(&v))
}
