package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThresholdsValidate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
}

func TestThresholdsValidate_ZeroValue(t *testing.T) {
	// A missing configuration deserializes to the zero value and must fail
	// before any record is scored.
	var missing ScoreThresholds
	assert.Error(t, missing.Validate())
}

func TestThresholdsValidate_NotAscending(t *testing.T) {
	bad := DefaultThresholds()
	bad.Good = bad.Excellent + 1
	assert.Error(t, bad.Validate())

	equal := DefaultThresholds()
	equal.VeryBad = equal.Unacceptable
	assert.Error(t, equal.Validate())
}

func TestThresholdsValidate_Negative(t *testing.T) {
	bad := DefaultThresholds()
	bad.Unacceptable = -1
	assert.Error(t, bad.Validate())
}
