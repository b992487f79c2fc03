package scoring

import "fmt"

// Default rating points. The six named levels are the only point vocabulary
// the rubric uses; per-attribute band tables pick from them.
const (
	UnacceptableRatedPtsDefault = 0
	VeryBadRatedPtsDefault      = 100
	BadRatedPtsDefault          = 250
	GoodRatedPtsDefault         = 500
	VeryGoodRatedPtsDefault     = 650
	ExcellentRatedPtsDefault    = 800
)

// ScoreThresholds is the read-only configuration bundle for a scoring run.
// It is loaded once before the batch starts and passed explicitly into the
// scorer, never held as mutable package state.
type ScoreThresholds struct {
	Unacceptable int `json:"unacceptable_rated_pts" yaml:"unacceptable_rated_pts"`
	VeryBad      int `json:"very_bad_rated_pts" yaml:"very_bad_rated_pts"`
	Bad          int `json:"bad_rated_pts" yaml:"bad_rated_pts"`
	Good         int `json:"good_rated_pts" yaml:"good_rated_pts"`
	VeryGood     int `json:"very_good_rated_pts" yaml:"very_good_rated_pts"`
	Excellent    int `json:"excellent_rated_pts" yaml:"excellent_rated_pts"`
}

func DefaultThresholds() ScoreThresholds {
	return ScoreThresholds{
		Unacceptable: UnacceptableRatedPtsDefault,
		VeryBad:      VeryBadRatedPtsDefault,
		Bad:          BadRatedPtsDefault,
		Good:         GoodRatedPtsDefault,
		VeryGood:     VeryGoodRatedPtsDefault,
		Excellent:    ExcellentRatedPtsDefault,
	}
}

// Validate fails the run before any record is scored. A zero-value or
// out-of-order threshold set means the configuration was missing or edited
// into an inconsistent state, and partial grading is worse than no grading.
func (t ScoreThresholds) Validate() error {
	if t.Unacceptable < 0 {
		return fmt.Errorf("unacceptable_rated_pts must be >= 0, got %d", t.Unacceptable)
	}

	levels := []struct {
		name string
		pts  int
		prev int
	}{
		{"very_bad_rated_pts", t.VeryBad, t.Unacceptable},
		{"bad_rated_pts", t.Bad, t.VeryBad},
		{"good_rated_pts", t.Good, t.Bad},
		{"very_good_rated_pts", t.VeryGood, t.Good},
		{"excellent_rated_pts", t.Excellent, t.VeryGood},
	}

	for _, l := range levels {
		if l.pts <= l.prev {
			return fmt.Errorf("%s (%d) must be greater than the preceding rating level (%d)", l.name, l.pts, l.prev)
		}
	}

	return nil
}
