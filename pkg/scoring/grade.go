package scoring

// Grade maps a loan score to its letter grade. Bands are half-open and
// lower-inclusive: a score exactly on a threshold earns the higher grade.
func (t ScoreThresholds) Grade(score float64) string {
	switch {
	case score >= float64(t.Excellent):
		return "A"
	case score >= float64(t.VeryGood):
		return "B"
	case score >= float64(t.Good):
		return "C"
	case score >= float64(t.Bad):
		return "D"
	case score >= float64(t.VeryBad):
		return "E"
	default:
		return "F"
	}
}
