package scoring

import "fmt"

// Band maps all values >= From (up to the next band's From) to Points.
type Band struct {
	From   float64
	Points int
}

// BandTable is an ordered list of bands, ascending by From. Membership is
// lower-bound inclusive: a value exactly equal to a band's From belongs to
// that band, not the one below it. The last band is open-ended.
type BandTable []Band

// Lookup returns the point value for v. Values below the first band's lower
// bound resolve to 0 (they only occur for inputs the normalizer did not see).
func (bt BandTable) Lookup(v float64) int {
	pts := 0
	for _, b := range bt {
		if v < b.From {
			break
		}
		pts = b.Points
	}
	return pts
}

// validate confirms the table is non-empty and strictly ascending by From.
func (bt BandTable) validate(name string) error {
	if len(bt) == 0 {
		return fmt.Errorf("band table %s is empty", name)
	}
	for i := 1; i < len(bt); i++ {
		if bt[i].From <= bt[i-1].From {
			return fmt.Errorf("band table %s is not strictly ascending at index %d", name, i)
		}
	}
	return nil
}
