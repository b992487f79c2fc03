package scoring

import "strings"

// Rubric holds the per-attribute point tables for one scoring run. Numeric
// attributes go through the shared band lookup; categorical attributes use
// explicit point maps with unknown values defaulting to 0.
type Rubric struct {
	LastPayment   BandTable
	TotalPayment  BandTable
	Delinquencies BandTable
	PublicRecords BandTable
	Bankruptcies  BandTable
	Inquiries     BandTable
	Utilization   BandTable

	LoanStatus    map[string]int
	HomeOwnership map[string]int
	CreditGrade   map[string]int
}

// AttributePoints are the ten per-attribute point values for one borrower.
type AttributePoints struct {
	LastPayment   int `json:"last_payment_pts"`
	TotalPayment  int `json:"total_payment_pts"`
	Delinquencies int `json:"delinq_pts"`
	PublicRecords int `json:"public_records_pts"`
	Bankruptcies  int `json:"bankruptcies_pts"`
	Inquiries     int `json:"inquiry_pts"`
	LoanStatus    int `json:"loan_status_pts"`
	HomeOwnership int `json:"home_pts"`
	CreditLimit   int `json:"credit_limit_pts"`
	CreditGrade   int `json:"grade_pts"`
}

// NewRubric builds the default band tables from the configured rating
// points. Band lower bounds are internal defaults; only the point values
// are externally configurable.
func NewRubric(t ScoreThresholds) *Rubric {
	return &Rubric{
		LastPayment: BandTable{
			{From: 0, Points: t.Unacceptable},
			{From: 50, Points: t.VeryBad},
			{From: 250, Points: t.Bad},
			{From: 500, Points: t.Good},
			{From: 1000, Points: t.VeryGood},
			{From: 2000, Points: t.Excellent},
		},
		TotalPayment: BandTable{
			{From: 0, Points: t.Unacceptable},
			{From: 1000, Points: t.VeryBad},
			{From: 5000, Points: t.Bad},
			{From: 10000, Points: t.Good},
			{From: 25000, Points: t.VeryGood},
			{From: 50000, Points: t.Excellent},
		},
		Delinquencies: BandTable{
			{From: 0, Points: t.Excellent},
			{From: 1, Points: t.Bad},
			{From: 3, Points: t.VeryBad},
			{From: 6, Points: t.Unacceptable},
		},
		PublicRecords: BandTable{
			{From: 0, Points: t.Excellent},
			{From: 1, Points: t.Bad},
			{From: 3, Points: t.VeryBad},
			{From: 6, Points: t.Unacceptable},
		},
		Bankruptcies: BandTable{
			{From: 0, Points: t.Excellent},
			{From: 1, Points: t.Bad},
			{From: 3, Points: t.VeryBad},
			{From: 6, Points: t.Unacceptable},
		},
		Inquiries: BandTable{
			{From: 0, Points: t.Excellent},
			{From: 1, Points: t.Bad},
			{From: 3, Points: t.VeryBad},
			{From: 7, Points: t.Unacceptable},
		},
		// Funded amount over total high credit limit: low utilization is
		// the healthy end.
		Utilization: BandTable{
			{From: 0, Points: t.Excellent},
			{From: 0.2, Points: t.VeryGood},
			{From: 0.4, Points: t.Good},
			{From: 0.6, Points: t.Bad},
			{From: 0.8, Points: t.VeryBad},
			{From: 1.0, Points: t.Unacceptable},
		},
		LoanStatus: map[string]int{
			"fully paid":         t.Excellent,
			"current":            t.Good,
			"in grace period":    t.Bad,
			"late (16-30 days)":  t.VeryBad,
			"late (31-120 days)": t.VeryBad,
			"charged off":        t.Unacceptable,
			"default":            t.Unacceptable,
		},
		HomeOwnership: map[string]int{
			"own":      t.Excellent,
			"mortgage": t.VeryGood,
			"rent":     t.Good,
			"other":    t.VeryBad,
			"none":     t.VeryBad,
			"any":      t.VeryBad,
		},
		CreditGrade: map[string]int{
			"a": t.Excellent,
			"b": t.VeryGood,
			"c": t.Good,
			"d": t.Bad,
			"e": t.VeryBad,
			"f": t.Unacceptable,
			"g": t.Unacceptable,
		},
	}
}

// Evaluate maps one borrower record to its ten attribute point values.
// Attribute order is irrelevant, each table is independent, and every
// representable input falls into exactly one band.
func (r *Rubric) Evaluate(b *BorrowerRecord) AttributePoints {
	return AttributePoints{
		LastPayment:   r.LastPayment.Lookup(NormalizeAmount(b.LastPaymentAmount)),
		TotalPayment:  r.TotalPayment.Lookup(NormalizeAmount(b.TotalPaymentReceived)),
		Delinquencies: r.Delinquencies.Lookup(float64(NormalizeCount(b.Delinquencies))),
		PublicRecords: r.PublicRecords.Lookup(float64(NormalizeCount(b.PublicRecords))),
		Bankruptcies:  r.Bankruptcies.Lookup(float64(NormalizeCount(b.Bankruptcies))),
		Inquiries:     r.Inquiries.Lookup(float64(NormalizeCount(b.Inquiries))),
		LoanStatus:    lookupCategory(r.LoanStatus, b.LoanStatus),
		HomeOwnership: lookupCategory(r.HomeOwnership, b.HomeOwnership),
		CreditLimit:   r.Utilization.Lookup(utilization(b)),
		CreditGrade:   lookupCategory(r.CreditGrade, gradeLetter(b.Grade)),
	}
}

func (r *Rubric) validate() error {
	tables := map[string]BandTable{
		"last_payment":   r.LastPayment,
		"total_payment":  r.TotalPayment,
		"delinquencies":  r.Delinquencies,
		"public_records": r.PublicRecords,
		"bankruptcies":   r.Bankruptcies,
		"inquiries":      r.Inquiries,
		"utilization":    r.Utilization,
	}
	for name, bt := range tables {
		if err := bt.validate(name); err != nil {
			return err
		}
	}
	return nil
}

// utilization is funded amount over total high credit limit. A borrower
// with no reported credit limit has nothing to borrow against, which is
// the worst end of the table.
func utilization(b *BorrowerRecord) float64 {
	limit := NormalizeAmount(b.TotalHighCreditLimit)
	if limit <= 0 {
		return 1
	}
	return NormalizeAmount(b.FundedAmount) / limit
}

func lookupCategory(m map[string]int, key string) int {
	if pts, ok := m[strings.ToLower(strings.TrimSpace(key))]; ok {
		return pts
	}
	return 0
}

// gradeLetter reduces a grade or sub-grade value ("B", "b3") to its letter.
func gradeLetter(grade string) string {
	g := strings.TrimSpace(grade)
	if g == "" {
		return ""
	}
	return g[:1]
}
