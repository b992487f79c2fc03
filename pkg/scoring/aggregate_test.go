package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := weightPaymentHistory.Add(weightDefaultersHistory).Add(weightFinancialHealth)
	assert.True(t, sum.Equal(decimal.RequireFromString("1.00")), "weights must partition the score")
}

func TestAggregate(t *testing.T) {
	p := AttributePoints{
		LastPayment:   800,
		TotalPayment:  800,
		Delinquencies: 800,
		PublicRecords: 800,
		Bankruptcies:  800,
		Inquiries:     800,
		LoanStatus:    800,
		HomeOwnership: 800,
		CreditLimit:   800,
		CreditGrade:   800,
	}

	totals := Aggregate(p)
	assert.Equal(t, 320.0, totals.PaymentHistory)
	assert.Equal(t, 1440.0, totals.DefaultersHistory)
	assert.Equal(t, 1120.0, totals.FinancialHealth)
	assert.Equal(t, 2880.0, totals.LoanScore)
}

func TestAggregate_Zero(t *testing.T) {
	totals := Aggregate(AttributePoints{})
	assert.Equal(t, 0.0, totals.LoanScore)
}

func TestAggregate_Additivity(t *testing.T) {
	cases := []AttributePoints{
		{LastPayment: 100, TotalPayment: 250, Delinquencies: 800, PublicRecords: 250,
			Bankruptcies: 100, Inquiries: 800, LoanStatus: 500, HomeOwnership: 650,
			CreditLimit: 500, CreditGrade: 250},
		{LastPayment: 650, Delinquencies: 100, LoanStatus: 800},
		{TotalPayment: 500, Inquiries: 250, CreditGrade: 650},
	}

	for _, p := range cases {
		totals := Aggregate(p)

		// The final score reconstructs exactly from the three weighted
		// category totals.
		assert.InDelta(t, totals.PaymentHistory+totals.DefaultersHistory+totals.FinancialHealth,
			totals.LoanScore, 1e-9)

		// And each category total reconstructs from its raw points.
		assert.InDelta(t, float64(p.LastPayment+p.TotalPayment)*0.20, totals.PaymentHistory, 1e-9)
		assert.InDelta(t, float64(p.Delinquencies+p.PublicRecords+p.Bankruptcies+p.Inquiries)*0.45,
			totals.DefaultersHistory, 1e-9)
		assert.InDelta(t, float64(p.LoanStatus+p.HomeOwnership+p.CreditLimit+p.CreditGrade)*0.35,
			totals.FinancialHealth, 1e-9)
	}
}
