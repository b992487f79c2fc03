package scoring

import "github.com/shopspring/decimal"

// Category weights are fixed product constants summing to 1.00. Moving an
// attribute between categories changes the business meaning of the score,
// not just its mechanics. Decimal arithmetic keeps the additivity law
// (loan_score == sum of the three weighted totals) exact.
var (
	weightPaymentHistory    = decimal.RequireFromString("0.20")
	weightDefaultersHistory = decimal.RequireFromString("0.45")
	weightFinancialHealth   = decimal.RequireFromString("0.35")
)

// CategoryTotals are the weighted category sums and their final score.
type CategoryTotals struct {
	PaymentHistory    float64 `json:"payment_history_pts"`
	DefaultersHistory float64 `json:"defaulters_history_pts"`
	FinancialHealth   float64 `json:"financial_health_pts"`
	LoanScore         float64 `json:"loan_score"`
}

// Aggregate folds the ten attribute points into the three weighted
// category totals and the final loan score.
func Aggregate(p AttributePoints) CategoryTotals {
	payment := decimal.NewFromInt(int64(p.LastPayment + p.TotalPayment)).
		Mul(weightPaymentHistory)
	defaulters := decimal.NewFromInt(int64(p.Delinquencies + p.PublicRecords + p.Bankruptcies + p.Inquiries)).
		Mul(weightDefaultersHistory)
	financial := decimal.NewFromInt(int64(p.LoanStatus + p.HomeOwnership + p.CreditLimit + p.CreditGrade)).
		Mul(weightFinancialHealth)

	return CategoryTotals{
		PaymentHistory:    payment.InexactFloat64(),
		DefaultersHistory: defaulters.InexactFloat64(),
		FinancialHealth:   financial.InexactFloat64(),
		LoanScore:         payment.Add(defaulters).Add(financial).InexactFloat64(),
	}
}
