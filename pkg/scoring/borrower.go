package scoring

// BorrowerRecord is one row of the consolidated customers_loan view.
// Pointer fields carry the NULLs produced by the left outer joins upstream;
// the normalizer defaults them to zero at evaluation time.
type BorrowerRecord struct {
	MemberID              string   `json:"member_id"`
	LoanID                string   `json:"loan_id,omitempty"`
	LoanStatus            string   `json:"loan_status,omitempty"`
	HomeOwnership         string   `json:"home_ownership,omitempty"`
	Grade                 string   `json:"grade,omitempty"`
	SubGrade              string   `json:"sub_grade,omitempty"`
	TotalHighCreditLimit  *float64 `json:"tot_hi_cred_lim,omitempty"`
	LoanAmount            *float64 `json:"loan_amount,omitempty"`
	FundedAmount          *float64 `json:"funded_amount,omitempty"`
	LastPaymentAmount     *float64 `json:"last_payment_amount,omitempty"`
	TotalPaymentReceived  *float64 `json:"total_payment_received,omitempty"`
	Delinquencies         *int64   `json:"delinq_2yrs,omitempty"`
	DelinquencyAmount     *float64 `json:"delinq_amnt,omitempty"`
	MonthsSinceLastDelinq *int64   `json:"mths_since_last_delinq,omitempty"`
	PublicRecords         *int64   `json:"pub_rec,omitempty"`
	Bankruptcies          *int64   `json:"pub_rec_bankruptcies,omitempty"`
	Inquiries             *int64   `json:"inq_last_6mths,omitempty"`
}

// ScoredRecord is the terminal output tuple, one per borrower.
type ScoredRecord struct {
	MemberID             string  `json:"member_id" yaml:"member_id"`
	PaymentHistoryPts    float64 `json:"payment_history_pts" yaml:"payment_history_pts"`
	DefaultersHistoryPts float64 `json:"defaulters_history_pts" yaml:"defaulters_history_pts"`
	FinancialHealthPts   float64 `json:"financial_health_pts" yaml:"financial_health_pts"`
	LoanScore            float64 `json:"loan_score" yaml:"loan_score"`
	Grade                string  `json:"grade" yaml:"grade"`
}
