package data

import (
	"database/sql"

	"github.com/crediflow/lsctl/pkg/scoring"
	"github.com/pkg/errors"
)

const (
	// The view is one row per (member, loan); the loan_score table is keyed
	// by member. The correlated subquery collapses a member with several
	// loans to their most recent one, so the snapshot insert never sees the
	// same member twice. The NOT IN clause enforces the clean key space
	// precondition: members with duplicate customer rows are a data-quality
	// defect and never reach the scoring core. They surface through the
	// reconcile query instead.
	selectBorrowersSQL = `SELECT
			member_id, loan_id, loan_status, home_ownership, grade, sub_grade,
			tot_hi_cred_lim, loan_amount, funded_amount,
			last_payment_amount, total_payment_received,
			delinq_2yrs, delinq_amnt, mths_since_last_delinq,
			pub_rec, pub_rec_bankruptcies, inq_last_6mths
		FROM customers_loan cl
		WHERE cl.loan_id = (
			SELECT l.loan_id FROM loan l
			WHERE l.member_id = cl.member_id
			ORDER BY l.issue_date DESC, l.loan_id DESC
			LIMIT 1
		)
		AND cl.member_id NOT IN (
			SELECT member_id FROM customer GROUP BY member_id HAVING COUNT(*) > 1
		)
		ORDER BY cl.member_id
	`

	selectBorrowerSQL = `SELECT
			member_id, loan_id, loan_status, home_ownership, grade, sub_grade,
			tot_hi_cred_lim, loan_amount, funded_amount,
			last_payment_amount, total_payment_received,
			delinq_2yrs, delinq_amnt, mths_since_last_delinq,
			pub_rec, pub_rec_bankruptcies, inq_last_6mths
		FROM customers_loan cl
		WHERE cl.member_id = ?
		AND cl.loan_id = (
			SELECT l.loan_id FROM loan l
			WHERE l.member_id = cl.member_id
			ORDER BY l.issue_date DESC, l.loan_id DESC
			LIMIT 1
		)
	`
)

// ListBorrowers returns the consolidated borrower records eligible for
// scoring: one row per member (most recent loan), duplicate member ids
// excluded.
func ListBorrowers(db *sql.DB) ([]*scoring.BorrowerRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectBorrowersSQL)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.Wrap(err, "failed to query borrowers")
	}
	defer rows.Close()

	list := make([]*scoring.BorrowerRecord, 0)
	for rows.Next() {
		b, err := scanBorrower(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}

	return list, rows.Err()
}

// GetBorrower returns the consolidated record for one member, their most
// recent loan, or nil when the member is unknown.
func GetBorrower(db *sql.DB, memberID string) (*scoring.BorrowerRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if memberID == "" {
		return nil, errors.New("memberID is required")
	}

	rows, err := db.Query(selectBorrowerSQL, memberID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query borrower: %s", memberID)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanBorrower(rows)
}

func scanBorrower(rows *sql.Rows) (*scoring.BorrowerRecord, error) {
	var (
		b                            scoring.BorrowerRecord
		loanID, status, home         sql.NullString
		grade, subGrade              sql.NullString
		limit, loanAmt, fundedAmt    sql.NullFloat64
		lastPay, totalPay, delinqAmt sql.NullFloat64
		delinq, sinceDelinq, pubRec  sql.NullInt64
		bankruptcies, inquiries      sql.NullInt64
	)

	if err := rows.Scan(&b.MemberID, &loanID, &status, &home, &grade, &subGrade,
		&limit, &loanAmt, &fundedAmt, &lastPay, &totalPay,
		&delinq, &delinqAmt, &sinceDelinq,
		&pubRec, &bankruptcies, &inquiries); err != nil {
		return nil, errors.Wrap(err, "failed to scan borrower row")
	}

	b.LoanID = loanID.String
	b.LoanStatus = status.String
	b.HomeOwnership = home.String
	b.Grade = grade.String
	b.SubGrade = subGrade.String
	b.TotalHighCreditLimit = nullFloat(limit)
	b.LoanAmount = nullFloat(loanAmt)
	b.FundedAmount = nullFloat(fundedAmt)
	b.LastPaymentAmount = nullFloat(lastPay)
	b.TotalPaymentReceived = nullFloat(totalPay)
	b.Delinquencies = nullInt(delinq)
	b.DelinquencyAmount = nullFloat(delinqAmt)
	b.MonthsSinceLastDelinq = nullInt(sinceDelinq)
	b.PublicRecords = nullInt(pubRec)
	b.Bankruptcies = nullInt(bankruptcies)
	b.Inquiries = nullInt(inquiries)

	return &b, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}
