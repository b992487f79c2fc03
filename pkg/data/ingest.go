package data

import (
	"database/sql"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	insertCustomerSQL = `INSERT INTO customer (
			member_id, emp_length, home_ownership, annual_income,
			address_state, grade, sub_grade, verification_status, tot_hi_cred_lim
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertLoanSQL = `INSERT INTO loan (
			loan_id, member_id, loan_amount, funded_amount, term_months,
			interest_rate, monthly_installment, issue_date, loan_status, loan_purpose
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(loan_id) DO NOTHING
	`

	insertRepaymentSQL = `INSERT INTO repayment (
			loan_id, total_principal_received, total_interest_received,
			total_late_fee_received, total_payment_received,
			last_payment_amount, last_payment_date, next_payment_date
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(loan_id) DO NOTHING
	`

	insertDelinqSQL = `INSERT INTO defaulter_delinq (
			member_id, delinq_2yrs, delinq_amnt, mths_since_last_delinq
		)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(member_id) DO NOTHING
	`

	insertEnquirySQL = `INSERT INTO defaulter_enquiry (
			member_id, pub_rec, pub_rec_bankruptcies, inq_last_6mths
		)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(member_id) DO NOTHING
	`
)

// IngestSummary describes one ingested file.
type IngestSummary struct {
	File    string `json:"file" yaml:"file"`
	Table   string `json:"table" yaml:"table"`
	Rows    int    `json:"rows" yaml:"rows"`
	Skipped int    `json:"skipped" yaml:"skipped"`
}

// rowGetter returns the raw value of a named CSV column for the current
// record, or "" if the column is absent.
type rowGetter func(col string) string

func IngestCustomers(db *sql.DB, path string) (*IngestSummary, error) {
	return ingestCSV(db, path, "customer", insertCustomerSQL, func(row rowGetter) ([]any, bool) {
		id := clean(row("member_id"))
		if id == nil {
			return nil, false
		}
		return []any{
			id,
			parseCount(row("emp_length")),
			clean(row("home_ownership")),
			parseAmount(row("annual_income")),
			clean(row("address_state")),
			clean(row("grade")),
			clean(row("sub_grade")),
			clean(row("verification_status")),
			parseAmount(row("tot_hi_cred_lim")),
		}, true
	})
}

func IngestLoans(db *sql.DB, path string) (*IngestSummary, error) {
	return ingestCSV(db, path, "loan", insertLoanSQL, func(row rowGetter) ([]any, bool) {
		loanID := clean(row("loan_id"))
		memberID := clean(row("member_id"))
		if loanID == nil || memberID == nil {
			return nil, false
		}
		return []any{
			loanID,
			memberID,
			parseAmount(row("loan_amount")),
			parseAmount(row("funded_amount")),
			parseMonths(row("term")),
			parsePercent(row("interest_rate")),
			parseAmount(row("monthly_installment")),
			clean(row("issue_date")),
			clean(row("loan_status")),
			clean(row("loan_purpose")),
		}, true
	})
}

func IngestRepayments(db *sql.DB, path string) (*IngestSummary, error) {
	return ingestCSV(db, path, "repayment", insertRepaymentSQL, func(row rowGetter) ([]any, bool) {
		loanID := clean(row("loan_id"))
		if loanID == nil {
			return nil, false
		}
		return []any{
			loanID,
			parseAmount(row("total_principal_received")),
			parseAmount(row("total_interest_received")),
			parseAmount(row("total_late_fee_received")),
			parseAmount(row("total_payment_received")),
			parseAmount(row("last_payment_amount")),
			clean(row("last_payment_date")),
			clean(row("next_payment_date")),
		}, true
	})
}

func IngestDelinquencies(db *sql.DB, path string) (*IngestSummary, error) {
	return ingestCSV(db, path, "defaulter_delinq", insertDelinqSQL, func(row rowGetter) ([]any, bool) {
		memberID := clean(row("member_id"))
		if memberID == nil {
			return nil, false
		}
		return []any{
			memberID,
			parseCount(row("delinq_2yrs")),
			parseAmount(row("delinq_amnt")),
			parseCount(row("mths_since_last_delinq")),
		}, true
	})
}

func IngestEnquiries(db *sql.DB, path string) (*IngestSummary, error) {
	return ingestCSV(db, path, "defaulter_enquiry", insertEnquirySQL, func(row rowGetter) ([]any, bool) {
		memberID := clean(row("member_id"))
		if memberID == nil {
			return nil, false
		}
		return []any{
			memberID,
			parseCount(row("pub_rec")),
			parseCount(row("pub_rec_bankruptcies")),
			parseCount(row("inq_last_6mths")),
		}, true
	})
}

// ingestCSV streams one CSV file into a table inside a single transaction.
// The mapper returns the insert args for a record, or false to skip it
// (missing key columns). Rows are never rejected for malformed values;
// those coerce to NULL and the scoring normalizer defaults them later.
func ingestCSV(db *sql.DB, path, table, insertSQL string, mapRow func(rowGetter) ([]any, bool)) (*IngestSummary, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header from: %s", path)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	stmt, err := db.Prepare(insertSQL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to prepare %s insert statement", table)
	}
	defer stmt.Close()

	tx, err := db.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}

	summary := &IngestSummary{File: path, Table: table}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return nil, errors.Wrap(rbErr, "failed to rollback transaction")
			}
			return nil, errors.Wrapf(err, "failed to read record from: %s", path)
		}

		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		args, ok := mapRow(get)
		if !ok {
			summary.Skipped++
			continue
		}

		if _, err := tx.Stmt(stmt).Exec(args...); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return nil, errors.Wrap(rbErr, "failed to rollback transaction")
			}
			return nil, errors.Wrapf(err, "failed to insert into %s", table)
		}
		summary.Rows++
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	slog.Debug("ingested file", "file", path, "table", table, "rows", summary.Rows, "skipped", summary.Skipped)
	return summary, nil
}

// clean trims a raw value, mapping empty and common null markers to NULL.
func clean(s string) any {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "", "null", "na", "n/a", "none":
		return nil
	}
	return v
}

// parseAmount coerces a monetary column. Raw exports carry currency
// symbols and thousand separators ("$1,234.56"), so the value is scrubbed
// and parsed as a decimal. Unparseable input becomes NULL.
func parseAmount(s string) any {
	v := strings.TrimSpace(s)
	v = strings.ReplaceAll(v, "$", "")
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return d.InexactFloat64()
}

// parseCount coerces a count column, keeping only the leading digits so
// values like "10+ years" still yield a number. Unparseable input becomes
// NULL.
func parseCount(s string) any {
	v := strings.TrimSpace(s)
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		i++
	}
	if i == 0 {
		return nil
	}
	n, err := strconv.ParseInt(v[:i], 10, 64)
	if err != nil {
		return nil
	}
	return n
}

// parseMonths coerces a term column like "36 months" to its month count.
func parseMonths(s string) any {
	return parseCount(s)
}

// parsePercent coerces a rate column like "13.5%" to its numeric value.
func parsePercent(s string) any {
	return parseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}
