package data

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestIngestCustomers(t *testing.T) {
	db := setupTestDB(t)

	path := writeTestCSV(t, "customers.csv", `member_id,emp_length,home_ownership,annual_income,address_state,grade,sub_grade,verification_status,tot_hi_cred_lim
m-1,10+ years,OWN,"85,000",CA,A,A3,Verified,"$120,000"
m-2,2 years,RENT,42000,TX,C,C1,Not Verified,35000
,5 years,OWN,50000,WA,B,B2,Verified,60000
m-3,n/a,MORTGAGE,null,NY,D,D4,Verified,
`)

	summary, err := IngestCustomers(db, path)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, "customer", summary.Table)

	// Currency scrubbing on amounts.
	var limit float64
	require.NoError(t, db.QueryRow("SELECT tot_hi_cred_lim FROM customer WHERE member_id = 'm-1'").Scan(&limit))
	assert.Equal(t, 120000.0, limit)

	// "10+ years" keeps its leading digits.
	var empLength int64
	require.NoError(t, db.QueryRow("SELECT emp_length FROM customer WHERE member_id = 'm-1'").Scan(&empLength))
	assert.Equal(t, int64(10), empLength)

	// Malformed values coerce to NULL, not to a rejected row.
	var income sql.NullFloat64
	require.NoError(t, db.QueryRow("SELECT annual_income FROM customer WHERE member_id = 'm-3'").Scan(&income))
	assert.False(t, income.Valid)
}

func TestIngestLoans(t *testing.T) {
	db := setupTestDB(t)

	path := writeTestCSV(t, "loans.csv", `loan_id,member_id,loan_amount,funded_amount,term,interest_rate,monthly_installment,issue_date,loan_status,loan_purpose
l-1,m-1,10000,10000,36 months,13.5%,339.25,2023-01-15,Current,debt_consolidation
l-2,m-2,"25,000",24000,60 months,18.9%,621.10,2022-06-01,Charged Off,small_business
l-2,m-2,25000,24000,60 months,18.9%,621.10,2022-06-01,Charged Off,small_business
`)

	summary, err := IngestLoans(db, path)
	require.NoError(t, err)
	// Repeated loan ids do not error; the conflict clause drops them.
	assert.Equal(t, 3, summary.Rows)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM loan").Scan(&count))
	assert.Equal(t, 2, count)

	var months int64
	var rate float64
	require.NoError(t, db.QueryRow("SELECT term_months, interest_rate FROM loan WHERE loan_id = 'l-1'").Scan(&months, &rate))
	assert.Equal(t, int64(36), months)
	assert.Equal(t, 13.5, rate)
}

func TestIngestRepayments(t *testing.T) {
	db := setupTestDB(t)

	path := writeTestCSV(t, "repayments.csv", `loan_id,total_principal_received,total_interest_received,total_late_fee_received,total_payment_received,last_payment_amount,last_payment_date,next_payment_date
l-1,8000,1200,0,9200,339.25,2024-12-01,2025-01-01
,100,10,0,110,50,2024-12-01,2025-01-01
`)

	summary, err := IngestRepayments(db, path)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Rows)
	assert.Equal(t, 1, summary.Skipped)

	var total float64
	require.NoError(t, db.QueryRow("SELECT total_payment_received FROM repayment WHERE loan_id = 'l-1'").Scan(&total))
	assert.Equal(t, 9200.0, total)
}

func TestIngestDefaulters(t *testing.T) {
	db := setupTestDB(t)

	delinq := writeTestCSV(t, "delinq.csv", `member_id,delinq_2yrs,delinq_amnt,mths_since_last_delinq
m-1,0,0,
m-2,3,1250.50,7
`)
	enquiry := writeTestCSV(t, "enquiry.csv", `member_id,pub_rec,pub_rec_bankruptcies,inq_last_6mths
m-1,0,0,1
m-2,2,1,4
`)

	ds, err := IngestDelinquencies(db, delinq)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows)

	es, err := IngestEnquiries(db, enquiry)
	require.NoError(t, err)
	assert.Equal(t, 2, es.Rows)

	var since sql.NullInt64
	require.NoError(t, db.QueryRow("SELECT mths_since_last_delinq FROM defaulter_delinq WHERE member_id = 'm-1'").Scan(&since))
	assert.False(t, since.Valid)

	var inq int64
	require.NoError(t, db.QueryRow("SELECT inq_last_6mths FROM defaulter_enquiry WHERE member_id = 'm-2'").Scan(&inq))
	assert.Equal(t, int64(4), inq)
}

func TestIngest_NilDB(t *testing.T) {
	path := writeTestCSV(t, "x.csv", "member_id\nm-1\n")
	_, err := IngestCustomers(nil, path)
	assert.Error(t, err)
}

func TestIngest_MissingFile(t *testing.T) {
	db := setupTestDB(t)
	_, err := IngestCustomers(db, filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 1234.56, parseAmount("$1,234.56"))
	assert.Equal(t, 42.0, parseAmount("42"))
	assert.Nil(t, parseAmount(""))
	assert.Nil(t, parseAmount("abc"))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(10), parseCount("10+ years"))
	assert.Equal(t, int64(0), parseCount("0"))
	assert.Nil(t, parseCount(""))
	assert.Nil(t, parseCount("none"))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "OWN", clean(" OWN "))
	assert.Nil(t, clean(""))
	assert.Nil(t, clean("NULL"))
	assert.Nil(t, clean("n/a"))
}
