package data

import (
	"database/sql"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

var scoreExportHeader = []string{
	"member_id", "payment_history_pts", "defaulters_history_pts",
	"financial_health_pts", "loan_score", "grade",
}

// ExportScoresCSV writes the current loan_score snapshot to a CSV file.
// Returns the number of exported records.
func ExportScoresCSV(db *sql.DB, path string) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	if path == "" {
		return 0, errors.New("path is required")
	}

	records, err := SearchScores(db, nil, nil, exportLimit)
	if err != nil {
		return 0, err
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create file: %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(scoreExportHeader); err != nil {
		return 0, errors.Wrap(err, "failed to write header")
	}

	for _, r := range records {
		row := []string{
			r.MemberID,
			formatPts(r.PaymentHistoryPts),
			formatPts(r.DefaultersHistoryPts),
			formatPts(r.FinancialHealthPts),
			formatPts(r.LoanScore),
			r.Grade,
		}
		if err := w.Write(row); err != nil {
			return 0, errors.Wrapf(err, "failed to write row for member: %s", r.MemberID)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, errors.Wrap(err, "failed to flush csv writer")
	}

	return len(records), nil
}

// exportLimit bounds a full snapshot export. Local datasets stay well
// under this.
const exportLimit = 10_000_000

func formatPts(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
