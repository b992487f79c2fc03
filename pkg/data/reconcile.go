package data

import (
	"database/sql"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

const (
	selectDuplicateMembersSQL = `SELECT member_id, COUNT(*) as row_count
		FROM customer
		GROUP BY member_id
		HAVING COUNT(*) > 1
		ORDER BY row_count DESC, member_id
	`

	selectDuplicateRowsSQL = `SELECT
			member_id, home_ownership, grade, sub_grade, tot_hi_cred_lim
		FROM customer
		WHERE member_id IN (
			SELECT member_id FROM customer GROUP BY member_id HAVING COUNT(*) > 1
		)
		ORDER BY member_id
	`
)

// DuplicateMember is one member id with more than one customer row.
type DuplicateMember struct {
	MemberID string `json:"member_id" yaml:"member_id"`
	Rows     int64  `json:"rows" yaml:"rows"`
}

// FindDuplicateMembers returns member ids that violate the unique key
// invariant. These are upstream data defects; the scoring input query
// excludes them, and this reconciliation surfaces them for correction.
func FindDuplicateMembers(db *sql.DB) ([]*DuplicateMember, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectDuplicateMembersSQL)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.Wrap(err, "failed to query duplicate members")
	}
	defer rows.Close()

	list := make([]*DuplicateMember, 0)
	for rows.Next() {
		d := &DuplicateMember{}
		if err := rows.Scan(&d.MemberID, &d.Rows); err != nil {
			return nil, errors.Wrap(err, "failed to scan duplicate member row")
		}
		list = append(list, d)
	}

	return list, rows.Err()
}

// ExportBadData writes all duplicate customer rows to a CSV file for
// upstream correction. Returns the number of exported rows.
func ExportBadData(db *sql.DB, path string) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	if path == "" {
		return 0, errors.New("path is required")
	}

	rows, err := db.Query(selectDuplicateRowsSQL)
	if err != nil && err != sql.ErrNoRows {
		return 0, errors.Wrap(err, "failed to query duplicate rows")
	}
	defer rows.Close()

	file, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create file: %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"member_id", "home_ownership", "grade", "sub_grade", "tot_hi_cred_lim"}); err != nil {
		return 0, errors.Wrap(err, "failed to write header")
	}

	count := 0
	for rows.Next() {
		var memberID string
		var home, grade, subGrade sql.NullString
		var limit sql.NullFloat64
		if err := rows.Scan(&memberID, &home, &grade, &subGrade, &limit); err != nil {
			return 0, errors.Wrap(err, "failed to scan duplicate row")
		}

		limitVal := ""
		if limit.Valid {
			limitVal = strconv.FormatFloat(limit.Float64, 'f', -1, 64)
		}

		if err := w.Write([]string{memberID, home.String, grade.String, subGrade.String, limitVal}); err != nil {
			return 0, errors.Wrap(err, "failed to write row")
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, errors.Wrap(err, "failed reading duplicate rows")
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, errors.Wrap(err, "failed to flush csv writer")
	}

	return count, nil
}
