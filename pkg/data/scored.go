package data

import (
	"database/sql"
	"strings"

	"github.com/crediflow/lsctl/pkg/scoring"
	"github.com/pkg/errors"
)

const (
	insertScoreSQL = `INSERT INTO loan_score (
			member_id, payment_history_pts, defaulters_history_pts,
			financial_health_pts, loan_score, grade
		)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectScoreSQL = `SELECT
			member_id, payment_history_pts, defaulters_history_pts,
			financial_health_pts, loan_score, grade
		FROM loan_score
		WHERE member_id = ?
	`

	selectScoresSQL = `SELECT
			member_id, payment_history_pts, defaulters_history_pts,
			financial_health_pts, loan_score, grade
		FROM loan_score
		WHERE grade = COALESCE(?, grade)
		AND loan_score >= COALESCE(?, loan_score)
		ORDER BY loan_score DESC, member_id
		LIMIT ?
	`

	selectGradeDistributionSQL = `SELECT grade, COUNT(*)
		FROM loan_score
		GROUP BY grade
		ORDER BY grade
	`
)

// gradeLabels are the letter grades a snapshot row can carry.
var gradeLabels = []string{"A", "B", "C", "D", "E", "F"}

// GradeDistribution is the per-grade record count for the current snapshot.
type GradeDistribution struct {
	Labels []string `json:"labels" yaml:"labels"`
	Data   []int64  `json:"data" yaml:"data"`
}

// SaveScores replaces the whole loan_score snapshot in one transaction.
// The batch either lands completely or not at all; a failed run leaves the
// previous snapshot untouched.
func SaveScores(db *sql.DB, records []*scoring.ScoredRecord) error {
	if db == nil {
		return errDBNotInitialized
	}

	stmt, err := db.Prepare(insertScoreSQL)
	if err != nil {
		return errors.Wrap(err, "failed to prepare score insert statement")
	}
	defer stmt.Close()

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	if _, err := tx.Exec("DELETE FROM loan_score"); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrap(rbErr, "failed to rollback transaction")
		}
		return errors.Wrap(err, "failed to clear previous scores")
	}

	for _, r := range records {
		if _, err := tx.Stmt(stmt).Exec(r.MemberID, r.PaymentHistoryPts, r.DefaultersHistoryPts,
			r.FinancialHealthPts, r.LoanScore, r.Grade); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return errors.Wrap(rbErr, "failed to rollback transaction")
			}
			return errors.Wrapf(err, "failed to insert score for member: %s", r.MemberID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

// GetScore returns the scored record for one member, or nil when the member
// has not been scored.
func GetScore(db *sql.DB, memberID string) (*scoring.ScoredRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if memberID == "" {
		return nil, errors.New("memberID is required")
	}

	r := &scoring.ScoredRecord{}
	err := db.QueryRow(selectScoreSQL, memberID).
		Scan(&r.MemberID, &r.PaymentHistoryPts, &r.DefaultersHistoryPts,
			&r.FinancialHealthPts, &r.LoanScore, &r.Grade)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to query score for member: %s", memberID)
	}

	return r, nil
}

// SearchScores lists scored records, optionally filtered by grade and
// minimum score, best score first. The grade filter is case-insensitive
// and must be one of the known letter grades.
func SearchScores(db *sql.DB, grade *string, minScore *float64, limit int) ([]*scoring.ScoredRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	if grade != nil {
		g := strings.ToUpper(strings.TrimSpace(*grade))
		if !Contains(gradeLabels, g) {
			return nil, errors.Errorf("invalid grade filter: %s", *grade)
		}
		grade = &g
	}

	rows, err := db.Query(selectScoresSQL, grade, minScore, limit)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.Wrap(err, "failed to query scores")
	}
	defer rows.Close()

	list := make([]*scoring.ScoredRecord, 0)
	for rows.Next() {
		r := &scoring.ScoredRecord{}
		if err := rows.Scan(&r.MemberID, &r.PaymentHistoryPts, &r.DefaultersHistoryPts,
			&r.FinancialHealthPts, &r.LoanScore, &r.Grade); err != nil {
			return nil, errors.Wrap(err, "failed to scan score row")
		}
		list = append(list, r)
	}

	return list, rows.Err()
}

// GetGradeDistribution returns per-grade counts for the current snapshot.
func GetGradeDistribution(db *sql.DB) (*GradeDistribution, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectGradeDistributionSQL)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.Wrap(err, "failed to query grade distribution")
	}
	defer rows.Close()

	dist := &GradeDistribution{
		Labels: make([]string, 0),
		Data:   make([]int64, 0),
	}

	for rows.Next() {
		var grade string
		var count int64
		if err := rows.Scan(&grade, &count); err != nil {
			return nil, errors.Wrap(err, "failed to scan distribution row")
		}
		dist.Labels = append(dist.Labels, grade)
		dist.Data = append(dist.Data, count)
	}

	return dist, rows.Err()
}

// GetDataState returns record counts for each table in the pipeline.
func GetDataState(db *sql.DB) (map[string]int64, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	stateQueries := map[string]string{
		"customers":   "SELECT COUNT(*) FROM customer",
		"loans":       "SELECT COUNT(*) FROM loan",
		"repayments":  "SELECT COUNT(*) FROM repayment",
		"delinq":      "SELECT COUNT(*) FROM defaulter_delinq",
		"enquiries":   "SELECT COUNT(*) FROM defaulter_enquiry",
		"loan_scores": "SELECT COUNT(*) FROM loan_score",
	}

	state := make(map[string]int64, len(stateQueries))
	for k, q := range stateQueries {
		var count int64
		if err := db.QueryRow(q).Scan(&count); err != nil {
			return nil, errors.Wrapf(err, "error getting %s count", k)
		}
		state[k] = count
	}

	return state, nil
}
