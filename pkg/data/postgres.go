package data

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/crediflow/lsctl/pkg/scoring"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	// PGTableDefault is the default target table for Postgres exports.
	PGTableDefault = "loan_score"

	createPGTableSQL = `CREATE TABLE IF NOT EXISTS %s (
			member_id TEXT NOT NULL PRIMARY KEY,
			payment_history_pts DOUBLE PRECISION NOT NULL,
			defaulters_history_pts DOUBLE PRECISION NOT NULL,
			financial_health_pts DOUBLE PRECISION NOT NULL,
			loan_score DOUBLE PRECISION NOT NULL,
			grade TEXT NOT NULL
		)`

	insertPGScoreSQL = `INSERT INTO %s (
			member_id, payment_history_pts, defaulters_history_pts,
			financial_health_pts, loan_score, grade
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
)

var pgTableNameRegEx = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ExportScoresPostgres copies the current loan_score snapshot to a Postgres
// table. Consumers read the table as a static snapshot, so the export
// truncates and reloads it in one transaction (last run wins).
func ExportScoresPostgres(ctx context.Context, db *sql.DB, dsn, table string) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	if dsn == "" {
		return 0, errors.New("dsn is required")
	}
	if table == "" {
		table = PGTableDefault
	}
	if !pgTableNameRegEx.MatchString(table) {
		return 0, errors.Errorf("invalid table name: %s", table)
	}

	records, err := SearchScores(db, nil, nil, exportLimit)
	if err != nil {
		return 0, err
	}

	pg, err := sql.Open("postgres", dsn)
	if err != nil {
		return 0, errors.Wrap(err, "failed to open postgres connection")
	}
	defer pg.Close()

	if err := pg.PingContext(ctx); err != nil {
		return 0, errors.Wrap(err, "failed to ping postgres")
	}

	if _, err := pg.ExecContext(ctx, fmt.Sprintf(createPGTableSQL, table)); err != nil {
		return 0, errors.Wrapf(err, "failed to create table: %s", table)
	}

	tx, err := pg.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}

	if err := insertPGScores(ctx, tx, table, records); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return 0, errors.Wrap(rbErr, "failed to rollback transaction")
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit transaction")
	}

	return len(records), nil
}

func insertPGScores(ctx context.Context, tx *sql.Tx, table string, records []*scoring.ScoredRecord) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
		return errors.Wrapf(err, "failed to truncate table: %s", table)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(insertPGScoreSQL, table))
	if err != nil {
		return errors.Wrap(err, "failed to prepare score insert statement")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.MemberID, r.PaymentHistoryPts, r.DefaultersHistoryPts,
			r.FinancialHealthPts, r.LoanScore, r.Grade); err != nil {
			return errors.Wrapf(err, "failed to insert score for member: %s", r.MemberID)
		}
	}

	return nil
}
