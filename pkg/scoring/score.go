package scoring

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Scorer evaluates borrower records against an immutable thresholds
// configuration. Safe for concurrent use once constructed.
type Scorer struct {
	thresholds ScoreThresholds
	rubric     *Rubric
}

// NewScorer validates the configuration and builds the rubric. This is the
// only fatal path in the core: a bad configuration aborts the whole run
// before any record is scored.
func NewScorer(t ScoreThresholds) (*Scorer, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid score thresholds: %w", err)
	}

	r := NewRubric(t)
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid rubric: %w", err)
	}

	return &Scorer{thresholds: t, rubric: r}, nil
}

// Score evaluates a single borrower record. Pure and deterministic: the
// same record always yields the same score and grade.
func (s *Scorer) Score(b *BorrowerRecord) *ScoredRecord {
	totals := Aggregate(s.rubric.Evaluate(b))
	return &ScoredRecord{
		MemberID:             b.MemberID,
		PaymentHistoryPts:    totals.PaymentHistory,
		DefaultersHistoryPts: totals.DefaultersHistory,
		FinancialHealthPts:   totals.FinancialHealth,
		LoanScore:            totals.LoanScore,
		Grade:                s.thresholds.Grade(totals.LoanScore),
	}
}

// ScoreAll evaluates a batch. Records have no ordering dependency, so the
// work fans out over a bounded worker group; output order matches input
// order. The only error is run-level cancellation.
func (s *Scorer) ScoreAll(ctx context.Context, records []*BorrowerRecord) ([]*ScoredRecord, error) {
	out := make([]*ScoredRecord, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, r := range records {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = s.Score(r)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
