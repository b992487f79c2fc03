package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/crediflow/lsctl/pkg/config"
	"github.com/crediflow/lsctl/pkg/data"
	"github.com/crediflow/lsctl/pkg/scoring"
	"github.com/urfave/cli/v2"
)

var scoreCmd = &cli.Command{
	Name:    "score",
	Aliases: []string{"s"},
	Usage:   "Score all eligible borrowers and replace the loan_score snapshot",
	UsageText: `lsctl score                          # score with configured thresholds
   lsctl score --config custom.yaml     # score with alternate thresholds`,
	Action: cmdScore,
}

// ScoreResult is the summary of one scoring run.
type ScoreResult struct {
	Scored     int                      `json:"scored" yaml:"scored"`
	Thresholds scoring.ScoreThresholds  `json:"thresholds" yaml:"thresholds"`
	Grades     *data.GradeDistribution  `json:"grades,omitempty" yaml:"grades,omitempty"`
	Duration   string                   `json:"duration" yaml:"duration"`
}

func cmdScore(c *cli.Context) error {
	start := time.Now()
	cfg := getConfig(c)

	// Thresholds validate before any record is read. A bad configuration
	// aborts the whole batch; the previous snapshot stays in place.
	conf, err := config.ReadOrCreate(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load score thresholds: %w", err)
	}

	scorer, err := scoring.NewScorer(conf.Thresholds)
	if err != nil {
		return fmt.Errorf("failed to create scorer: %w", err)
	}

	borrowers, err := data.ListBorrowers(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to list borrowers: %w", err)
	}

	slog.Info("scoring borrowers", "records", len(borrowers))

	scored, err := scorer.ScoreAll(c.Context, borrowers)
	if err != nil {
		return fmt.Errorf("failed to score borrowers: %w", err)
	}

	if err := data.SaveScores(cfg.DB, scored); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	res := &ScoreResult{
		Scored:     len(scored),
		Thresholds: conf.Thresholds,
		Duration:   time.Since(start).String(),
	}

	grades, err := data.GetGradeDistribution(cfg.DB)
	if err != nil {
		slog.Error("failed to get grade distribution", "error", err)
	} else {
		res.Grades = grades
	}

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
