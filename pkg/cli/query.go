package cli

import (
	"fmt"
	"os"

	"github.com/crediflow/lsctl/pkg/data"
	"github.com/urfave/cli/v2"
)

const queryResultLimitDefault = 500

var (
	queryLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of results returned",
		Value: queryResultLimitDefault,
	}

	memberIDFlag = &cli.StringFlag{
		Name:     "member",
		Usage:    "Member identifier",
		Required: true,
	}

	gradeQueryFlag = &cli.StringFlag{
		Name:  "grade",
		Usage: "Letter grade filter (A-F)",
	}

	minScoreFlag = &cli.Float64Flag{
		Name:  "min-score",
		Usage: "Minimum loan score filter",
	}

	queryCmd = &cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "List data query operations",
		Subcommands: []*cli.Command{
			{
				Name:    "score",
				Usage:   "List score operations",
				Aliases: []string{"s"},
				Subcommands: []*cli.Command{
					{
						Name:    "list",
						Usage:   "List scored records, best score first",
						Aliases: []string{"l"},
						Action:  cmdQueryScores,
						Flags: []cli.Flag{
							gradeQueryFlag,
							minScoreFlag,
							queryLimitFlag,
						},
					},
					{
						Name:    "detail",
						Usage:   "Get one member's scored record",
						Aliases: []string{"d"},
						Action:  cmdQueryScore,
						Flags: []cli.Flag{
							memberIDFlag,
						},
					},
				},
			},
			{
				Name:    "borrower",
				Usage:   "Get one member's consolidated borrower record",
				Aliases: []string{"b"},
				Action:  cmdQueryBorrower,
				Flags: []cli.Flag{
					memberIDFlag,
				},
			},
			{
				Name:    "grades",
				Usage:   "Grade distribution of the current score snapshot",
				Aliases: []string{"g"},
				Action:  cmdQueryGrades,
			},
			{
				Name:   "state",
				Usage:  "Record counts for each table in the pipeline",
				Action: cmdQueryState,
			},
		},
	}
)

func cmdQueryScores(c *cli.Context) error {
	limit := c.Int(queryLimitFlag.Name)
	if limit <= 0 || limit > queryResultLimitDefault {
		limit = queryResultLimitDefault
	}

	var minScore *float64
	if c.IsSet(minScoreFlag.Name) {
		v := c.Float64(minScoreFlag.Name)
		minScore = &v
	}

	cfg := getConfig(c)

	list, err := data.SearchScores(cfg.DB, optional(c.String(gradeQueryFlag.Name)), minScore, limit)
	if err != nil {
		return fmt.Errorf("failed to query scores: %w", err)
	}

	return encode(list)
}

func cmdQueryScore(c *cli.Context) error {
	val := c.String(memberIDFlag.Name)
	if val == "" {
		return cli.ShowSubcommandHelp(c)
	}

	cfg := getConfig(c)

	r, err := data.GetScore(cfg.DB, val)
	if err != nil {
		return fmt.Errorf("failed to query score: %w", err)
	}

	if r == nil {
		fmt.Fprintln(os.Stdout, "{}")
		return nil
	}

	return encode(r)
}

func cmdQueryBorrower(c *cli.Context) error {
	val := c.String(memberIDFlag.Name)
	if val == "" {
		return cli.ShowSubcommandHelp(c)
	}

	cfg := getConfig(c)

	b, err := data.GetBorrower(cfg.DB, val)
	if err != nil {
		return fmt.Errorf("failed to query borrower: %w", err)
	}

	if b == nil {
		fmt.Fprintln(os.Stdout, "{}")
		return nil
	}

	return encode(b)
}

func cmdQueryGrades(c *cli.Context) error {
	cfg := getConfig(c)

	dist, err := data.GetGradeDistribution(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to query grade distribution: %w", err)
	}

	return encode(dist)
}

func cmdQueryState(c *cli.Context) error {
	cfg := getConfig(c)

	state, err := data.GetDataState(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to query data state: %w", err)
	}

	return encode(state)
}
