package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/crediflow/lsctl/pkg/data"
	"github.com/urfave/cli/v2"
)

var (
	exportOutFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Path for the CSV export",
	}

	exportDSNFlag = &cli.StringFlag{
		Name:  "dsn",
		Usage: "Postgres connection string (postgres://...)",
	}

	exportTableFlag = &cli.StringFlag{
		Name:  "table",
		Usage: fmt.Sprintf("Postgres target table (default: %s)", data.PGTableDefault),
		Value: data.PGTableDefault,
	}

	exportCmd = &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Export the score snapshot to CSV or a Postgres table",
		UsageText: `lsctl export --out scores.csv                           # CSV export
   lsctl export --dsn postgres://host/db --table loan_score # Postgres export`,
		Action: cmdExport,
		Flags: []cli.Flag{
			exportOutFlag,
			exportDSNFlag,
			exportTableFlag,
		},
	}
)

// ExportResult is the outcome of one snapshot export.
type ExportResult struct {
	Records  int    `json:"records" yaml:"records"`
	Target   string `json:"target" yaml:"target"`
	Duration string `json:"duration" yaml:"duration"`
}

func cmdExport(c *cli.Context) error {
	start := time.Now()
	cfg := getConfig(c)

	out := c.String(exportOutFlag.Name)
	dsn := c.String(exportDSNFlag.Name)

	var (
		n      int
		target string
		err    error
	)

	switch {
	case out != "":
		slog.Info("exporting scores to csv", "path", out)
		n, err = data.ExportScoresCSV(cfg.DB, out)
		target = out
	case dsn != "":
		table := c.String(exportTableFlag.Name)
		slog.Info("exporting scores to postgres", "table", table)
		n, err = data.ExportScoresPostgres(c.Context, cfg.DB, dsn, table)
		target = "postgres:" + table
	default:
		return cli.ShowSubcommandHelp(c)
	}

	if err != nil {
		return fmt.Errorf("failed to export scores: %w", err)
	}

	res := &ExportResult{
		Records:  n,
		Target:   target,
		Duration: time.Since(start).String(),
	}

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
