package cli

import (
	"fmt"
	"log/slog"

	"github.com/crediflow/lsctl/pkg/data"
	"github.com/urfave/cli/v2"
)

var (
	badDataOutFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Path for the bad data CSV export (optional)",
	}

	reconcileCmd = &cli.Command{
		Name:    "reconcile",
		Aliases: []string{"r"},
		Usage:   "Detect duplicate member identifiers and export them for upstream correction",
		UsageText: `lsctl reconcile                      # report duplicate member ids
   lsctl reconcile --out bad_data.csv   # also export the offending rows`,
		Action: cmdReconcile,
		Flags: []cli.Flag{
			badDataOutFlag,
		},
	}
)

// ReconcileResult is the outcome of a duplicate key reconciliation pass.
type ReconcileResult struct {
	Duplicates []*data.DuplicateMember `json:"duplicates" yaml:"duplicates"`
	Exported   int                     `json:"exported,omitempty" yaml:"exported,omitempty"`
	ExportPath string                  `json:"export_path,omitempty" yaml:"export_path,omitempty"`
}

func cmdReconcile(c *cli.Context) error {
	cfg := getConfig(c)

	dups, err := data.FindDuplicateMembers(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to find duplicate members: %w", err)
	}

	res := &ReconcileResult{Duplicates: dups}

	out := c.String(badDataOutFlag.Name)
	if out != "" && len(dups) > 0 {
		slog.Info("exporting bad data", "path", out, "members", len(dups))
		n, err := data.ExportBadData(cfg.DB, out)
		if err != nil {
			return fmt.Errorf("failed to export bad data: %w", err)
		}
		res.Exported = n
		res.ExportPath = out
	}

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
