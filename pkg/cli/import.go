package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/crediflow/lsctl/pkg/data"
	"github.com/urfave/cli/v2"
)

var (
	customersFileFlag = &cli.StringFlag{
		Name:  "customers",
		Usage: "Path to the customers CSV file",
	}

	loansFileFlag = &cli.StringFlag{
		Name:  "loans",
		Usage: "Path to the loans CSV file",
	}

	repaymentsFileFlag = &cli.StringFlag{
		Name:  "repayments",
		Usage: "Path to the loan repayments CSV file",
	}

	delinqFileFlag = &cli.StringFlag{
		Name:  "delinq",
		Usage: "Path to the defaulter delinquencies CSV file",
	}

	enquiryFileFlag = &cli.StringFlag{
		Name:  "enquiry",
		Usage: "Path to the defaulter enquiries CSV file",
	}

	importCmd = &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Import raw loan CSV files (customers, loans, repayments, defaulters)",
		UsageText: `lsctl import --customers customers.csv --loans loans.csv   # import two files
   lsctl import --delinq delinq.csv --enquiry enquiry.csv      # import defaulter data`,
		Action: cmdImport,
		Flags: []cli.Flag{
			customersFileFlag,
			loansFileFlag,
			repaymentsFileFlag,
			delinqFileFlag,
			enquiryFileFlag,
		},
	}
)

// ImportResult is the summary of one import run.
type ImportResult struct {
	Files    []*data.IngestSummary `json:"files" yaml:"files"`
	State    map[string]int64      `json:"state,omitempty" yaml:"state,omitempty"`
	Duration string                `json:"duration" yaml:"duration"`
}

func cmdImport(c *cli.Context) error {
	start := time.Now()
	cfg := getConfig(c)

	ingesters := []struct {
		flag *cli.StringFlag
		fn   func(*sql.DB, string) (*data.IngestSummary, error)
	}{
		{customersFileFlag, data.IngestCustomers},
		{loansFileFlag, data.IngestLoans},
		{repaymentsFileFlag, data.IngestRepayments},
		{delinqFileFlag, data.IngestDelinquencies},
		{enquiryFileFlag, data.IngestEnquiries},
	}

	res := &ImportResult{Files: make([]*data.IngestSummary, 0)}

	for _, in := range ingesters {
		path := c.String(in.flag.Name)
		if path == "" {
			continue
		}

		slog.Info("importing file", "source", in.flag.Name, "path", path)
		summary, err := in.fn(cfg.DB, path)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		res.Files = append(res.Files, summary)
	}

	if len(res.Files) == 0 {
		return cli.ShowSubcommandHelp(c)
	}

	state, err := data.GetDataState(cfg.DB)
	if err != nil {
		slog.Error("failed to get data state", "error", err)
	} else {
		res.State = state
	}

	res.Duration = time.Since(start).String()

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
