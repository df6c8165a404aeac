package commands

import (
	"path/filepath"

	"cashflow-mcp/internal/report"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	entity string
	seed   int64
	out    string
	open   bool
}

var reportOpts reportOptions

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a Markdown report with Mermaid charts for one entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(reportOpts.seed, 0)
		if err != nil {
			return err
		}
		r, err := report.Build(svc, reportOpts.entity, 0)
		if err != nil {
			return err
		}

		path := reportOpts.out
		if path == "" {
			path = filepath.Join(cfg.DataPath, "reports", "report-"+r.Dataset.Entity.ID+".md")
		}
		if err := r.WriteFile(path); err != nil {
			return err
		}
		log.Info().Str("path", path).Str("entity", r.Dataset.Entity.ID).Msg("Report written")

		if reportOpts.open {
			// The browser helper echoes its launcher output on stdout by default.
			browser.Stdout = cmd.ErrOrStderr()
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Msg("Could not open the report")
			}
		}
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportOpts.entity, "entity", "e", "", "entity ID")
	f.Int64Var(&reportOpts.seed, "seed", 0, "generator seed (0 uses CASHFLOW_SEED or the clock)")
	f.StringVarP(&reportOpts.out, "out", "o", "", "output file (default DATA_PATH/reports/report-<id>.md)")
	f.BoolVar(&reportOpts.open, "open", false, "open the report with the system viewer")
	_ = reportCmd.MarkFlagRequired("entity")
}
