package commands

import (
	"cashflow-mcp/internal/dataset"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type statsOptions struct {
	entity  string
	seed    int64
	year    int
	quarter int
	from    string
}

var statsOpts statsOptions

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print descriptive statistics for an entity, optionally restricted to a year and quarter",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsOpts.quarter < 0 || statsOpts.quarter > 4 {
			return errors.Errorf("quarter must be between 0 and 4, got %d", statsOpts.quarter)
		}
		if (statsOpts.entity == "") == (statsOpts.from == "") {
			return errors.New("exactly one of --entity or --from is required")
		}

		if statsOpts.from != "" {
			ds, err := dataset.ReadFile(statsOpts.from)
			if err != nil {
				return err
			}
			return writeJSON(cmd, dataset.ComputeStatistics(ds.Series.Filter(statsOpts.year, statsOpts.quarter)))
		}

		svc, err := newService(statsOpts.seed, 0)
		if err != nil {
			return err
		}
		st, err := svc.Statistics(statsOpts.entity, 0, statsOpts.year, statsOpts.quarter)
		if err != nil {
			return err
		}
		return writeJSON(cmd, st)
	},
}

func init() {
	f := statsCmd.Flags()
	f.StringVarP(&statsOpts.entity, "entity", "e", "", "entity ID")
	f.Int64Var(&statsOpts.seed, "seed", 0, "generator seed (0 uses CASHFLOW_SEED or the clock)")
	f.IntVar(&statsOpts.year, "year", 0, "restrict to one calendar year")
	f.IntVar(&statsOpts.quarter, "quarter", 0, "restrict to one quarter (1-4), across all years unless --year is set")
	f.StringVar(&statsOpts.from, "from", "", "read the series from an exported dataset file instead of generating it")
}
