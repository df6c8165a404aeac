package commands

import (
	"cashflow-mcp/internal/dataset"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	entity  string
	seed    int64
	horizon int
	export  bool
}

var generateOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset of one entity and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(generateOpts.seed, generateOpts.horizon)
		if err != nil {
			return err
		}
		ds, err := svc.Dataset(generateOpts.entity, 0)
		if err != nil {
			return err
		}

		if generateOpts.export {
			path, err := dataset.WriteFile(cfg.ExportDir, ds)
			if err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("Dataset exported")
			return nil
		}
		return writeJSON(cmd, ds)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.entity, "entity", "e", "", "entity ID (see list in the catalog)")
	f.Int64Var(&generateOpts.seed, "seed", 0, "generator seed (0 uses CASHFLOW_SEED or the clock)")
	f.IntVar(&generateOpts.horizon, "horizon", 0, "forecast horizon in days (0 uses FORECAST_HORIZON_DAYS)")
	f.BoolVar(&generateOpts.export, "export", false, "write the dataset under DATA_PATH/exports instead of stdout")
	_ = generateCmd.MarkFlagRequired("entity")
}
