package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cashflow-mcp/internal/catalog"
	"cashflow-mcp/internal/config"
	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/logging"
	"cashflow-mcp/internal/mcp"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "cashflow-mcp",
	Short: "Synthetic cash-flow generator and statistics engine, served over MCP",
	Long: `Generates deterministic three-year daily cash-flow histories for business entities and derives
descriptive statistics, distributions, quality scores, alerts, balance sheets and a linear balance
forecast. Without a subcommand it runs as an MCP server on stdio.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("cashflow-mcp starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(0, 0)
		if err != nil {
			return err
		}
		server, err := mcp.NewServer(svc, cfg.EnableMermaidCharts, Version)
		if err != nil {
			return err
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return server.Serve(ctx)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(generateCmd, statsCmd, batchCmd, serveCmd, reportCmd)
}

// newService wires scenario, catalog and pipeline from the loaded configuration. Zero arguments
// fall back to the configured seed and horizon.
func newService(seed int64, horizon int) (*dataset.Service, error) {
	scenario, err := config.LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return nil, err
	}
	profiles, err := catalog.Load(cfg.ProfilesPath)
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = cfg.Seed
	}
	if horizon <= 0 {
		horizon = cfg.ForecastHorizon
	}

	pipeline := dataset.NewPipeline(scenario, dataset.WithHorizon(horizon))
	svc := dataset.NewService(profiles, pipeline, seed)
	log.Debug().
		Int("entities", profiles.Len()).
		Int64("seed", svc.Seed()).
		Int("horizon", pipeline.Horizon()).
		Msg("Service ready")
	return svc, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
