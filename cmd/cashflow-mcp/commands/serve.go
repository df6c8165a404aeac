package commands

import (
	"cashflow-mcp/internal/api"

	"github.com/spf13/cobra"
)

var serveOpts struct {
	host string
	port int
	seed int64
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve datasets and statistics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpCfg := cfg.HTTP
		if cmd.Flags().Changed("host") {
			httpCfg.Host = serveOpts.host
		}
		if cmd.Flags().Changed("port") {
			httpCfg.Port = serveOpts.port
		}

		svc, err := newService(serveOpts.seed, 0)
		if err != nil {
			return err
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return api.New(httpCfg, svc).Run(ctx)
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveOpts.host, "host", "", "listen host (overrides HTTP_HOST)")
	f.IntVarP(&serveOpts.port, "port", "p", 0, "listen port (overrides HTTP_PORT)")
	f.Int64Var(&serveOpts.seed, "seed", 0, "session seed (0 uses CASHFLOW_SEED or the clock)")
}
