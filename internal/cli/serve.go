package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

  POST /render?format=svg   render the data view in the request body
  GET  /history             list recent renders
  GET  /history/{id}        show one render
  GET  /healthz             liveness probe

History is kept in memory unless history.mongo_uri is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close(ctx)
			if runner.History == nil {
				store, err := c.newHistory(ctx)
				if err != nil {
					return err
				}
				runner.History = store
				printWarning(c.out, "History is kept in memory; set history.mongo_uri to persist it")
			}

			sc := c.Config.Server
			if !cmd.Flags().Changed("addr") {
				addr = sc.Addr
			}
			srv := server.New(runner, runner.History,
				server.WithLogger(c.Logger),
				server.WithDefaults(c.baseOptions()),
				server.WithMaxBodyBytes(sc.MaxBodyBytes),
				server.WithHistoryLimit(c.Config.History.Limit),
			)
			printInfo(c.out, "Serving on %s", addr)
			return srv.ListenAndServe(ctx, addr, sc.ReadTimeout, sc.WriteTimeout)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
