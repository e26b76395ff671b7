package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weekgrid/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compile and render pipeline over HTTP",
		Long: `Start the HTTP API.

  GET  /healthz
  POST /compile          schedule body → timetable JSON
  POST /render/{format}  schedule body → rendered artifact

The listen address defaults to [server] addr in the config file (":8080").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	runner := c.newRunner(ctx)
	defer runner.Close()

	base := c.Config.PipelineOptions()
	srv := server.New(runner, base, loggerFromContext(ctx))
	return srv.ListenAndServe(ctx, addr)
}
