package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-gradient-mcp/internal/server"
)

func newServeCmd(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP requests on stdin/stdout",
		Long: `Serve reads line-delimited JSON-RPC requests from stdin and writes the
responses to stdout until stdin closes. Configure it as a stdio server in
your MCP client.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), in, out)
		},
	}
}

func runServe(ctx context.Context, in io.Reader, out io.Writer) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	logger.Debug("starting", "server", server.ServerName, "version", version, "commit", commit, "built", date)

	return server.New(cfg, logger).Serve(ctx, in, out)
}
