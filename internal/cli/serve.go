package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/rectanglify/internal/server"
)

// newServeCmd creates the serve command, which runs the MCP server on the
// command's stdin and stdout.
func newServeCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			logger.Info("Serving MCP on stdio", "rects_per_pixel", cfg.RectsPerPixel)

			srv := server.New(logger, cfg.Settings(), cfg.PreprocessOptions())
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
