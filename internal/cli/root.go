package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/rectanglify/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts holds the flags shared by every command.
type globalOpts struct {
	verbose bool
	config  string
}

// loadConfig returns the configuration named by --config, or the defaults
// when no file was given.
func (g *globalOpts) loadConfig() (*config.Config, error) {
	if g.config == "" {
		return config.Default(), nil
	}
	return config.Load(g.config)
}

// Execute runs the rectanglify CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Logging goes to the command's stderr,
// at debug level with --verbose.
func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	root := &cobra.Command{
		Use:           "rectanglify",
		Short:         "Redraw images as black-bordered rectangles",
		Long:          `Rectanglify recursively divides an image into rectangles, placing more and smaller rectangles where the image is darker, and draws their borders in black on white.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if g.verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("rectanglify %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&g.config, "config", "c", "", "TOML configuration file")

	root.AddCommand(newRenderCmd(g))
	root.AddCommand(newAnalyzeCmd(g))
	root.AddCommand(newStreamCmd(g))
	root.AddCommand(newServeCmd(g))

	return root
}
