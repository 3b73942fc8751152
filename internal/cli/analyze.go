package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/rectanglify/internal/imaging"
)

// newAnalyzeCmd creates the analyze command, which prints a darkness report
// for an image as JSON without rendering it.
func newAnalyzeCmd(g *globalOpts) *cobra.Command {
	var opts styleOpts

	cmd := &cobra.Command{
		Use:   "analyze IN",
		Short: "Report the darkness of an image and the rectangles it implies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}

			img, err := imaging.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			report := imaging.Analyze(imaging.Preprocess(img, cfg.PreprocessOptions()), cfg.Settings())

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	opts.register(cmd)
	return cmd
}
