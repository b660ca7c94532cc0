package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doctower/pkg/config"
	"github.com/matzehuels/doctower/pkg/errors"
	"github.com/matzehuels/doctower/pkg/pipeline"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		configPath string
		output     string
		formatsStr string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build all pages and diagrams from the manifest",
		Long: `Build all pages and diagrams from the manifest.

The build command assembles the manifest's pages into a single document
tree, renders every page as reStructuredText, renders every diagram in
the requested formats, and writes the results to the build directory.

Stage results are cached so unchanged builds are fast. Use --refresh to
bypass the cache, or --no-cache to disable it entirely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Config:  cfg,
				Formats: parseFormats(formatsStr),
				Refresh: refresh,
			}
			out := output
			if out == "" {
				out = cfg.Build.Output
			}
			return c.runBuild(cmd.Context(), cfg, opts, out, noCache)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultManifest, "manifest file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from manifest)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): rst, dot, svg, png (comma-separated, default from manifest)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render everything, overwriting cached results")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runBuild executes the pipeline and writes the outputs.
func (c *CLI) runBuild(ctx context.Context, cfg *config.Config, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %s...", cfg.Project.Name))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		if msg := errors.UserMessage(err); msg != err.Error() {
			printDetail("%s", msg)
		}
		return err
	}
	spinner.Stop()

	written, err := runner.WriteOutputs(result, output)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	cached := result.CacheInfo.PageMisses == 0 && result.CacheInfo.ArtifactMisses == 0
	printSuccess("Built %s", cfg.Project.Name)
	printBuildStats(result.Stats.PageCount, result.Stats.GraphCount, result.Stats.NodeCount, cached)
	for _, rel := range written {
		printFile(output + "/" + rel)
	}
	printNextStep("Preview the build", "doctower serve")
	return nil
}
