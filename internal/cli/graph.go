package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doctower/pkg/config"
	"github.com/matzehuels/doctower/pkg/dot"
	"github.com/matzehuels/doctower/pkg/errors"
	"github.com/matzehuels/doctower/pkg/pipeline"
)

// graphCommand creates the graph command for rendering a single diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		configPath string
		format     string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "graph <name>",
		Short: "Render a single diagram from the manifest",
		Long: `Render a single diagram from the manifest.

The graph command assembles the named diagram and emits it in one
format. DOT source goes to stdout by default; SVG and PNG are written
to <name>.<format> unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !pipeline.ValidFormats[format] || format == pipeline.FormatRST {
				return errors.New(errors.ErrCodeInvalidFormat,
					"invalid format: %q (must be one of: dot, svg, png)", format)
			}
			return c.runGraph(cmd.Context(), cfg, args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultManifest, "manifest file")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: dot (default), svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout for dot, <name>.<format> otherwise)")

	return cmd
}

// runGraph assembles the tree, picks the named graph, and renders it.
func (c *CLI) runGraph(ctx context.Context, cfg *config.Config, name, format, output string) error {
	tree, err := pipeline.Assemble(cfg)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}

	var graph *dot.Graph
	for _, g := range tree.Graphs {
		if g.Name() == name {
			graph = g
			break
		}
	}
	if graph == nil {
		return errors.New(errors.ErrCodeNotFound, "no graph named %q in manifest", name)
	}

	prog := newProgress(loggerFromContext(ctx))
	src := graph.DOT()

	var data []byte
	switch format {
	case pipeline.FormatDOT:
		data = []byte(src)
	case pipeline.FormatSVG:
		data, err = dot.RenderSVG(src)
	case pipeline.FormatPNG:
		data, err = dot.RenderPNG(src)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s as %s", name, format)
	}
	prog.done(fmt.Sprintf("Rendered %s as %s", name, format))

	if output == "" {
		if format == pipeline.FormatDOT {
			fmt.Print(string(data))
			return nil
		}
		output = name + "." + format
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}
	printSuccess("Rendered %s", name)
	printFile(output)
	return nil
}
