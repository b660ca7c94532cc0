package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctower/pkg/config"
	"github.com/matzehuels/doctower/pkg/pipeline"
	"github.com/matzehuels/doctower/pkg/rst"
)

// pagesCommand creates the pages command for browsing assembled pages.
func (c *CLI) pagesCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pages [page]",
		Short: "Browse assembled pages and print their source",
		Long: `Browse assembled pages and print their source.

Without arguments, pages opens an interactive picker over every page in
the manifest. With a page path argument it prints that page's rendered
reStructuredText directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			tree, err := pipeline.Assemble(cfg)
			if err != nil {
				return fmt.Errorf("assemble: %w", err)
			}
			if len(args) == 1 {
				return printPage(tree, args[0])
			}
			return pickPage(tree)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultManifest, "manifest file")

	return cmd
}

// printPage renders the named page to stdout.
func printPage(tree *pipeline.Tree, path string) error {
	for _, doc := range tree.Documents {
		if doc.Name() == path {
			fmt.Print(rst.Render(doc))
			return nil
		}
	}
	return fmt.Errorf("no page %q in manifest", path)
}

// pickPage runs the interactive picker and prints the selection.
func pickPage(tree *pipeline.Tree) error {
	model := NewPageListModel(tree.Documents)
	prog := tea.NewProgram(model)

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("page picker: %w", err)
	}
	if m, ok := final.(PageListModel); ok && m.Selected != nil {
		fmt.Print(rst.Render(m.Selected))
	}
	return nil
}
