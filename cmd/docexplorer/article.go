package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/internal/render"
	"github.com/pdiddy/doc-explorer/internal/view"
)

var articleCmd = &cobra.Command{
	Use:   "article <id>",
	Short: "Show an article with its related papers",
	Long: `Article fetches the exact match for an article identifier and its related
set, colored by publication year relative to the article. With --by-title the
argument is a title, for papers the service lists without an identifier.`,
	Args: cobra.ExactArgs(1),
	RunE: runArticle,
}

func init() {
	articleCmd.Flags().Bool("by-title", false, "treat the argument as a title")
	articleCmd.Flags().Bool("pdf", false, "download the PDF and report its page count")
	articleCmd.Flags().Bool("json", false, "output the view models as JSON")
	articleCmd.Flags().Bool("yaml", false, "output the view models as YAML")

	rootCmd.AddCommand(articleCmd)
}

func runArticle(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	format, err := render.FormatFor(asJSON, asYAML)
	if err != nil {
		return err
	}

	loc := querycodec.ArticleLocation(args[0])
	if byTitle, _ := cmd.Flags().GetBool("by-title"); byTitle {
		loc = querycodec.ArticleLocationByTitle(args[0])
	}
	st, err := navigation.Parse(loc)
	if err != nil {
		return err
	}

	client := newClient()
	a := view.NewArticle(cmd.Context(), client, client, client, logger)
	view.RunAll(a.Enter(st))
	if inspect, _ := cmd.Flags().GetBool("pdf"); inspect {
		view.RunAll(a.InspectPDF())
	}

	reader, related := a.Reader(), a.Related()
	if format != render.Table {
		return render.Write(format, struct {
			Reader  view.Model[view.ReaderPane]  `json:"reader" yaml:"reader"`
			Related view.Model[view.RelatedPane] `json:"related" yaml:"related"`
		}{reader, related}, cmd.OutOrStdout())
	}
	render.Article(reader, related, cmd.OutOrStdout())
	if reader.Status == view.StatusError {
		return fmt.Errorf("article lookup failed")
	}
	return nil
}
