package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/internal/render"
	"github.com/pdiddy/doc-explorer/internal/view"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search papers by title, author, or topic",
	Long: `Search queries the document service and prints the result list. A bare
query searches titles exactly; --author and --topic select the other fields.
--related lists the papers related to an article identifier.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("title", "", "exact title")
	searchCmd.Flags().String("author", "", "author name")
	searchCmd.Flags().String("topic", "", "topic terms")
	searchCmd.Flags().String("related", "", "article identifier whose related papers to list")
	searchCmd.Flags().Bool("json", false, "output the view model as JSON")
	searchCmd.Flags().Bool("yaml", false, "output the view model as YAML")
	searchCmd.Flags().Bool("csl", false, "output results as CSL-YAML for reference managers")
	searchCmd.MarkFlagsMutuallyExclusive("title", "author", "topic", "related")
	searchCmd.MarkFlagsMutuallyExclusive("json", "yaml", "csl")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	format, err := render.FormatFor(asJSON, asYAML)
	if err != nil {
		return err
	}

	results := view.NewResults(cmd.Context(), newClient(), logger)

	var tasks []view.Task
	if id, _ := cmd.Flags().GetString("related"); id != "" {
		tasks = results.EnterRequest(querycodec.Related(id))
	} else {
		field, value := searchField(cmd, args)
		loc, err := querycodec.Encode(field, value)
		if err != nil {
			return err
		}
		st, err := navigation.Parse(loc)
		if err != nil {
			return err
		}
		tasks = results.Enter(st)
	}
	view.RunAll(tasks)

	m := results.Model()
	if asCSL, _ := cmd.Flags().GetBool("csl"); asCSL {
		if m.Status == view.StatusError {
			return fmt.Errorf("search failed: %s", m.Reason)
		}
		articles := make([]types.ArticleSummary, len(m.Payload))
		for i, item := range m.Payload {
			articles[i] = item.Article
		}
		return render.WriteCSL(articles, cmd.OutOrStdout())
	}
	if format != render.Table {
		return render.Write(format, m, cmd.OutOrStdout())
	}
	render.Results(m, cmd.OutOrStdout())
	if m.Status == view.StatusError {
		return fmt.Errorf("search failed")
	}
	return nil
}

// searchField picks the field flag that was set, falling back to a title
// search on the positional query.
func searchField(cmd *cobra.Command, args []string) (string, string) {
	for _, f := range querycodec.SearchFields {
		if v, _ := cmd.Flags().GetString(string(f)); v != "" {
			return string(f), v
		}
	}
	if len(args) > 0 {
		return string(querycodec.FieldTitle), args[0]
	}
	return string(querycodec.FieldTitle), ""
}
