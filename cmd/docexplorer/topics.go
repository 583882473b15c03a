package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-explorer/internal/render"
	"github.com/pdiddy/doc-explorer/internal/view"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [topic-id]",
	Short: "List the topic term cloud",
	Long: `Topics prints the terms of every topic, or of a single topic when an id is
given. Topic terms can be combined into a topic search with
"docexplorer search --topic".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().Bool("json", false, "output as JSON")
	topicsCmd.Flags().Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	format, err := render.FormatFor(asJSON, asYAML)
	if err != nil {
		return err
	}
	client := newClient()

	var m view.Model[[]view.Topic]
	if len(args) == 1 {
		terms, err := client.FetchTopicTerms(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		m = view.Ready([]view.Topic{{ID: args[0], Terms: terms}})
		if len(terms) == 0 {
			m = view.Empty[[]view.Topic]()
		}
	} else {
		form := view.NewSearchForm(cmd.Context(), client, logger)
		view.RunAll(form.LoadTopics())
		m = form.Topics()
	}

	if format != render.Table {
		return render.Write(format, m, cmd.OutOrStdout())
	}
	render.Topics(m, cmd.OutOrStdout())
	return nil
}
