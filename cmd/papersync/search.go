package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/papersync/errors"
)

func init() {
	SearchCommand.Flags().Int("limit", 10, "maximum number of results")

	RootCmd.AddCommand(&SearchCommand)
}

var SearchCommand = cobra.Command{
	Use:   "search <q>",
	Short: "Search the synced papers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.index == nil {
			return errors.New("no index configured, set bleve.store", errors.BadRequest())
		}

		limit, _ := cmd.Flags().GetInt("limit")
		hits, err := a.index.Search(strings.Join(args, " "), limit)
		if err != nil {
			return errors.New("error searching", errors.WithCause(err))
		}

		if len(hits) == 0 {
			cmd.Println("No paper found")
		}
		for _, hit := range hits {
			cmd.Printf("%s\t%s\t%s\n", hit.ArxivID, hit.Title, hit.NotePath)
		}
		return nil
	},
}
