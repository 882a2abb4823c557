package main

import (
	"github.com/spf13/cobra"

	"github.com/bobinette/papersync"
	"github.com/bobinette/papersync/errors"
)

func init() {
	HistoryCommand.Flags().Int("limit", 10, "number of runs to show, 0 for all")
	HistoryCommand.Flags().Bool("papers", false, "list the imported papers instead of the runs")

	RootCmd.AddCommand(&HistoryCommand)
}

var errNoStore = errors.New("no bolt store configured, set bolt.store", errors.BadRequest())

var HistoryCommand = cobra.Command{
	Use:   "history",
	Short: "Show the past sync runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.history == nil {
			return errNoStore
		}

		if papersOnly, _ := cmd.Flags().GetBool("papers"); papersOnly {
			papers, err := a.history.ListPapers()
			if err != nil {
				return errors.New("error listing papers", errors.WithCause(err))
			}
			for _, p := range papers {
				cmd.Printf("%s\t%s\t%s\t%s\n", papersync.FormatDate(p.ImportedAt), p.ArxivID, p.Title, p.NotePath)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := a.history.ListRuns(limit)
		if err != nil {
			return errors.New("error listing runs", errors.WithCause(err))
		}

		for _, run := range runs {
			cmd.Printf("#%d\t%s\t%s\t%s\n", run.ID, papersync.FormatDateTime(run.StartedAt), run.Outcome, run.Message)
		}
		return nil
	},
}
