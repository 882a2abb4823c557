package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobinette/papersync/syncer"
)

// archiveTimeout bounds the wait for the archive batch before the command
// exits.
const archiveTimeout = 2 * time.Minute

func init() {
	RootCmd.AddCommand(&SyncCommand)
}

var SyncCommand = cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass",
	Long:  "Fetch the bookmarks, create a note for every new arXiv paper and update the reading list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		report, err := a.orchestrator(logger).Sync(ctx)
		if verbose {
			for _, p := range report.Papers {
				status := "created"
				switch {
				case p.Err != "":
					status = "failed: " + p.Err
				case p.Note.Collision:
					status = "skipped, title collision"
				case !p.Note.Created:
					status = "skipped"
				}
				cmd.Printf("%s %s (%s)\n", p.Paper.ArxivID, p.Paper.Title, status)
			}
		}
		cmd.Println(report.Message)

		// The process would kill the batch on exit.
		waitCtx, cancel := context.WithTimeout(ctx, archiveTimeout)
		defer cancel()
		outcomes, werr := report.Archive.Wait(waitCtx)
		if werr != nil {
			logger.Warnf("archive did not complete: %v", werr)
		}
		archived := 0
		for _, o := range outcomes {
			if o.Err == nil {
				archived++
			}
		}
		if len(outcomes) > 0 {
			cmd.Printf("Archived %d of %d bookmarks\n", archived, len(outcomes))
		}

		if serr, ok := err.(*syncer.Error); ok && serr.Type == syncer.PartialFailure {
			for _, e := range serr.Errors {
				cmd.Println(" -", e)
			}
		}
		return err
	},
}
