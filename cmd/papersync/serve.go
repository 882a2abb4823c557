package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobinette/papersync/cron"
	"github.com/bobinette/papersync/syncer"
	"github.com/bobinette/papersync/web"
)

func init() {
	ServeCommand.Flags().Bool("schedule", false, "also run the cron scheduler")

	RootCmd.AddCommand(&ServeCommand)
}

var ServeCommand = cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP trigger",
	Long:  "Start an HTTP server: POST /sync runs a pass, GET /history, /search and /readinglist expose the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := syncer.NewRunner(a.orchestrator(logger))

		srv := web.NewServer(verbose)
		services := web.Services{
			Runner:      runner,
			ReadingList: a.readingList,
		}
		if a.history != nil {
			services.History = a.history
		}
		if a.index != nil {
			services.Searcher = a.index
		}
		web.RegisterHTTP(srv, services)

		if withCron, _ := cmd.Flags().GetBool("schedule"); withCron {
			scheduler := cron.NewScheduler(runner, cfg.Cron, logger)
			if err := scheduler.Start(ctx); err != nil {
				return err
			}
			defer scheduler.Stop()
		}

		server := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Handler()}
		go func() {
			<-ctx.Done()
			server.Shutdown(context.Background())
		}()

		logger.Printf("server started, listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped:", err)
			return err
		}
		return nil
	},
}
