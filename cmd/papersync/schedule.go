package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobinette/papersync/cron"
	"github.com/bobinette/papersync/syncer"
)

func init() {
	ScheduleCommand.Flags().String("spec", "", "cron spec, with seconds, overriding cron.spec")

	RootCmd.AddCommand(&ScheduleCommand)
}

var ScheduleCommand = cobra.Command{
	Use:   "schedule",
	Short: "Run sync passes on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		cronCfg := cfg.Cron
		if spec, _ := cmd.Flags().GetString("spec"); spec != "" {
			cronCfg.Spec = spec
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		scheduler := cron.NewScheduler(syncer.NewRunner(a.orchestrator(logger)), cronCfg, logger)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()

		<-ctx.Done()
		logger.Print("scheduler stopped")
		return nil
	},
}
