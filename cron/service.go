package cron

import (
	"context"

	"gopkg.in/robfig/cron.v2"

	"github.com/bobinette/papersync/errors"
	"github.com/bobinette/papersync/log"
	"github.com/bobinette/papersync/syncer"
)

// DefaultSpec runs a pass every hour, on the hour.
const DefaultSpec = "0 0 * * * *"

type Config struct {
	Spec string `toml:"spec"`
}

type Runner interface {
	Run(ctx context.Context) (syncer.Report, error)
}

// Scheduler triggers sync passes on a cron spec. A tick firing while a pass
// is still running is skipped.
type Scheduler struct {
	runner Runner
	spec   string
	logger log.Logger

	cron *cron.Cron
}

func NewScheduler(runner Runner, cfg Config, logger log.Logger) *Scheduler {
	spec := cfg.Spec
	if spec == "" {
		spec = DefaultSpec
	}

	return &Scheduler{
		runner: runner,
		spec:   spec,
		logger: logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(s.spec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return errors.New("invalid cron spec "+s.spec, errors.BadRequest(), errors.WithCause(err))
	}

	c.Start()
	s.cron = c
	s.logger.Printf("scheduler started with spec %s", s.spec)
	return nil
}

// Stop stops the scheduler. A running pass is not interrupted.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	report, err := s.runner.Run(ctx)
	if err == syncer.ErrBusy {
		s.logger.Print("a sync is already running, skipping tick")
		return
	} else if err != nil {
		s.logger.Errorf("scheduled sync failed: %s", syncer.Describe(err))
		return
	}

	s.logger.Printf("scheduled sync: %s", report.Message)
}
