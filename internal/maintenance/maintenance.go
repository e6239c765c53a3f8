// Package maintenance runs periodic housekeeping (transcript compression,
// cache cleanup) for the long-running surfaces.
package maintenance

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"stockchat/internal/logger"
)

// Task is one housekeeping job.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{cron: cron.New(), ctx: ctx}
}

// Register schedules every task on the same standard 5-field cron spec.
func (s *Scheduler) Register(spec string, tasks ...Task) error {
	for _, t := range tasks {
		t := t
		if _, err := s.cron.AddFunc(spec, func() { s.run(t) }); err != nil {
			return fmt.Errorf("register %s task: %w", t.Name, err)
		}
	}
	return nil
}

func (s *Scheduler) run(t Task) {
	op := logger.StartOperation(s.ctx, "maintenance."+t.Name)
	if err := t.Run(op.Context()); err != nil {
		op.EndWithError(err)
		return
	}
	op.End()
}

// RunNow runs every registered task once, synchronously.
func (s *Scheduler) RunNow() {
	for _, e := range s.cron.Entries() {
		e.Job.Run()
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info(s.ctx, "Maintenance scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info(s.ctx, "Maintenance scheduler stopped")
}
