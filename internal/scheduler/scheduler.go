// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic background jobs.
package scheduler

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/portfolio-go/internal/store"
)

// Scheduler runs the periodic snapshot safety flush. Mutations flush the
// snapshot on their own; this job only catches deferred writes that were
// still pending when their flush timer was lost (for example after a
// flush error).
type Scheduler struct {
	store  *store.Store
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(st *store.Store, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:  st,
		cron:   cron.New(),
		logger: logger.With("component", "scheduler"),
	}
}

// Start begins the scheduler with a snapshot flush check every minute.
func (s *Scheduler) Start() error {
	// Run every minute
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.store.FlushIfDirty(); err != nil {
			s.logger.Error("safety flush failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
