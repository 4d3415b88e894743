// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kedjora/kedjora-go/internal/model"
)

// RetentionSchedule is the cron spec for event log pruning.
const RetentionSchedule = "@daily"

// EventPruner deletes audit events older than a duration.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
	LogSystemEvent(ctx context.Context, level, message string, metadata map[string]any) error
}

// JobInfo is the public view of a scheduled job.
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	LastRun  time.Time `json:"lastRun,omitempty"`
	NextRun  time.Time `json:"nextRun"`
}

// Scheduler handles scheduled maintenance such as event log retention.
type Scheduler struct {
	cron      *cron.Cron
	events    EventPruner
	retention time.Duration
	logger    *slog.Logger
	jobs      map[string]cron.EntryID
	schedules map[string]string
}

// New creates a scheduler that keeps retentionDays of events. A
// non-positive value disables pruning.
func New(events EventPruner, retentionDays int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		events:    events,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
		jobs:      make(map[string]cron.EntryID),
		schedules: make(map[string]string),
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.retention > 0 {
		if err := s.add("event_retention", RetentionSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := s.RunRetention(ctx); err != nil {
				s.logger.Error("event retention failed", "error", err, "category", model.EventCategorySystem)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

func (s *Scheduler) add(name, spec string, fn func()) error {
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	s.jobs[name] = id
	s.schedules[name] = spec
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunRetention deletes events older than the retention window and records
// the run when anything was removed.
func (s *Scheduler) RunRetention(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	n, err := s.events.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("pruned old events", "deleted", n, "retention_days", int(s.retention.Hours()/24))
		_ = s.events.LogSystemEvent(ctx, model.EventLevelInfo, "event log pruned", map[string]any{
			"deleted":        n,
			"retention_days": int(s.retention.Hours() / 24),
		})
	}
	return n, nil
}

// Jobs lists registered jobs with their next run time.
func (s *Scheduler) Jobs() []JobInfo {
	out := make([]JobInfo, 0, len(s.jobs))
	for name, id := range s.jobs {
		e := s.cron.Entry(id)
		out = append(out, JobInfo{
			Name:     name,
			Schedule: s.schedules[name],
			LastRun:  e.Prev,
			NextRun:  e.Next,
		})
	}
	return out
}
