// Copyright (c) 2026 Pictufy Mirror. All rights reserved.
// Author: totmarc

package sweep

import (
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs registered jobs on standard 5-field cron expressions.
//
// Every job is wrapped with panic recovery and structured start/finish
// logging, and overlapping runs of the same job are skipped rather than
// queued, so a slow sweep can never stack on itself.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler creates a scheduler with the standard job chain.
func NewScheduler(logger *slog.Logger) *Scheduler {
	scoped := logger.With(slog.String("system", "cron"))

	return &Scheduler{
		cron: cron.New(
			// Logging sits innermost so it still sees the job's name.
			cron.WithChain(
				newRecoveryWrapper(scoped),
				cron.SkipIfStillRunning(cron.DiscardLogger),
				newLoggingWrapper(scoped),
			),
		),
		logger: scoped,
	}
}

// Register adds a named job under a cron expression.
func (s *Scheduler) Register(expression, name string, run func()) error {
	_, err := s.cron.AddJob(expression, namedJob{name: name, run: run})
	if err != nil {
		return err
	}

	s.logger.Info("job registered",
		slog.String("job_name", name),
		slog.String("schedule", expression),
	)
	return nil
}

// Start begins the scheduling loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops scheduling new runs and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// namedJob carries a readable name into the job chain wrappers.
type namedJob struct {
	name string
	run  func()
}

func (j namedJob) Run() { j.run() }

func (j namedJob) Name() string { return j.name }

// newLoggingWrapper logs the start and duration of every job run.
func newLoggingWrapper(logger *slog.Logger) cron.JobWrapper {
	return func(job cron.Job) cron.Job {
		return cron.FuncJob(func() {
			jobLogger := logger.With(slog.String("job_name", jobName(job)))

			started := time.Now()
			jobLogger.Info("job run started")

			job.Run()

			jobLogger.Info("job run finished", slog.Duration("duration", time.Since(started)))
		})
	}
}

// newRecoveryWrapper keeps a panicking job from taking the process down.
func newRecoveryWrapper(logger *slog.Logger) cron.JobWrapper {
	return func(job cron.Job) cron.Job {
		return cron.FuncJob(func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("job panicked",
						slog.String("job_name", jobName(job)),
						slog.Any("panic", r),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()

			job.Run()
		})
	}
}

// jobName extracts a readable name from the job chain.
func jobName(job cron.Job) string {
	if named, ok := job.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "job"
}
