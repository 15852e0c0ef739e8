// Package scheduler runs recurring background jobs on cron expressions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultJobTimeout = 5 * time.Minute

// Job is a unit of background work. An empty Schedule registers the job for
// on-demand runs only.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

type funcJob struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

// NewFuncJob wraps a function as a Job.
func NewFuncJob(name, schedule string, run func(ctx context.Context) error) Job {
	return &funcJob{name: name, schedule: schedule, run: run}
}

func (j *funcJob) Name() string                  { return j.name }
func (j *funcJob) Schedule() string              { return j.schedule }
func (j *funcJob) Run(ctx context.Context) error { return j.run(ctx) }

type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	timeout time.Duration
}

func New() *Scheduler {
	logger := cronLogger{log.Logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		timeout: defaultJobTimeout,
	}
}

// Register adds the job and schedules it when it carries a cron expression.
func (s *Scheduler) Register(job Job) error {
	schedule := job.Schedule()
	if schedule != "" {
		if _, err := s.cron.AddFunc(schedule, func() { s.execute(context.Background(), job) }); err != nil {
			return fmt.Errorf("schedule job %s: %w", job.Name(), err)
		}
		log.Info().Str("job", job.Name()).Str("cron", schedule).Msg("job scheduled")
	} else {
		log.Info().Str("job", job.Name()).Msg("job registered for on-demand runs")
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *Scheduler) execute(parent context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}
	event.Str("job", job.Name()).Dur("took", time.Since(start)).Msg("job finished")
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
}

// Stop halts scheduling and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Info().Msg("scheduler stopped")
	case <-ctx.Done():
		log.Warn().Msg("scheduler stop timed out with jobs still running")
	}
}

// RunByName executes a registered job immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name() == name {
			return s.execute(ctx, job)
		}
	}
	return fmt.Errorf("job %q is not registered", name)
}

func (s *Scheduler) Registered() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.Logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
