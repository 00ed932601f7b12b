package scheduler

import (
	"context"
	"fmt"
	"time"

	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-closures/internal/shared/logger"
)

// Job represents a cron job that can be scheduled
type Job interface {
	// Name returns the name of the job
	Name() string

	// Schedule returns the cron schedule expression
	Schedule() string

	// Run executes the job
	Run(ctx context.Context) error

	// Timeout returns the maximum time the job should run
	Timeout() time.Duration
}

// JobResult represents the result of a job execution
type JobResult struct {
	JobName   string
	Success   bool
	Duration  time.Duration
	Error     error
	StartTime time.Time
	EndTime   time.Time
}

// Scheduler manages cron jobs
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
	jobs   []Job
	jobIDs map[string]cron.EntryID

	// OnResult, when set, receives every finished job execution
	OnResult func(JobResult)
}

// NewScheduler creates a new scheduler instance
func NewScheduler(c *cron.Cron, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   c,
		logger: logger.Named("scheduler"),
		jobs:   make([]Job, 0),
		jobIDs: make(map[string]cron.EntryID),
	}
}

// RegisterJob registers a single job with the scheduler
func (s *Scheduler) RegisterJob(job Job) error {
	if _, exists := s.jobIDs[job.Name()]; exists {
		return fmt.Errorf("job %s already registered", job.Name())
	}

	// Schedule the job
	id, err := s.cron.AddFunc(job.Schedule(), s.wrapJob(job))
	if err != nil {
		s.logger.Error("Failed to schedule job",
			zap.String("job_name", job.Name()),
			zap.String("schedule", job.Schedule()),
			zap.Error(err))
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}

	s.jobs = append(s.jobs, job)
	s.jobIDs[job.Name()] = id
	s.logger.Info("Job registered successfully",
		zap.String("job_name", job.Name()),
		zap.String("schedule", job.Schedule()))

	return nil
}

// wrapJob wraps a job with context, timeout, and error handling
func (s *Scheduler) wrapJob(job Job) func() {
	return func() {
		s.execute(job)
	}
}

func (s *Scheduler) execute(job Job) JobResult {
	startTime := time.Now()

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), job.Timeout())
	defer cancel()

	s.logger.Info("Starting job execution",
		zap.String("job_name", job.Name()),
		zap.Time("start_time", startTime))

	err := job.Run(ctx)

	endTime := time.Now()
	result := JobResult{
		JobName:   job.Name(),
		Success:   err == nil,
		Duration:  endTime.Sub(startTime),
		Error:     err,
		StartTime: startTime,
		EndTime:   endTime,
	}

	if result.Success {
		s.logger.Info("Job completed successfully",
			zap.String("job_name", result.JobName),
			zap.Duration("duration", result.Duration))
	} else {
		s.logger.Error("Job failed",
			zap.String("job_name", result.JobName),
			zap.Duration("duration", result.Duration),
			zap.Error(result.Error))
	}

	if s.OnResult != nil {
		s.OnResult(result)
	}

	return result
}

// GetRegisteredJobs returns a list of all registered job names
func (s *Scheduler) GetRegisteredJobs() []string {
	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.Name())
	}
	return names
}

// Start starts the underlying cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Cron scheduler started", zap.Int("job_count", len(s.jobs)))
}

// Stop stops the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("Stopping scheduler")

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Cron scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Cron scheduler shutdown timed out")
		return ctx.Err()
	}
}
