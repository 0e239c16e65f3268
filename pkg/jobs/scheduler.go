package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Job represents a background job.
type Job interface {
	Name() string
	Execute(ctx context.Context) error
}

// Scheduler manages and executes background jobs.
type Scheduler struct {
	jobs    map[string]*ScheduledJob
	mu      sync.RWMutex
	logger  *slog.Logger
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// ScheduledJob wraps a job with its schedule.
type ScheduledJob struct {
	Job      Job
	Interval time.Duration
	ticker   *time.Ticker
	stopCh   chan struct{}
}

// NewScheduler creates a new job scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*ScheduledJob),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler with an interval.
func (s *Scheduler) AddJob(job Job, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[job.Name()] = &ScheduledJob{
		Job:      job,
		Interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start starts all scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	jobs := make([]*ScheduledJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.Unlock()

	for _, scheduledJob := range jobs {
		go s.runJob(scheduledJob)
	}

	s.logger.Info("job scheduler started", "jobs", len(jobs))
}

// runJob runs a single job on its schedule.
func (s *Scheduler) runJob(scheduled *ScheduledJob) {
	ticker := time.NewTicker(scheduled.Interval)
	scheduled.ticker = ticker

	s.logger.Info("starting job", "name", scheduled.Job.Name(), "interval", scheduled.Interval)

	for {
		select {
		case <-ticker.C:
			s.executeJob(scheduled.Job)
		case <-scheduled.stopCh:
			ticker.Stop()
			return
		case <-s.ctx.Done():
			ticker.Stop()
			return
		}
	}
}

// executeJob executes a single job with error handling.
func (s *Scheduler) executeJob(job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panic", "name", job.Name(), "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	s.logger.Debug("executing job", "name", job.Name())

	start := time.Now()
	if err := job.Execute(ctx); err != nil {
		s.logger.Error("job execution failed", "name", job.Name(), "error", err, "duration", time.Since(start))
	} else {
		s.logger.Debug("job completed", "name", job.Name(), "duration", time.Since(start))
	}
}

// Stop stops all scheduled jobs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()

	for _, job := range s.jobs {
		close(job.stopCh)
	}

	s.running = false
	s.logger.Info("job scheduler stopped")
}

// RunOnce executes a job immediately (useful for testing).
func (s *Scheduler) RunOnce(jobName string) error {
	s.mu.RLock()
	scheduled, exists := s.jobs[jobName]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job not found: %s", jobName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return scheduled.Job.Execute(ctx)
}

// EntitlementExpirationJob sweeps lapsed entitlements. Plan status is also
// reconciled lazily on read, so the sweep only tightens the window in which
// a stale Active row can be observed.
type EntitlementExpirationJob struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewEntitlementExpirationJob creates a new entitlement expiration job.
func NewEntitlementExpirationJob(db *gorm.DB, logger *slog.Logger) *EntitlementExpirationJob {
	return &EntitlementExpirationJob{
		db:     db,
		logger: logger,
	}
}

// Name returns the job name.
func (j *EntitlementExpirationJob) Name() string {
	return "entitlement_expiration"
}

// Execute marks entitlements whose end date has passed as expired. The
// comparison is strict: a row whose end date equals the sweep instant is
// still active, the same boundary the read path derives.
func (j *EntitlementExpirationJob) Execute(ctx context.Context) error {
	now := time.Now()

	result := j.db.WithContext(ctx).
		Exec(`UPDATE users
			  SET plan_status = 'Expired', updated_at = NOW()
			  WHERE end_date IS NOT NULL AND end_date < ? AND plan_status = 'Active'`, now)

	if result.Error != nil {
		return fmt.Errorf("failed to expire entitlements: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		j.logger.Info("expired lapsed entitlements", "count", result.RowsAffected)
	}

	return nil
}
