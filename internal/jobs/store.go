package jobs

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/common"
	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// Store parks pending jobs between submission and the start signal. State is
// process-lifetime only; a cron sweep drops pending jobs that outlive their
// TTL so abandoned submissions do not accumulate.
type Store struct {
	mu     sync.Mutex
	jobs   map[string]*models.Job
	ttl    time.Duration
	cron   *cron.Cron
	logger arbor.ILogger
}

// NewStore creates a job store and starts its expiry sweep.
func NewStore(config *common.JobsConfig, logger arbor.ILogger) (*Store, error) {
	ttl, err := time.ParseDuration(config.PendingTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid pending TTL '%s': %w", config.PendingTTL, err)
	}

	s := &Store{
		jobs:   make(map[string]*models.Job),
		ttl:    ttl,
		logger: logger,
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(config.SweepSchedule, s.sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule '%s': %w", config.SweepSchedule, err)
	}
	s.cron.Start()

	logger.Info().
		Dur("pending_ttl", ttl).
		Str("sweep_schedule", config.SweepSchedule).
		Msg("Job store initialized")

	return s, nil
}

// Put inserts a pending job. Ids are generated fresh per submission, so an
// overwrite is last-write-wins.
func (s *Store) Put(job *models.Job) {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
}

// Take atomically removes and returns the job, or nil when the id is unknown
// or already consumed.
func (s *Store) Take(jobID string) *models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	delete(s.jobs, jobID)
	return job
}

// Len reports the number of parked jobs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Stop halts the expiry sweep.
func (s *Store) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// sweep drops pending jobs older than the TTL.
func (s *Store) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var expired []string
	for id, job := range s.jobs {
		if job.CreatedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(s.jobs, id)
	}
	s.mu.Unlock()

	for _, id := range expired {
		s.logger.Info().Str("job_id", id).Msg("Expired pending job swept")
	}
}
