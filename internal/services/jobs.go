package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrJobNotFound is returned for unknown or expired jobs.
var ErrJobNotFound = errors.New("job not found")

const jobKeyPrefix = "receitanet:job:"

// JobStore keeps download jobs in Redis, falling back to memory when Redis
// is not available
type JobStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger

	memJobs  map[string]jobItem
	memMutex sync.RWMutex
}

type jobItem struct {
	value     []byte
	expiresAt time.Time
}

// NewJobStore creates a new job store. A nil client keeps jobs in memory only.
func NewJobStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *JobStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &JobStore{
		client:  client,
		ttl:     ttl,
		logger:  logger,
		memJobs: make(map[string]jobItem),
	}
}

func jobKey(id string) string {
	return jobKeyPrefix + id
}

// Save stores job with the configured TTL
func (s *JobStore) Save(ctx context.Context, job *models.Job) error {
	value, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding job %s: %w", job.ID, err)
	}
	key := jobKey(job.ID)

	if s.client != nil {
		err := s.client.Set(ctx, key, value, s.ttl).Err()
		if err == nil {
			s.logger.WithField("job_id", job.ID).Debug("Job saved (Redis)")
			return nil
		}
		s.logger.WithFields(logrus.Fields{
			"job_id": job.ID,
			"error":  err.Error(),
		}).Warn("Redis set error, falling back to memory store")
	}

	s.memMutex.Lock()
	s.memJobs[key] = jobItem{
		value:     value,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.memMutex.Unlock()

	s.logger.WithField("job_id", job.ID).Debug("Job saved (memory)")
	return nil
}

// Get retrieves a job by id
func (s *JobStore) Get(ctx context.Context, id string) (*models.Job, error) {
	key := jobKey(id)

	if s.client != nil {
		val, err := s.client.Get(ctx, key).Bytes()
		if err == nil {
			return decodeJob(val)
		}
		if err != redis.Nil {
			s.logger.WithFields(logrus.Fields{
				"job_id": id,
				"error":  err.Error(),
			}).Warn("Redis get error, falling back to memory store")
		}
	}

	s.memMutex.RLock()
	item, exists := s.memJobs[key]
	s.memMutex.RUnlock()

	if !exists {
		return nil, ErrJobNotFound
	}
	if s.ttl > 0 && time.Now().After(item.expiresAt) {
		s.memMutex.Lock()
		delete(s.memJobs, key)
		s.memMutex.Unlock()
		return nil, ErrJobNotFound
	}
	return decodeJob(item.value)
}

func decodeJob(value []byte) (*models.Job, error) {
	var job models.Job
	if err := json.Unmarshal(value, &job); err != nil {
		return nil, fmt.Errorf("decoding job: %w", err)
	}
	return &job, nil
}

// Delete removes a job
func (s *JobStore) Delete(ctx context.Context, id string) error {
	key := jobKey(id)

	if s.client != nil {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			s.logger.WithFields(logrus.Fields{
				"job_id": id,
				"error":  err.Error(),
			}).Warn("Redis delete error")
		}
	}

	s.memMutex.Lock()
	delete(s.memJobs, key)
	s.memMutex.Unlock()
	return nil
}

// Len returns how many jobs are held in memory
func (s *JobStore) Len() int {
	s.memMutex.RLock()
	defer s.memMutex.RUnlock()
	return len(s.memJobs)
}

// Health returns job store health status
func (s *JobStore) Health() map[string]interface{} {
	health := make(map[string]interface{})

	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx).Err(); err != nil {
			health["status"] = "degraded"
			health["error"] = err.Error()
		} else {
			health["status"] = "healthy"
		}
		health["backend"] = "redis"
	} else {
		health["status"] = "healthy"
		health["backend"] = "memory"
	}
	health["memory_jobs"] = s.Len()
	return health
}

// cleanupExpired removes expired jobs from memory
func (s *JobStore) cleanupExpired(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.memMutex.Lock()
	defer s.memMutex.Unlock()

	removed := 0
	for key, item := range s.memJobs {
		if now.After(item.expiresAt) {
			delete(s.memJobs, key)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine periodically drops expired in-memory jobs until ctx ends
func (s *JobStore) StartCleanupRoutine(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := s.cleanupExpired(now); n > 0 {
					s.logger.WithField("removed", n).Debug("Expired jobs removed")
				}
			}
		}
	}()
}
