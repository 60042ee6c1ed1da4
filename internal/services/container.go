package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// jobCleanupInterval is how often expired in-memory jobs are dropped
const jobCleanupInterval = time.Minute

// Container holds all service dependencies
type Container struct {
	config      *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	JobStore    *JobStore
	Queue       *worker.WorkerPool
	stopCleanup context.CancelFunc
}

// NewContainer creates a new service container. runner executes the queued
// download requests.
func NewContainer(cfg *config.Config, logger *logrus.Logger, runner worker.Runner) (*Container, error) {
	if runner == nil {
		return nil, errors.New("a runner is required")
	}
	container := &Container{
		config: cfg,
		logger: logger,
	}

	container.initRedis()
	container.JobStore = NewJobStore(container.redisClient, cfg.Redis.JobTTL, logger)
	if container.redisClient == nil {
		ctx, cancel := context.WithCancel(context.Background())
		container.stopCleanup = cancel
		container.JobStore.StartCleanupRoutine(ctx, jobCleanupInterval)
	}
	container.Queue = worker.NewWorkerPool(cfg.Worker.Workers, cfg.Worker.QueueSize, runner, container.JobStore, logger)

	if err := container.Queue.Start(); err != nil {
		_ = container.Close()
		return nil,fmt.Errorf("failed to start worker pool: %w", err)
	}
	return container, nil
}

// initRedis initializes the Redis client, leaving it nil when Redis is
// disabled or unreachable
func (c *Container) initRedis() {
	if !c.config.Redis.Enabled {
		c.logger.Info("Redis disabled, keeping jobs in memory")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         c.config.RedisAddr(),
		Password:     c.config.Redis.Password,
		DB:           c.config.Redis.DB,
		PoolSize:     c.config.Redis.PoolSize,
		DialTimeout:  c.config.Redis.DialTimeout,
		ReadTimeout:  c.config.Redis.ReadTimeout,
		WriteTimeout: c.config.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), c.config.Redis.DialTimeout+c.config.Redis.ReadTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		c.logger.WithError(err).Warn("Redis connection failed, keeping jobs in memory")
		_ = client.Close()
		return
	}
	c.redisClient = client
	c.logger.Info("Redis connection established")
}

// Close stops the queue and closes all service connections
func (c *Container) Close() error {
	if c.Queue != nil {
		c.Queue.Stop()
	}
	if c.stopCleanup != nil {
		c.stopCleanup()
	}

	var errs []error
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Health checks the health of all services
func (c *Container) Health() map[string]interface{} {
	health := make(map[string]interface{})

	health["jobs"] = c.JobStore.Health()

	stats := c.Queue.GetStats()
	queue := map[string]interface{}{
		"status":  "healthy",
		"pending": stats.Pending,
		"active":  stats.ActiveWorkers,
	}
	if stats.Pending >= stats.Capacity {
		queue["status"] = "degraded"
	}
	health["queue"] = queue

	return health
}
