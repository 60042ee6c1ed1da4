package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("download queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

// Runner executa um pedido de download no desktop
type Runner interface {
	Run(ctx context.Context, req models.DownloadRequest) (*models.RunReport, error)
}

// Store persiste o estado dos jobs
type Store interface {
	Save(ctx context.Context, job *models.Job) error
}

// WorkerPool processa os pedidos de download em fila. O desktop é um só,
// então o pool normalmente roda com um único worker.
type WorkerPool struct {
	workers  []*Worker
	jobQueue chan *models.Job
	runner   Runner
	store    Store
	logger   *logrus.Logger

	// Estatísticas
	totalJobs     atomic.Int64
	completedJobs atomic.Int64
	failedJobs    atomic.Int64
	activeWorkers atomic.Int32
	startTime     time.Time

	// Controle
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	stopped bool
}

// Worker representa um worker individual
type Worker struct {
	ID            int
	pool          *WorkerPool
	jobsProcessed atomic.Int64
}

// NewWorkerPool cria um novo pool de workers
func NewWorkerPool(workerCount, queueSize int, runner Runner, store Store, logger *logrus.Logger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		workers:   make([]*Worker, workerCount),
		jobQueue:  make(chan *models.Job, queueSize),
		runner:    runner,
		store:     store,
		logger:    logger,
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
	for i := range pool.workers {
		pool.workers[i] = &Worker{ID: i, pool: pool}
	}
	return pool
}

// Start inicia o pool de workers
func (wp *WorkerPool) Start() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.stopped {
		return ErrPoolStopped
	}
	if wp.started {
		return nil
	}
	wp.started = true

	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.start()
	}

	wp.logger.WithField("workers", len(wp.workers)).Info("Worker pool started")
	return nil
}

// Stop para o pool de workers, cancelando a execução em andamento. Jobs ainda
// na fila terminam como falha com ErrPoolStopped.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return
	}
	wp.stopped = true
	wp.logger.Info("Stopping worker pool...")
	wp.cancel()
	close(wp.jobQueue)
	wp.mu.Unlock()

	wp.wg.Wait()
	for job := range wp.jobQueue {
		wp.abandon(job)
	}
	wp.logger.Info("Worker pool stopped")
}

// abandon encerra um job que não chegou a rodar
func (wp *WorkerPool) abandon(job *models.Job) {
	wp.failedJobs.Add(1)
	wp.finish(job, nil, ErrPoolStopped)
	wp.logger.WithField("job_id", job.ID).Warn("Queued job dropped on shutdown")
}

// Submit cria um job para req e o coloca na fila sem bloquear
func (wp *WorkerPool) Submit(ctx context.Context, req models.DownloadRequest) (*models.Job, error) {
	job := &models.Job{
		ID:        uuid.New().String(),
		Request:   req,
		Status:    models.JobQueued,
		CreatedAt: time.Now(),
	}

	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.stopped {
		return nil, ErrPoolStopped
	}

	if err := wp.store.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("saving job: %w", err)
	}

	snapshot := *job
	select {
	case wp.jobQueue <- job:
		wp.totalJobs.Add(1)
	default:
		wp.finish(job, nil, ErrQueueFull)
		return nil, ErrQueueFull
	}

	wp.logger.WithFields(logrus.Fields{
		"job_id": job.ID,
		"cnpj":   req.CNPJ,
		"system": req.System,
	}).Info("Job queued")
	return &snapshot, nil
}

// GetStats retorna estatísticas do pool
func (wp *WorkerPool) GetStats() models.QueueStats {
	return models.QueueStats{
		TotalJobs:     wp.totalJobs.Load(),
		CompletedJobs: wp.completedJobs.Load(),
		FailedJobs:    wp.failedJobs.Load(),
		ActiveWorkers: wp.activeWorkers.Load(),
		Workers:       len(wp.workers),
		Pending:       len(wp.jobQueue),
		Capacity:      cap(wp.jobQueue),
		Uptime:        time.Since(wp.startTime).Round(time.Second).String(),
	}
}

// finish grava o estado final do job
func (wp *WorkerPool) finish(job *models.Job, report *models.RunReport, err error) {
	now := time.Now()
	job.FinishedAt = &now
	job.Report = report
	if err != nil {
		job.Status = models.JobFailed
		job.Error = err.Error()
	} else {
		job.Status = models.JobCompleted
	}

	if saveErr := wp.store.Save(context.WithoutCancel(wp.ctx), job); saveErr != nil {
		wp.logger.WithError(saveErr).WithField("job_id", job.ID).Error("Failed to save job")
	}
}

// start inicia o worker
func (w *Worker) start() {
	defer w.pool.wg.Done()

	w.pool.logger.WithField("worker_id", w.ID).Debug("Worker started")

	for {
		select {
		case job, ok := <-w.pool.jobQueue:
			if !ok {
				w.pool.logger.WithField("worker_id", w.ID).Debug("Worker stopped")
				return
			}
			if w.pool.ctx.Err() != nil {
				w.pool.abandon(job)
				continue
			}
			w.processJob(job)

		case <-w.pool.ctx.Done():
			w.pool.logger.WithField("worker_id", w.ID).Debug("Worker stopped by context")
			return
		}
	}
}

// processJob processa um job
func (w *Worker) processJob(job *models.Job) {
	pool := w.pool
	pool.activeWorkers.Add(1)
	defer func() {
		pool.activeWorkers.Add(-1)
		w.jobsProcessed.Add(1)
	}()

	log := pool.logger.WithFields(logrus.Fields{
		"worker_id": w.ID,
		"job_id":    job.ID,
		"cnpj":      job.Request.CNPJ,
		"system":    job.Request.System,
	})

	started := time.Now()
	job.StartedAt = &started
	job.Status = models.JobRunning
	if err := pool.store.Save(pool.ctx, job); err != nil {
		log.WithError(err).Warn("Failed to save running job")
	}
	log.Info("Processing job")

	report, err := pool.runner.Run(pool.ctx, job.Request)
	pool.finish(job, report, err)

	fields := logrus.Fields{"duration": time.Since(started).Round(time.Millisecond)}
	if err != nil {
		pool.failedJobs.Add(1)
		log.WithFields(fields).WithError(err).Error("Job failed")
		return
	}
	pool.completedJobs.Add(1)
	log.WithFields(fields).Info("Job completed successfully")
}
