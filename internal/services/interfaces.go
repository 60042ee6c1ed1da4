package services

import (
	"context"

	"github.com/nexconsult/receitanet-bx/internal/models"
)

// JobStoreInterface defines the interface for the job store
type JobStoreInterface interface {
	// Save stores job, replacing any previous state
	Save(ctx context.Context, job *models.Job) error

	// Get retrieves a job by id
	Get(ctx context.Context, id string) (*models.Job, error)

	// Delete removes a job
	Delete(ctx context.Context, id string) error

	// Health returns store health status
	Health() map[string]interface{}
}

// QueueInterface defines the interface for the download queue
type QueueInterface interface {
	// Submit enqueues req and returns the created job
	Submit(ctx context.Context, req models.DownloadRequest) (*models.Job, error)

	// GetStats returns queue statistics
	GetStats() models.QueueStats
}
