package models

import "time"

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp time.Time              `json:"timestamp" example:"2026-01-15T10:30:00Z"`
	Version   string                 `json:"version" example:"1.0.0"`
	Services  map[string]ServiceInfo `json:"services"`
	Uptime    string                 `json:"uptime" example:"2h30m45s"`
}

// ServiceInfo represents individual service health
type ServiceInfo struct {
	Status    string    `json:"status" example:"healthy"`
	LastCheck time.Time `json:"last_check" example:"2026-01-15T10:30:00Z"`
	Error     string    `json:"error,omitempty"`
}

// QueueStats descreve a fila de pedidos do robô
type QueueStats struct {
	TotalJobs     int64  `json:"total_jobs"`
	CompletedJobs int64  `json:"completed_jobs"`
	FailedJobs    int64  `json:"failed_jobs"`
	ActiveWorkers int32  `json:"active_workers"`
	Workers       int    `json:"workers"`
	Pending       int    `json:"pending"`
	Capacity      int    `json:"capacity"`
	Uptime        string `json:"uptime"`
}
