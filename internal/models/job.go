package models

import (
	"time"

	"github.com/nexconsult/receitanet-bx/internal/popup"
)

// JobStatus é o estado de um pedido na fila
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Finished reports whether the job reached a terminal state
func (s JobStatus) Finished() bool {
	return s == JobCompleted || s == JobFailed
}

// RunReport resume uma execução do robô
type RunReport struct {
	System    string          `json:"sistema"`
	CNPJ      string          `json:"cnpj"`
	StartDate string          `json:"datainicial"`
	EndDate   string          `json:"datafinal"`
	Outcomes  []popup.Outcome `json:"outcomes"`
	Files     []string        `json:"files"`
	Elapsed   string          `json:"elapsed,omitempty"`
}

// Registered returns the outcomes that led to a download
func (r *RunReport) Registered() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Registered() {
			n++
		}
	}
	return n
}

// Job acompanha um pedido de download enviado pela API
// @Description Pedido de download e seu resultado
type Job struct {
	ID         string          `json:"id" example:"0b5d6f3e-8c1a-4b7e-9a55-2f0d7b1c9e11"`
	Request    DownloadRequest `json:"request"`
	Status     JobStatus       `json:"status" example:"queued"`
	Report     *RunReport      `json:"report,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}
