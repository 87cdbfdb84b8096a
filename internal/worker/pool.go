// Package worker provides background processing for history persistence,
// so a slow store never holds up a generation response.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

const saveTimeout = 10 * time.Second

// Job is one pending history write.
type Job struct {
	Email  string
	Result domain.VibeResult
}

// Pool manages background workers draining the history write queue.
type Pool struct {
	history ports.HistoryStore
	logger  *log.Logger
	jobs    chan Job
	wg      sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(history ports.HistoryStore, queueSize int, logger *log.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pool{history: history, logger: logger, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop drains the queue and waits for workers to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// SubmitSave queues a history write without blocking. If the queue is full
// the write is dropped; history is best-effort by contract.
func (p *Pool) SubmitSave(email string, result domain.VibeResult) {
	select {
	case p.jobs <- Job{Email: email, Result: result}:
	default:
		p.logger.Warn("history queue full, dropping save", "email", email)
	}
}

func (p *Pool) processJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := p.history.SaveVibe(ctx, job.Email, job.Result); err != nil {
		p.logger.Warn("failed to persist vibe history", "email", job.Email, "err", err)
		return
	}
	p.logger.Debug("vibe history persisted", "email", job.Email, "tracks", len(job.Result.Tracks))
}
