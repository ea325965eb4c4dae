package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/grafbreak/internal/config"
	"github.com/dgallion1/grafbreak/internal/paragraph"
	"github.com/dgallion1/grafbreak/internal/parser"
	"github.com/dgallion1/grafbreak/internal/stats"
)

// Orchestrator manages the document layout pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	fetcher Fetcher
	stats   *stats.LayoutStats
	log     *slog.Logger
	cfg     config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, fetcher Fetcher, st *stats.LayoutStats, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		fetcher: fetcher,
		stats:   st,
		log:     log,
		cfg:     cfg,
	}
}

// WorkerConfigFrom derives worker settings from the service configuration.
func WorkerConfigFrom(cfg config.Config) WorkerConfig {
	return WorkerConfig{
		Break:              cfg.BreakOptions(),
		Paragraphs:         paragraph.Config{MinRunes: cfg.MinParagraphRunes},
		Parser:             parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		MaxConcurrentBreak: cfg.MaxConcurrentBreak,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	wcfg := WorkerConfigFrom(o.cfg)
	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.fetcher, o.stats, o.log, wcfg)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if n := o.jobs.Cleanup(); n > 0 {
					o.log.Info("expired jobs removed", "count", n)
				}
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.AddError("queue full")
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the layout latency tracker shared with the workers.
func (o *Orchestrator) Stats() *stats.LayoutStats {
	return o.stats
}
