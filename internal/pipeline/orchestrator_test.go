package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/dgallion1/grafbreak/internal/config"
	"github.com/dgallion1/grafbreak/internal/stats"
)

func TestOrchestrator_ProcessesSubmittedJobs(t *testing.T) {
	cfg := config.Defaults()
	cfg.WorkerCount = 2
	o := NewOrchestrator(cfg, nil, stats.NewLayoutStats(time.Hour), discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("frog.txt", []byte(frogKing))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.GetJob(job.ID) != job {
		t.Fatal("expected job to be registered")
	}

	deadline := time.Now().Add(5 * time.Second)
	for !job.Snapshot().Status.Done() {
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish, status %q", job.Snapshot().Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if s := job.Snapshot().Status; s != StatusCompleted {
		t.Errorf("expected completed, got %q", s)
	}
	if o.Stats().Snapshot().Count != 1 {
		t.Errorf("expected one layout recorded")
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Defaults()
	cfg.MaxQueueSize = 1
	// Not started, so nothing drains the queue.
	o := NewOrchestrator(cfg, nil, nil, discardLogger())

	if err := o.Submit(NewJob("a.txt", []byte("a"))); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second := NewJob("b.txt", []byte("b"))
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if s := second.Snapshot().Status; s != StatusFailed {
		t.Errorf("expected rejected job failed, got %q", s)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected depth 1, got %d", o.QueueDepth())
	}
}
