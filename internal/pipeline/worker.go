package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/grafbreak/internal/doctree"
	"github.com/dgallion1/grafbreak/internal/linebreak"
	"github.com/dgallion1/grafbreak/internal/paragraph"
	"github.com/dgallion1/grafbreak/internal/parser"
	"github.com/dgallion1/grafbreak/internal/source"
	"github.com/dgallion1/grafbreak/internal/stats"
)

// Fetcher downloads the document behind a URL job.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*source.Document, error)
}

// WorkerConfig holds the per-document settings a Worker applies.
type WorkerConfig struct {
	Break              linebreak.Options
	Paragraphs         paragraph.Config
	Parser             parser.Options
	MaxConcurrentBreak int
}

// Worker processes a single document job.
type Worker struct {
	fetcher Fetcher
	stats   *stats.LayoutStats
	log     *slog.Logger
	cfg     WorkerConfig
	breaker *linebreak.Breaker

	backoff func(attempt int) time.Duration
}

// NewWorker builds a worker. fetcher and st may be nil when URL jobs and
// latency tracking are not needed.
func NewWorker(fetcher Fetcher, st *stats.LayoutStats, log *slog.Logger, cfg WorkerConfig) *Worker {
	if cfg.MaxConcurrentBreak <= 0 {
		cfg.MaxConcurrentBreak = 1
	}
	return &Worker{
		fetcher: fetcher,
		stats:   st,
		log:     log,
		cfg:     cfg,
		breaker: linebreak.New(cfg.Break),
		backoff: Backoff,
	}
}

// Process runs fetch, parse, collect and break for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	// Phase 1: Fetch
	if job.SourceURL != "" && len(job.FileData()) == 0 {
		job.SetStatus(StatusFetching, "fetching")
		doc, err := w.fetch(ctx, log, job.SourceURL)
		if err != nil {
			log.Error("fetch failed", "url", job.SourceURL, "error", err)
			job.AddError(fmt.Sprintf("fetch: %s", err))
			job.SetStatus(StatusFailed, "fetching")
			return
		}
		job.SetDocument(doc.Filename, doc.Data)
		log.Info("fetched document", "filename", doc.Filename, "bytes", len(doc.Data))
	}

	// Phase 2: Parse
	job.SetStatus(StatusParsing, "parsing")
	data := job.FileData()
	tree, err := w.Parse(job.Filename, data)
	if err != nil {
		log.Error("parse failed", "filename", job.Filename, "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.setDocInfo(tree.Title, ContentHashHex(data))
	job.ReleaseFileData()

	paras := paragraph.Collect(tree, w.cfg.Paragraphs)
	job.SetTotalParagraphs(len(paras))
	log.Info("collected paragraphs", "paragraphs", len(paras))
	if len(paras) == 0 {
		job.AddError("no paragraphs found")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 3: Break
	job.SetStatus(StatusBreaking, "breaking")
	results := w.BreakAll(ctx, paras, job.RecordResult)

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
			job.AddError(fmt.Sprintf("paragraph %d: %s", r.Index, r.Error))
		}
	}
	log.Info("layout complete", "paragraphs", len(results), "failed", failed)

	switch {
	case failed == 0:
		job.SetStatus(StatusCompleted, "done")
	case failed < len(results):
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusFailed, "breaking")
	}
}

// Parse selects a parser by filename and builds the document tree.
func (w *Worker) Parse(filename string, data []byte) (*doctree.DocTree, error) {
	p, err := parser.ForFileWith(filename, w.cfg.Parser)
	if err != nil {
		return nil, err
	}
	return p.Parse(bytes.NewReader(data), filename)
}

// BreakAll lays out every paragraph with bounded concurrency and returns the
// results in document order. onDone, if set, is called as each one finishes.
// Paragraphs not started before ctx is cancelled fail with the context error.
func (w *Worker) BreakAll(ctx context.Context, paras []doctree.Paragraph, onDone func(ParagraphResult)) []ParagraphResult {
	results := make([]ParagraphResult, len(paras))
	sem := make(chan struct{}, w.cfg.MaxConcurrentBreak)
	var wg sync.WaitGroup

	finish := func(i int, r ParagraphResult) {
		results[i] = r
		if onDone != nil {
			onDone(r)
		}
	}

	for i, p := range paras {
		if err := ctx.Err(); err != nil {
			finish(i, failedResult(p, err))
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			finish(i, failedResult(p, ctx.Err()))
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			finish(i, w.BreakOne(p))
		}()
	}
	wg.Wait()
	return results
}

// BreakOne lays out a single paragraph and records its latency.
func (w *Worker) BreakOne(p doctree.Paragraph) ParagraphResult {
	start := time.Now()
	res, err := w.breaker.Layout(p.Text)
	elapsed := time.Since(start)
	if err != nil {
		if w.stats != nil {
			w.stats.RecordFailure()
		}
		return failedResult(p, err)
	}
	if w.stats != nil {
		w.stats.Record(elapsed, len(res.Lines))
	}
	return ParagraphResult{
		Index:      p.Index,
		Breadcrumb: p.Breadcrumb,
		Page:       p.Page,
		Text:       p.Text,
		Annotated:  res.Annotated,
		Positions:  res.Positions,
		Lines:      res.Lines,
		Demerits:   res.Demerits,
	}
}

func (w *Worker) fetch(ctx context.Context, log *slog.Logger, rawURL string) (*source.Document, error) {
	if w.fetcher == nil {
		return nil, errors.New("no fetcher configured")
	}
	var lastErr error
	for attempt := range MaxRetries {
		doc, err := w.fetcher.Fetch(ctx, rawURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == MaxRetries-1 {
			break
		}
		log.Warn("retryable fetch error", "attempt", attempt, "error", err)
		select {
		case <-time.After(w.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func failedResult(p doctree.Paragraph, err error) ParagraphResult {
	return ParagraphResult{
		Index:      p.Index,
		Breadcrumb: p.Breadcrumb,
		Page:       p.Page,
		Text:       p.Text,
		Error:      err.Error(),
		ErrorKind:  ErrorKind(err),
	}
}

// ErrorKind names the layout failure for API clients.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, linebreak.ErrNoFeasibleBreak):
		return "no_feasible_break"
	case errors.Is(err, linebreak.ErrUnrecognizedCharacter):
		return "unrecognized_character"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
