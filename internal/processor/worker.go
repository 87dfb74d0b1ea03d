// Package processor runs moderation in the background so submission
// requests return immediately.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/careerpath/advisor/internal/config"
	"github.com/careerpath/advisor/internal/domain"
	"github.com/careerpath/advisor/internal/logging"
	"github.com/careerpath/advisor/internal/mlclient"
	"github.com/careerpath/advisor/internal/telemetry"
)

// Moderator runs the full moderation pass on raw submission text.
type Moderator interface {
	Validate(ctx context.Context, rawText string) domain.Verdict
}

// SubmissionStore records moderation outcomes.
type SubmissionStore interface {
	ApplyVerdict(ctx context.Context, id int64, verdict domain.Verdict, embedding []float32) error
}

// job is one queued submission.
type job struct {
	id   int64
	text string
}

// Worker is a fixed-size pool draining the moderation queue. Enqueue never
// blocks the HTTP path: a full queue drops the submission, which stays
// pending until an operator reviews it.
type Worker struct {
	moderator Moderator
	store     SubmissionStore
	embedder  mlclient.Embedder
	telemetry *telemetry.Provider
	logger    logging.Logger
	queue     chan job
	workers   int
	wg        sync.WaitGroup
}

// NewWorker creates a moderation worker pool.
func NewWorker(
	logger logging.Logger,
	moderator Moderator,
	store SubmissionStore,
	embedder mlclient.Embedder,
	provider *telemetry.Provider,
	cfg config.ModerationConfig,
) *Worker {
	return &Worker{
		moderator: moderator,
		store:     store,
		embedder:  embedder,
		telemetry: provider,
		logger:    logger,
		queue:     make(chan job, cfg.QueueSize),
		workers:   cfg.Workers,
	}
}

// Start launches the worker goroutines. They drain the queue until Stop
// closes it or ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.telemetry.SetActiveWorkers(w.workers)
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
	w.logger.Info("moderation workers started",
		logging.Int("workers", w.workers),
		logging.Int("queue_size", cap(w.queue)),
	)
}

// Stop closes the queue and waits for in-flight moderation to finish.
// No Enqueue call may race with or follow Stop.
func (w *Worker) Stop() {
	close(w.queue)
	w.wg.Wait()
	w.telemetry.SetActiveWorkers(0)
	w.logger.Info("moderation workers stopped")
}

// Enqueue hands a submission to the pool without blocking. It reports
// whether the submission was accepted.
func (w *Worker) Enqueue(id int64, text string) bool {
	select {
	case w.queue <- job{id: id, text: text}:
		w.telemetry.SetQueueDepth(len(w.queue))
		return true
	default:
		w.telemetry.IncrementWorkDropped()
		w.logger.Warn("moderation queue full, submission left pending",
			logging.Int64("submission_id", id),
		)
		return false
	}
}

func (w *Worker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	w.logger.Debug("moderation worker started", logging.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-w.queue:
			if !ok {
				return
			}
			w.process(ctx, j)
			w.telemetry.SetQueueDepth(len(w.queue))
		}
	}
}

// process moderates one submission. Failures here never surface to the
// submitter; the row just stays pending.
func (w *Worker) process(ctx context.Context, j job) {
	start := time.Now()

	verdict := w.moderator.Validate(ctx, j.text)

	var embedding []float32
	if !verdict.Flagged() {
		var err error
		embedding, err = w.embedder.Embed(ctx, verdict.CleanedText)
		if err != nil {
			// Without an embedding the row cannot be published; leave it
			// pending for manual approval, which re-embeds.
			w.logger.Error("failed to embed approved submission",
				logging.Int64("submission_id", j.id),
				logging.Error(err),
			)
			return
		}
	}

	if err := w.store.ApplyVerdict(ctx, j.id, verdict, embedding); err != nil {
		w.logger.Error("failed to record moderation verdict",
			logging.Int64("submission_id", j.id),
			logging.Error(err),
		)
		return
	}

	w.telemetry.RecordVerdict(ctx, verdict.Status, verdict.Severity, time.Since(start))

	w.logger.Debug("submission moderated",
		logging.Int64("submission_id", j.id),
		logging.String("status", verdict.Status),
		logging.String("severity", verdict.Severity),
	)
}
