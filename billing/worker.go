package billing

import (
	"context"
	"errors"
	"github.com/sethvargo/go-retry"
	"log/slog"
	"sync"
	"time"
)

type WorkerOptions struct {
	Workers int
	Timeout time.Duration
	Retries uint64
	Backoff time.Duration
}

// MirrorWorker 背景同步地址到金流服務，失敗只記錄不回報給請求端
type MirrorWorker struct {
	queue    MirrorQueue
	provider Provider
	logger   *slog.Logger
	opts     WorkerOptions
	// 測試用，每個工作處理完後呼叫
	onDone func(job MirrorJob, err error)
}

func NewMirrorWorker(queue MirrorQueue, provider Provider, logger *slog.Logger, opts WorkerOptions) *MirrorWorker {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	return &MirrorWorker{
		queue:    queue,
		provider: provider,
		logger:   logger.With("module", "billing.mirror_worker"),
		opts:     opts,
	}
}

// Run 啟動所有worker，直到ctx取消才返回
func (w *MirrorWorker) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < w.opts.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.loop(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (w *MirrorWorker) loop(ctx context.Context, id int) {
	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.ErrorContext(ctx, "dequeue mirror job failed", "worker", id, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.opts.Backoff):
			}
			continue
		}

		err = w.Process(ctx, job)
		if w.onDone != nil {
			w.onDone(job, err)
		}
	}
}

// Process 帶重試與每次呼叫的逾時同步一筆地址
func (w *MirrorWorker) Process(ctx context.Context, job MirrorJob) error {
	attempts := 0
	backoff := retry.WithMaxRetries(w.opts.Retries, retry.NewExponential(w.opts.Backoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
		defer cancel()

		err := w.provider.UpdateCustomerAddress(attemptCtx, job.CustomerID, job.Address)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrPermanent) {
			return err
		}

		w.logger.WarnContext(ctx, "address mirror failed; retry scheduled",
			"job_id", job.ID,
			"user_id", job.UserID,
			"attempt", attempts,
			"error", err,
		)
		return retry.RetryableError(err)
	})
	if err != nil {
		w.logger.ErrorContext(ctx, "address mirror dropped",
			"outcome", "UPSTREAM_FAILURE",
			"job_id", job.ID,
			"user_id", job.UserID,
			"customer_id", job.CustomerID,
			"attempts", attempts,
			"error", err,
		)
		return err
	}

	w.logger.InfoContext(ctx, "address mirrored",
		"job_id", job.ID,
		"user_id", job.UserID,
		"attempts", attempts,
		"lag_ms", time.Since(job.EnqueuedAt).Milliseconds(),
	)
	return nil
}
