package savedstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const defaultSaveTimeout = 5 * time.Second

// Writer persists submitted bundles in the background. Bundles submitted
// faster than they can be written are coalesced; only the latest one is kept.
type Writer struct {
	store   Store
	logger  *slog.Logger
	timeout time.Duration

	mu         sync.Mutex
	pending    Bundle
	hasPending bool
	cancel     context.CancelFunc
	running    bool
	wake       chan struct{}
	wg         sync.WaitGroup

	// writeMu keeps writes ordered between the loop and Flush.
	writeMu sync.Mutex
}

// NewWriter creates a writer for store. A nil logger discards log output.
func NewWriter(store Store, logger *slog.Logger) (*Writer, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{
		store:   store,
		logger:  logger,
		timeout: defaultSaveTimeout,
		wake:    make(chan struct{}, 1),
	}, nil
}

// Start begins the background write loop.
func (w *Writer) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("writer already running")
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	go w.loop(ctx)
	return nil
}

// Submit queues b for persistence without blocking the caller.
func (w *Writer) Submit(b Bundle) {
	w.mu.Lock()
	w.pending = b.Clone()
	w.hasPending = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Stop halts the loop and writes whatever is still pending.
func (w *Writer) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.running = false
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()

	ctx, done := context.WithTimeout(context.Background(), w.timeout)
	defer done()
	if err := w.Flush(ctx); err != nil {
		w.logger.Error("final state flush failed", "error", err)
	}
}

// Flush writes the pending bundle, if any, synchronously.
func (w *Writer) Flush(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	b, ok := w.pending, w.hasPending
	w.pending, w.hasPending = nil, false
	w.mu.Unlock()

	if !ok {
		return nil
	}
	if err := w.store.Save(ctx, b); err != nil {
		// Keep the bundle for the next attempt unless a newer one arrived.
		w.mu.Lock()
		if !w.hasPending {
			w.pending, w.hasPending = b, true
		}
		w.mu.Unlock()
		return fmt.Errorf("persist state: %w", err)
	}
	w.logger.Debug("state saved", "slots", len(b))
	return nil
}

func (w *Writer) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
			saveCtx, cancel := context.WithTimeout(ctx, w.timeout)
			if err := w.Flush(saveCtx); err != nil {
				w.logger.Warn("state save failed", "error", err)
			}
			cancel()
		}
	}
}
