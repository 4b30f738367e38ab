package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Writer performs fire-and-forget snapshot saves for a single storage key.
// Enqueue never blocks the mutating caller. A pending snapshot that has not
// started saving yet is replaced by the next one, so rapid successive
// mutations coalesce and the latest full snapshot wins.
type Writer struct {
	kv  KV
	key string
	log *zap.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	next   []byte
	busy   bool
	closed bool
}

// NewWriter starts a background writer for the given storage key.
func NewWriter(kv KV, key string, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Writer{kv: kv, key: key, log: log}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Enqueue schedules blob as the next snapshot to persist, replacing any
// snapshot that is still waiting to be written.
func (w *Writer) Enqueue(blob []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.next = blob
	w.cond.Broadcast()
}

func (w *Writer) run() {
	w.mu.Lock()
	for {
		for w.next == nil && !w.closed {
			w.cond.Wait()
		}
		if w.next == nil && w.closed {
			w.mu.Unlock()
			return
		}

		blob := w.next
		w.next = nil
		w.busy = true
		w.mu.Unlock()

		// Failures are swallowed; callers never see persistence errors.
		if err := w.kv.Save(context.Background(), w.key, blob); err != nil {
			w.log.Warn("snapshot save failed", zap.String("key", w.key), zap.Error(err))
		}

		w.mu.Lock()
		w.busy = false
		w.cond.Broadcast()
	}
}

// Flush blocks until every enqueued snapshot has been written.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for w.next != nil || w.busy {
		w.cond.Wait()
	}
}

// Close drains pending work and stops the background goroutine.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	w.cond.Broadcast()
	for w.next != nil || w.busy {
		w.cond.Wait()
	}
}
