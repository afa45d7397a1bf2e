// Package viewstate holds the screen-local state of a fetch routine and the
// load/refresh transitions the presentation layer drives.
package viewstate

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Status is the tag of the fetch state.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// FetchFunc produces a fresh view or fails.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is a copy of the holder state at one point in time.
//
// View is set only when Status is StatusReady. LastGood keeps the most
// recent successful view so a failed refresh can still show it behind the
// error message.
type Snapshot[T any] struct {
	Status      Status `json:"status"`
	View        T      `json:"view"`
	LastGood    T      `json:"last_good,omitempty"`
	HasLastGood bool   `json:"has_last_good"`
	Error       string `json:"error,omitempty"`
	Refreshing  bool   `json:"refreshing"`
}

// Option configures a Holder.
type Option[T any] func(*Holder[T])

// WithLogger sets the logger. The default discards everything.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(h *Holder[T]) { h.logger = logger }
}

// WithOnChange registers fn to be called after state transitions. Calls are
// serialized and never go backwards: a snapshot older than one already
// delivered is dropped, so the last call always carries the latest state.
func WithOnChange[T any](fn func(Snapshot[T])) Option[T] {
	return func(h *Holder[T]) { h.onChange = fn }
}

// Holder owns the state of one screen. The zero value is not usable; build
// one with New.
type Holder[T any] struct {
	fetch    FetchFunc[T]
	logger   *zap.Logger
	onChange func(Snapshot[T])

	base   context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      Snapshot[T]
	seq        uint64
	refreshing int
	closed     bool

	notifyMu  sync.Mutex
	delivered uint64
}

// New creates a Holder in the loading state.
func New[T any](fetch FetchFunc[T], opts ...Option[T]) *Holder[T] {
	base, cancel := context.WithCancel(context.Background())
	h := &Holder[T]{
		fetch:  fetch,
		logger: zap.NewNop(),
		base:   base,
		cancel: cancel,
		state:  Snapshot[T]{Status: StatusLoading},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Snapshot returns the current state.
func (h *Holder[T]) Snapshot() Snapshot[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Refreshing reports whether a refresh is in flight.
func (h *Holder[T]) Refreshing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Refreshing
}

// Load moves to the loading state and runs the fetch. It is meant to be
// called once when the screen is activated.
func (h *Holder[T]) Load(ctx context.Context) Snapshot[T] {
	if !h.update(func(s *Snapshot[T]) bool {
		var zero T
		s.Status = StatusLoading
		s.View = zero
		s.Error = ""
		return true
	}) {
		return h.Snapshot()
	}
	view, err := h.run(ctx)
	h.complete(view, err, false)
	return h.Snapshot()
}

// Refresh runs the fetch while the current content stays visible. The
// result of whichever call completes last is the one that remains.
func (h *Holder[T]) Refresh(ctx context.Context) Snapshot[T] {
	snapshot, _ := h.refresh(ctx, false)
	return snapshot
}

// TryRefresh behaves like Refresh unless a refresh is already in flight, in
// which case it returns the current state and false without fetching.
func (h *Holder[T]) TryRefresh(ctx context.Context) (Snapshot[T], bool) {
	return h.refresh(ctx, true)
}

func (h *Holder[T]) refresh(ctx context.Context, exclusive bool) (Snapshot[T], bool) {
	if !h.update(func(s *Snapshot[T]) bool {
		if exclusive && h.refreshing > 0 {
			return false
		}
		h.refreshing++
		s.Refreshing = true
		return true
	}) {
		return h.Snapshot(), false
	}
	view, err := h.run(ctx)
	h.complete(view, err, true)
	return h.Snapshot(), true
}

// Close cancels in-flight fetches. Results that arrive afterwards are
// dropped and later Load or Refresh calls do nothing.
func (h *Holder[T]) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.cancel()
}

func (h *Holder[T]) run(ctx context.Context) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(h.base, cancel)
	defer stop()
	return h.fetch(ctx)
}

func (h *Holder[T]) complete(view T, err error, refresh bool) {
	applied := h.update(func(s *Snapshot[T]) bool {
		if refresh {
			h.refreshing--
			s.Refreshing = h.refreshing > 0
		}
		if err != nil {
			var zero T
			s.Status = StatusError
			s.View = zero
			s.Error = err.Error()
			return true
		}
		s.Status = StatusReady
		s.View = view
		s.LastGood = view
		s.HasLastGood = true
		s.Error = ""
		return true
	})
	if !applied {
		h.logger.Debug("discarding result after close", zap.Error(err))
		return
	}
	if err != nil {
		h.logger.Warn("fetch failed", zap.Bool("refresh", refresh), zap.Error(err))
	}
}

// update applies fn under the lock unless the holder is closed or fn
// declines the change, and then notifies the observer.
func (h *Holder[T]) update(fn func(s *Snapshot[T]) bool) bool {
	h.mu.Lock()
	if h.closed || !fn(&h.state) {
		h.mu.Unlock()
		return false
	}
	h.seq++
	seq, snapshot := h.seq, h.state
	h.mu.Unlock()

	h.notify(seq, snapshot)
	return true
}

func (h *Holder[T]) notify(seq uint64, snapshot Snapshot[T]) {
	if h.onChange == nil {
		return
	}
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()
	if seq <= h.delivered {
		return
	}
	h.delivered = seq
	h.onChange(snapshot)
}
