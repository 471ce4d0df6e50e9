package repository

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

var _ domain.StateRepository = (*WriteBehindStateRepository)(nil)

// WriteBehindStateRepository absorbs save bursts. A user editing several
// activities in quick succession produces one backend write per quiet
// period instead of one per keystroke. Loads read the pending blob when
// one exists, so callers always see their own writes. Pending blobs are
// deep copies: the flush timer goroutine and in-flight request handlers
// must never share map storage.
type WriteBehindStateRepository struct {
	next  domain.StateRepository
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*domain.TrackerState
	timers  map[string]*time.Timer
	closed  bool
}

func NewWriteBehindStateRepository(next domain.StateRepository, delay time.Duration) *WriteBehindStateRepository {
	return &WriteBehindStateRepository{
		next:    next,
		delay:   delay,
		pending: make(map[string]*domain.TrackerState),
		timers:  make(map[string]*time.Timer),
	}
}

func (r *WriteBehindStateRepository) Load(ctx context.Context, userID string) (*domain.TrackerState, error) {
	r.mu.Lock()
	state, ok := r.pending[userID]
	r.mu.Unlock()

	if ok {
		return cloneState(state), nil
	}
	return r.next.Load(ctx, userID)
}

func (r *WriteBehindStateRepository) Save(ctx context.Context, userID string, state *domain.TrackerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.next.Save(ctx, userID, state)
	}

	r.pending[userID] = cloneState(state)

	if timer, ok := r.timers[userID]; ok {
		timer.Reset(r.delay)
		return nil
	}

	r.timers[userID] = time.AfterFunc(r.delay, func() {
		r.flushUser(userID)
	})
	return nil
}

func (r *WriteBehindStateRepository) flushUser(userID string) {
	r.mu.Lock()
	state, ok := r.pending[userID]
	delete(r.pending, userID)
	delete(r.timers, userID)
	r.mu.Unlock()

	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.next.Save(ctx, userID, state); err != nil {
		log.Printf("[STATE] Deferred save failed for user %s: %v", userID, err)
	}
}

// Flush writes every pending blob immediately. Called on shutdown.
func (r *WriteBehindStateRepository) Flush(ctx context.Context) error {
	r.mu.Lock()
	states := r.pending
	r.pending = make(map[string]*domain.TrackerState)
	for id, timer := range r.timers {
		timer.Stop()
		delete(r.timers, id)
	}
	r.mu.Unlock()

	var firstErr error
	for id, state := range states {
		if err := r.next.Save(ctx, id, state); err != nil {
			log.Printf("[STATE] Flush failed for user %s: %v", id, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close flushes and switches the repository to pass-through saves.
func (r *WriteBehindStateRepository) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	return r.Flush(ctx)
}
