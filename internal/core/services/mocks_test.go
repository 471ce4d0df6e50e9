package services_test

import (
	"context"
	"sync"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

// stubStateRepo is a map-backed state repository for service tests. It
// hands out the stored pointer directly, matching the in-memory adapter's
// load-mutate-save contract closely enough for single-goroutine tests.
type stubStateRepo struct {
	mu      sync.Mutex
	states  map[string]*domain.TrackerState
	loadErr error
	saveErr error
	saves   int
}

func newStubStateRepo() *stubStateRepo {
	return &stubStateRepo{states: make(map[string]*domain.TrackerState)}
}

func (r *stubStateRepo) Load(ctx context.Context, userID string) (*domain.TrackerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loadErr != nil {
		return nil, r.loadErr
	}

	state, ok := r.states[userID]
	if !ok {
		state = domain.NewTrackerState()
		r.states[userID] = state
	}
	return state, nil
}

func (r *stubStateRepo) Save(ctx context.Context, userID string, state *domain.TrackerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}

	r.saves++
	r.states[userID] = state
	return nil
}

type stubAchievementRepo struct {
	mu     sync.Mutex
	states map[string]domain.AchievementState
	saves  int
}

func newStubAchievementRepo() *stubAchievementRepo {
	return &stubAchievementRepo{states: make(map[string]domain.AchievementState)}
}

func (r *stubAchievementRepo) Load(ctx context.Context, userID string) (domain.AchievementState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(domain.AchievementState, len(r.states[userID]))
	for k, v := range r.states[userID] {
		out[k] = v
	}
	return out, nil
}

func (r *stubAchievementRepo) Save(ctx context.Context, userID string, state domain.AchievementState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saves++
	r.states[userID] = state
	return nil
}
