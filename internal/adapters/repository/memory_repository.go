package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

// InMemoryStateRepository keeps tracker blobs in a map. Used by tests and
// as the zero-config backend. Load hands out deep copies so a failed
// mutation never leaks into the stored state.
type InMemoryStateRepository struct {
	store map[string]*domain.TrackerState

	mu sync.RWMutex
}

func NewInMemoryStateRepository() *InMemoryStateRepository {
	return &InMemoryStateRepository{
		store: make(map[string]*domain.TrackerState),
	}
}

func cloneState(state *domain.TrackerState) *domain.TrackerState {
	raw, err := json.Marshal(state)
	if err != nil {
		return domain.NewTrackerState()
	}

	var out domain.TrackerState
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.NewTrackerState()
	}
	out.Normalize()
	return &out
}

func (r *InMemoryStateRepository) Load(ctx context.Context, userID string) (*domain.TrackerState, error) {
	r.mu.RLock()
	state, ok := r.store[userID]
	r.mu.RUnlock()

	if !ok {
		seeded := domain.NewTrackerState()
		r.mu.Lock()
		r.store[userID] = seeded
		r.mu.Unlock()
		return cloneState(seeded), nil
	}

	return cloneState(state), nil
}

func (r *InMemoryStateRepository) Save(ctx context.Context, userID string, state *domain.TrackerState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[userID] = cloneState(state)
	return nil
}

type InMemoryAchievementRepository struct {
	store map[string]domain.AchievementState

	mu sync.RWMutex
}

func NewInMemoryAchievementRepository() *InMemoryAchievementRepository {
	return &InMemoryAchievementRepository{
		store: make(map[string]domain.AchievementState),
	}
}

func (r *InMemoryAchievementRepository) Load(ctx context.Context, userID string) (domain.AchievementState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(domain.AchievementState, len(r.store[userID]))
	for k, v := range r.store[userID] {
		out[k] = v
	}
	return out, nil
}

func (r *InMemoryAchievementRepository) Save(ctx context.Context, userID string, state domain.AchievementState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make(domain.AchievementState, len(state))
	for k, v := range state {
		copied[k] = v
	}
	r.store[userID] = copied
	return nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
