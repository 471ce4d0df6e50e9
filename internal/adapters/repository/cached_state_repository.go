package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

var _ domain.StateRepository = (*CachedStateRepository)(nil)

// CachedStateRepository fronts a state repository with redis. Loads hit
// the cache first; saves write through and refresh the cached blob so a
// follow-up load after a log entry never sees stale streak data.
type CachedStateRepository struct {
	next  domain.StateRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedStateRepository(next domain.StateRepository, cache *redis.Client) *CachedStateRepository {
	return &CachedStateRepository{
		next:  next,
		cache: cache,
		ttl:   30 * time.Minute,
	}
}

func (r *CachedStateRepository) cacheKey(userID string) string {
	return fmt.Sprintf("state:%s", userID)
}

func (r *CachedStateRepository) Load(ctx context.Context, userID string) (*domain.TrackerState, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var state domain.TrackerState
		if err := json.Unmarshal([]byte(val), &state); err == nil {
			state.Normalize()
			return &state, nil
		}

		log.Printf("[CACHE] Corrupted state for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	state, err := r.next.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.fill(ctx, key, state)
	return state, nil
}

func (r *CachedStateRepository) Save(ctx context.Context, userID string, state *domain.TrackerState) error {
	if err := r.next.Save(ctx, userID, state); err != nil {
		return err
	}

	r.fill(ctx, r.cacheKey(userID), state)
	return nil
}

func (r *CachedStateRepository) fill(ctx context.Context, key string, state *domain.TrackerState) {
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
		log.Printf("[CACHE] Redis set error: %v", setErr)
	}
}
