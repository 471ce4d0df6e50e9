package domain

import (
	"context"
	"errors"
)

var (
	ErrStateNotFound = errors.New("tracker state not found")
	ErrLastActivity  = errors.New("cannot delete the last activity in a period")
)

// StateRepository persists the per-user tracker blob. Implementations must
// fall back to a fresh default state when the stored blob cannot be
// decoded: corruption is recovered silently, never propagated.
type StateRepository interface {
	// Load retrieves the tracker state for a user, seeding a default
	// state on first access.
	Load(ctx context.Context, userID string) (*TrackerState, error)

	// Save persists the whole tracker state blob (last write wins).
	Save(ctx context.Context, userID string, state *TrackerState) error
}

// AchievementRepository persists the monotonic unlocked-set per user.
type AchievementRepository interface {
	Load(ctx context.Context, userID string) (AchievementState, error)
	Save(ctx context.Context, userID string, state AchievementState) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
