package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/momentumlab/momentum-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStateRepository struct {
	db *sqlx.DB
}

func NewPostgresStateRepository(db *sqlx.DB) *PostgresStateRepository {
	return &PostgresStateRepository{db: db}
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS tracker_states (
    user_id    TEXT PRIMARY KEY,
    state      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS achievement_states (
    user_id    TEXT PRIMARY KEY,
    unlocked   TEXT[] NOT NULL DEFAULT '{}',
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);`

// InitSchema creates the tables when missing.
func (r *PostgresStateRepository) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("repository: init schema failed: %w", err)
	}
	return nil
}

// Load reads the tracker blob, seeding a default state on first access.
// A blob that fails to decode is replaced by a fresh default state: the
// corruption is logged and recovered, never propagated.
func (r *PostgresStateRepository) Load(ctx context.Context, userID string) (*domain.TrackerState, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT state FROM tracker_states WHERE user_id = $1`, userID,
	).Scan(&raw)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewTrackerState(), nil
		}
		return nil, fmt.Errorf("repository: load tracker state failed: %w", err)
	}

	var state domain.TrackerState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("[STATE] Corrupted blob for user %s, falling back to defaults: %v", userID, err)
		return domain.NewTrackerState(), nil
	}

	state.Normalize()
	return &state, nil
}

func (r *PostgresStateRepository) Save(ctx context.Context, userID string, state *domain.TrackerState) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("repository: marshal tracker state failed: %w", err)
	}

	query := `
        INSERT INTO tracker_states (user_id, state, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id)
        DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: save tracker state failed: %w", err)
	}

	return nil
}

// PostgresAchievementRepository stores the unlocked-set as a text array.
type PostgresAchievementRepository struct {
	db *sqlx.DB
}

func NewPostgresAchievementRepository(db *sqlx.DB) *PostgresAchievementRepository {
	return &PostgresAchievementRepository{db: db}
}

func (r *PostgresAchievementRepository) Load(ctx context.Context, userID string) (domain.AchievementState, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var keys []string
	err := r.db.QueryRowContext(ctx,
		`SELECT unlocked FROM achievement_states WHERE user_id = $1`, userID,
	).Scan(pq.Array(&keys))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make(domain.AchievementState), nil
		}
		return nil, fmt.Errorf("repository: load achievements failed: %w", err)
	}

	state := make(domain.AchievementState, len(keys))
	for _, k := range keys {
		state[k] = true
	}
	return state, nil
}

func (r *PostgresAchievementRepository) Save(ctx context.Context, userID string, state domain.AchievementState) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	keys := make([]string, 0, len(state))
	for k, unlocked := range state {
		if unlocked {
			keys = append(keys, k)
		}
	}

	query := `
        INSERT INTO achievement_states (user_id, unlocked, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id)
        DO UPDATE SET unlocked = EXCLUDED.unlocked, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, pq.Array(keys), time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: save achievements failed: %w", err)
	}

	return nil
}
