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

	"github.com/momentumlab/momentum-engine/internal/core/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStateRepository is the single-file backend for deployments that
// do not run postgres. The tracker blob and the unlocked-achievement set
// are both stored as JSON text, since sqlite has no array type.
type SQLiteStateRepository struct {
	db *sqlx.DB
}

func NewSQLiteStateRepository(db *sqlx.DB) *SQLiteStateRepository {
	return &SQLiteStateRepository{db: db}
}

// OpenSQLite opens (and creates, if missing) the database file.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite failed: %w", err)
	}
	// The sqlite driver serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	return db, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tracker_states (
    user_id    TEXT PRIMARY KEY,
    state      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS achievement_states (
    user_id    TEXT PRIMARY KEY,
    unlocked   TEXT NOT NULL DEFAULT '[]',
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMP NOT NULL,
    updated_at    TIMESTAMP NOT NULL
);`

func (r *SQLiteStateRepository) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("repository: init sqlite schema failed: %w", err)
	}
	return nil
}

func (r *SQLiteStateRepository) Load(ctx context.Context, userID string) (*domain.TrackerState, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT state FROM tracker_states WHERE user_id = ?`, userID,
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

func (r *SQLiteStateRepository) Save(ctx context.Context, userID string, state *domain.TrackerState) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("repository: marshal tracker state failed: %w", err)
	}

	query := `
        INSERT INTO tracker_states (user_id, state, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT (user_id)
        DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: save tracker state failed: %w", err)
	}

	return nil
}

type SQLiteAchievementRepository struct {
	db *sqlx.DB
}

func NewSQLiteAchievementRepository(db *sqlx.DB) *SQLiteAchievementRepository {
	return &SQLiteAchievementRepository{db: db}
}

func (r *SQLiteAchievementRepository) Load(ctx context.Context, userID string) (domain.AchievementState, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT unlocked FROM achievement_states WHERE user_id = ?`, userID,
	).Scan(&raw)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make(domain.AchievementState), nil
		}
		return nil, fmt.Errorf("repository: load achievements failed: %w", err)
	}

	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		log.Printf("[STATE] Corrupted achievement set for user %s, resetting: %v", userID, err)
		return make(domain.AchievementState), nil
	}

	state := make(domain.AchievementState, len(keys))
	for _, k := range keys {
		state[k] = true
	}
	return state, nil
}

func (r *SQLiteAchievementRepository) Save(ctx context.Context, userID string, state domain.AchievementState) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	keys := make([]string, 0, len(state))
	for k, unlocked := range state {
		if unlocked {
			keys = append(keys, k)
		}
	}

	raw, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("repository: marshal achievements failed: %w", err)
	}

	query := `
        INSERT INTO achievement_states (user_id, unlocked, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT (user_id)
        DO UPDATE SET unlocked = excluded.unlocked, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: save achievements failed: %w", err)
	}

	return nil
}

// SQLiteUserRepository mirrors the postgres user repository for the
// single-file backend.
type SQLiteUserRepository struct {
	db *sqlx.DB
}

func NewSQLiteUserRepository(db *sqlx.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		// modernc.org/sqlite reports constraint violations by message,
		// not by a typed error code we can switch on.
		var existing string
		lookupErr := r.db.QueryRowContext(ctx,
			`SELECT id FROM users WHERE email = ?`, user.Email,
		).Scan(&existing)
		if lookupErr == nil {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	return nil
}

func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *SQLiteUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *SQLiteUserRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE %s = ?
	`, column)

	var user domain.User

	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: get user by %s failed: %w", column, err)
	}

	return &user, nil
}
