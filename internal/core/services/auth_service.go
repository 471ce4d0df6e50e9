package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

type AuthService struct {
	repo      domain.UserRepository
	stateRepo domain.StateRepository
}

func NewAuthService(repo domain.UserRepository, stateRepo domain.StateRepository) *AuthService {
	return &AuthService{
		repo:      repo,
		stateRepo: stateRepo,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Register creates the account and seeds its tracker state with the
// built-in activity catalogs.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	if err := s.stateRepo.Save(ctx, user.ID, domain.NewTrackerState()); err != nil {
		// Non-fatal: Load seeds a default state on first access anyway.
		log.Printf("auth service: failed to seed tracker state for %s: %v", user.ID, err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
