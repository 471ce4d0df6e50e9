package services

import (
	"context"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

// CatalogService owns activity-definition mutations for the selected
// period: create, edit-in-place, cascading delete and display reorder.
type CatalogService struct {
	stateRepo domain.StateRepository
}

func NewCatalogService(stateRepo domain.StateRepository) *CatalogService {
	return &CatalogService{stateRepo: stateRepo}
}

type CreateActivityInput struct {
	UserID         string
	Name           string
	Icon           string
	Color          string
	Unit           string
	CompletionType string
	Target         float64
}

type UpdateActivityInput struct {
	UserID         string
	Key            string
	Name           string
	Icon           string
	Color          string
	Unit           string
	CompletionType string
	Target         float64
}

// List returns the current period's activities in display order.
func (s *CatalogService) List(ctx context.Context, userID string) ([]*domain.Activity, error) {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog := state.Activities()
	out := make([]*domain.Activity, 0, len(catalog))
	for _, key := range state.OrderedKeys(state.CurrentPeriod) {
		out = append(out, catalog[key])
	}
	return out, nil
}

func (s *CatalogService) Create(ctx context.Context, input CreateActivityInput) (*domain.Activity, error) {
	state, err := s.stateRepo.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	activity, err := domain.NewActivity(
		domain.NextActivityKey(),
		input.Name,
		input.Icon,
		input.Color,
		input.Unit,
		input.CompletionType,
		input.Target,
	)
	if err != nil {
		return nil, err
	}

	state.Activities()[activity.Key] = activity
	state.DisplayOrder[state.CurrentPeriod] = append(state.DisplayOrder[state.CurrentPeriod], activity.Key)

	if err := s.stateRepo.Save(ctx, input.UserID, state); err != nil {
		return nil, err
	}

	return activity, nil
}

// Update edits an activity in place under the same key. Historical log
// snapshots keep the target they were saved with.
func (s *CatalogService) Update(ctx context.Context, input UpdateActivityInput) (*domain.Activity, error) {
	state, err := s.stateRepo.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	activity, ok := state.Activities()[input.Key]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}

	if err := activity.Update(input.Name, input.Icon, input.Color, input.Unit, input.CompletionType, input.Target); err != nil {
		return nil, err
	}

	if err := s.stateRepo.Save(ctx, input.UserID, state); err != nil {
		return nil, err
	}

	return activity, nil
}

// Delete removes an activity and cascades the removal of its key from
// every date's log map. Deleting the last activity of a period is refused.
func (s *CatalogService) Delete(ctx context.Context, userID, key string) error {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	catalog := state.Activities()
	if _, ok := catalog[key]; !ok {
		return domain.ErrActivityNotFound
	}
	if len(catalog) <= 1 {
		return domain.ErrLastActivity
	}

	delete(catalog, key)

	for _, day := range state.DailyData {
		if day != nil {
			delete(day.Records, key)
		}
	}

	order := state.DisplayOrder[state.CurrentPeriod]
	for i, k := range order {
		if k == key {
			state.DisplayOrder[state.CurrentPeriod] = append(order[:i], order[i+1:]...)
			break
		}
	}

	return s.stateRepo.Save(ctx, userID, state)
}

// Reorder stores a display-order permutation for the current period.
// Presentation only: the stats engine never consumes it.
func (s *CatalogService) Reorder(ctx context.Context, userID string, keys []string) error {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	catalog := state.Activities()
	for _, k := range keys {
		if _, ok := catalog[k]; !ok {
			return domain.ErrActivityNotFound
		}
	}

	state.DisplayOrder[state.CurrentPeriod] = keys

	return s.stateRepo.Save(ctx, userID, state)
}

// CurrentPeriod returns the selected period for a user.
func (s *CatalogService) CurrentPeriod(ctx context.Context, userID string) (string, error) {
	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	return state.CurrentPeriod, nil
}

// SetCurrentPeriod switches the period the catalog, logs and stats
// operate on.
func (s *CatalogService) SetCurrentPeriod(ctx context.Context, userID, period string) error {
	if !domain.ValidPeriod(period) {
		return domain.ErrInvalidPeriod
	}

	state, err := s.stateRepo.Load(ctx, userID)
	if err != nil {
		return err
	}

	state.CurrentPeriod = period

	return s.stateRepo.Save(ctx, userID, state)
}
