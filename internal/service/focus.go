package service

import (
	"context"
	"fmt"

	"github.com/templui/focusflow/internal/model"
	"github.com/templui/focusflow/internal/repository"
	"github.com/templui/focusflow/internal/schema"
)

var ErrUnknownTopPriority = &schema.ValidationError{
	Field:   "topPriorityId",
	Message: "topPriorityId must reference one of your goals",
}

type FocusService struct {
	repo  repository.DailyFocusRepository
	goals repository.GoalRepository
	now   Clock
}

func NewFocusService(repo repository.DailyFocusRepository, goals repository.GoalRepository, now Clock) *FocusService {
	return &FocusService{
		repo:  repo,
		goals: goals,
		now:   now,
	}
}

// Today returns the user's check-in for the server's current local day, or nil.
func (s *FocusService) Today(ctx context.Context, userID string) (*model.DailyFocus, error) {
	return s.repo.ForDay(ctx, userID, model.DayOf(s.now()))
}

// Save writes today's check-in: the first call of the day creates it, later
// calls update the fields they carry.
func (s *FocusService) Save(ctx context.Context, userID string, patch model.FocusPatch) (*model.DailyFocus, error) {
	if patch.TopPriorityID != nil {
		goal, err := s.goals.ByID(ctx, userID, *patch.TopPriorityID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up top priority: %w", err)
		}
		if goal == nil {
			return nil, ErrUnknownTopPriority
		}
	}

	now := s.now()
	focus, err := s.repo.Upsert(ctx, userID, model.DayOf(now), now, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to save daily focus: %w", err)
	}
	return focus, nil
}
