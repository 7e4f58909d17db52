package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/templui/focusflow/internal/model"
	"github.com/templui/focusflow/internal/repository"
	"github.com/templui/focusflow/internal/schema"
)

type GoalService struct {
	repo repository.GoalRepository
	now  Clock
}

func NewGoalService(repo repository.GoalRepository, now Clock) *GoalService {
	return &GoalService{
		repo: repo,
		now:  now,
	}
}

func (s *GoalService) Create(ctx context.Context, userID string, in schema.CreateGoal) (*model.Goal, error) {
	priority := in.Priority
	if priority == "" {
		priority = model.GoalPriorityMedium
	}

	goal := &model.Goal{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    priority,
		DueDate:     in.DueDate,
		IsCompleted: in.IsCompleted,
		CreatedAt:   s.now(),
	}

	err := s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "user_id", userID, "goal_id", goal.ID)
	return goal, nil
}

func (s *GoalService) Goals(ctx context.Context, userID string, filter model.GoalFilter) ([]*model.Goal, error) {
	return s.repo.Goals(ctx, userID, filter)
}

// Export returns all of the user's goals with the file name to save them
// under, dated by the service clock.
func (s *GoalService) Export(ctx context.Context, userID string) ([]*model.Goal, string, error) {
	goals, err := s.repo.Goals(ctx, userID, model.GoalFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list goals: %w", err)
	}

	slog.Info("goals exported", "user_id", userID, "count", len(goals))
	return goals, fmt.Sprintf("goals-%s.json", s.now().Format("2006-01-02")), nil
}

// Goal returns nil when the goal does not exist or is not owned by userID.
func (s *GoalService) Goal(ctx context.Context, userID string, goalID int64) (*model.Goal, error) {
	return s.repo.ByID(ctx, userID, goalID)
}

// Update returns nil when no goal matches both goalID and userID.
func (s *GoalService) Update(ctx context.Context, userID string, goalID int64, patch model.GoalPatch) (*model.Goal, error) {
	goal, err := s.repo.Update(ctx, userID, goalID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID string, goalID int64) error {
	err := s.repo.Delete(ctx, userID, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
