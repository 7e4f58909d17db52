package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/templui/focusflow/internal/model"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	Goals(ctx context.Context, userID string, filter model.GoalFilter) ([]*model.Goal, error)
	ByID(ctx context.Context, userID string, goalID int64) (*model.Goal, error)
	Update(ctx context.Context, userID string, goalID int64, patch model.GoalPatch) (*model.Goal, error)
	Delete(ctx context.Context, userID string, goalID int64) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (user_id, title, description, category, priority, due_date, is_completed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Priority,
		utcPtr(goal.DueDate),
		goal.IsCompleted,
		goal.CreatedAt.UTC(),
	).Scan(&goal.ID)
}

func (r *goalRepository) Goals(ctx context.Context, userID string, filter model.GoalFilter) ([]*model.Goal, error) {
	goals := []*model.Goal{}

	where := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.IsCompleted != nil {
		args = append(args, *filter.IsCompleted)
		where = append(where, fmt.Sprintf("is_completed = $%d", len(args)))
	}

	query := `SELECT * FROM goals WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC, id DESC`

	err := r.db.SelectContext(ctx, &goals, query, args...)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ByID(ctx context.Context, userID string, goalID int64) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Update applies the fields set in patch and returns the stored goal.
// It returns nil when the goal does not exist or belongs to someone else.
func (r *goalRepository) Update(ctx context.Context, userID string, goalID int64, patch model.GoalPatch) (*model.Goal, error) {
	if patch.IsEmpty() {
		return r.ByID(ctx, userID, goalID)
	}

	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.DueDate != nil {
		add("due_date", patch.DueDate.UTC())
	}
	if patch.IsCompleted != nil {
		add("is_completed", *patch.IsCompleted)
	}

	args = append(args, goalID, userID)
	query := fmt.Sprintf(`UPDATE goals SET %s WHERE id = $%d AND user_id = $%d RETURNING *`,
		strings.Join(set, ", "), len(args)-1, len(args))

	goal := &model.Goal{}
	err := r.db.GetContext(ctx, goal, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes the goal if it exists and is owned by userID. Missing rows are not an error.
func (r *goalRepository) Delete(ctx context.Context, userID string, goalID int64) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, goalID, userID)
	return err
}
