package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/templui/focusflow/internal/model"
)

type DailyFocusRepository interface {
	ForDay(ctx context.Context, userID string, day model.DayWindow) (*model.DailyFocus, error)
	Upsert(ctx context.Context, userID string, day model.DayWindow, at time.Time, patch model.FocusPatch) (*model.DailyFocus, error)
}

type dailyFocusRepository struct {
	db *sqlx.DB
}

func NewDailyFocusRepository(db *sqlx.DB) DailyFocusRepository {
	return &dailyFocusRepository{db: db}
}

const focusForDayQuery = `SELECT * FROM daily_focus
                          WHERE user_id = $1 AND focus_date >= $2 AND focus_date <= $3
                          ORDER BY id ASC LIMIT 1`

// ForDay returns the user's check-in inside day, or nil when there is none.
func (r *dailyFocusRepository) ForDay(ctx context.Context, userID string, day model.DayWindow) (*model.DailyFocus, error) {
	return focusForDay(ctx, r.db, userID, day)
}

// Upsert creates the check-in for day or updates the existing one with the fields set in patch.
// The lookup and the write share a transaction but nothing stops two concurrent
// callers from both inserting.
func (r *dailyFocusRepository) Upsert(ctx context.Context, userID string, day model.DayWindow, at time.Time, patch model.FocusPatch) (*model.DailyFocus, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := focusForDay(ctx, tx, userID, day)
	if err != nil {
		return nil, err
	}

	var focus *model.DailyFocus
	if existing == nil {
		focus, err = insertFocus(ctx, tx, userID, at, patch)
	} else {
		focus, err = updateFocus(ctx, tx, existing, patch)
	}
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return focus, nil
}

func focusForDay(ctx context.Context, q sqlx.QueryerContext, userID string, day model.DayWindow) (*model.DailyFocus, error) {
	focus := &model.DailyFocus{}
	err := sqlx.GetContext(ctx, q, focus, focusForDayQuery, userID, day.Start.UTC(), day.End.UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return focus, nil
}

func insertFocus(ctx context.Context, tx *sqlx.Tx, userID string, at time.Time, patch model.FocusPatch) (*model.DailyFocus, error) {
	query := `INSERT INTO daily_focus (user_id, focus_date, top_priority_id, mood, energy_level, notes)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING *`

	focus := &model.DailyFocus{}
	err := tx.GetContext(ctx, focus, query,
		userID,
		at.UTC(),
		patch.TopPriorityID,
		patch.Mood,
		patch.EnergyLevel,
		patch.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert daily focus: %w", err)
	}
	return focus, nil
}

func updateFocus(ctx context.Context, tx *sqlx.Tx, existing *model.DailyFocus, patch model.FocusPatch) (*model.DailyFocus, error) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.TopPriorityID != nil {
		add("top_priority_id", *patch.TopPriorityID)
	}
	if patch.Mood != nil {
		add("mood", *patch.Mood)
	}
	if patch.EnergyLevel != nil {
		add("energy_level", *patch.EnergyLevel)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}

	if len(set) == 0 {
		return existing, nil
	}

	args = append(args, existing.ID)
	query := fmt.Sprintf(`UPDATE daily_focus SET %s WHERE id = $%d RETURNING *`, strings.Join(set, ", "), len(args))

	focus := &model.DailyFocus{}
	err := tx.GetContext(ctx, focus, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update daily focus: %w", err)
	}
	return focus, nil
}
