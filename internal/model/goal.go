package model

import (
	"time"
)

const (
	GoalCategoryCareer    = "career"
	GoalCategoryCollege   = "college"
	GoalCategoryFinancial = "financial"
	GoalCategoryHealth    = "health"
	GoalCategoryDaily     = "daily"
)

const (
	GoalPriorityHigh   = "high"
	GoalPriorityMedium = "medium"
	GoalPriorityLow    = "low"
)

var (
	GoalCategories = []string{GoalCategoryCareer, GoalCategoryCollege, GoalCategoryFinancial, GoalCategoryHealth, GoalCategoryDaily}
	GoalPriorities = []string{GoalPriorityHigh, GoalPriorityMedium, GoalPriorityLow}
)

type Goal struct {
	ID          int64      `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	Priority    string     `db:"priority" json:"priority"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	IsCompleted bool       `db:"is_completed" json:"isCompleted"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

// GoalPatch carries the subset of goal fields an update touches. Nil means unchanged.
type GoalPatch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	DueDate     *time.Time
	IsCompleted *bool
}

func (p GoalPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Priority == nil && p.DueDate == nil && p.IsCompleted == nil
}

type GoalFilter struct {
	Category    string
	IsCompleted *bool
}
