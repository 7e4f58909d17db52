package schema

import (
	"net/url"
	"time"

	"github.com/templui/focusflow/internal/model"
)

// CreateGoal is the body accepted when creating a goal. Server-assigned fields
// (id, owner, creation time) are not part of it.
type CreateGoal struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitnil,max=2000"`
	Category    string     `json:"category" validate:"required,goalcategory"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,goalpriority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	IsCompleted bool       `json:"isCompleted,omitempty"`
}

// UpdateGoal is the partial variant of CreateGoal: every field is optional and
// only the fields present are applied.
type UpdateGoal struct {
	Title       *string    `json:"title,omitempty" validate:"omitnil,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitnil,max=2000"`
	Category    *string    `json:"category,omitempty" validate:"omitnil,goalcategory"`
	Priority    *string    `json:"priority,omitempty" validate:"omitnil,goalpriority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	IsCompleted *bool      `json:"isCompleted,omitempty"`
}

func (in UpdateGoal) Patch() model.GoalPatch {
	return model.GoalPatch{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		IsCompleted: in.IsCompleted,
	}
}

// GoalFilter is the optional query of the goal list.
type GoalFilter struct {
	Category    string `json:"category,omitempty" validate:"omitempty,goalcategory"`
	IsCompleted string `json:"isCompleted,omitempty" validate:"omitempty,oneof=true false"`
}

func (f *GoalFilter) DecodeQuery(values url.Values) {
	f.Category = values.Get("category")
	f.IsCompleted = values.Get("isCompleted")
}

func (f *GoalFilter) EncodeQuery() url.Values {
	values := url.Values{}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.IsCompleted != "" {
		values.Set("isCompleted", f.IsCompleted)
	}
	return values
}

// Model converts a validated filter for the repository.
func (f *GoalFilter) Model() model.GoalFilter {
	filter := model.GoalFilter{Category: f.Category}
	switch f.IsCompleted {
	case "true":
		completed := true
		filter.IsCompleted = &completed
	case "false":
		completed := false
		filter.IsCompleted = &completed
	}
	return filter
}
