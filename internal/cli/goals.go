package cli

import (
	"fmt"
	"time"

	"github.com/templui/focusflow/internal/schema"
)

type GoalsListCmd struct {
	Category string `short:"c" help:"Only goals of this category (career|college|financial|health|daily)."`
	Open     bool   `help:"Only open goals." xor:"state"`
	Done     bool   `help:"Only completed goals." xor:"state"`
}

func (c *GoalsListCmd) Run(ctx *Context) error {
	filter := schema.GoalFilter{Category: c.Category}
	switch {
	case c.Open:
		filter.IsCompleted = "false"
	case c.Done:
		filter.IsCompleted = "true"
	}

	goals, err := ctx.Client.Goals(ctx, filter)
	if err != nil {
		return err
	}
	renderGoals(ctx.Out, goals)
	return nil
}

type GoalsAddCmd struct {
	Title       string  `arg:"" help:"Goal title."`
	Category    string  `short:"c" help:"Category (career|college|financial|health|daily)." default:"daily"`
	Priority    string  `short:"p" help:"Priority (high|medium|low)." default:"medium"`
	Description *string `short:"d" help:"Longer description."`
	Due         string  `help:"Due date (YYYY-MM-DD)."`
}

func (c *GoalsAddCmd) Run(ctx *Context) error {
	due, err := parseDate(c.Due)
	if err != nil {
		return err
	}

	goal, err := ctx.Client.CreateGoal(ctx, schema.CreateGoal{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    c.Priority,
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	renderGoal(ctx.Out, *goal)
	return nil
}

type GoalsEditCmd struct {
	ID          int64   `arg:"" help:"Goal ID."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	Category    *string `short:"c" help:"New category."`
	Priority    *string `short:"p" help:"New priority."`
	Due         string  `help:"New due date (YYYY-MM-DD)."`
}

func (c *GoalsEditCmd) Run(ctx *Context) error {
	due, err := parseDate(c.Due)
	if err != nil {
		return err
	}

	in := schema.UpdateGoal{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    c.Priority,
		DueDate:     due,
	}
	if in.Patch().IsEmpty() {
		return fmt.Errorf("nothing to change, pass at least one flag")
	}

	goal, err := ctx.Client.UpdateGoal(ctx, c.ID, in)
	if err != nil {
		return err
	}
	renderGoal(ctx.Out, *goal)
	return nil
}

type GoalsDoneCmd struct {
	ID   int64 `arg:"" help:"Goal ID."`
	Undo bool  `help:"Reopen the goal instead."`
}

func (c *GoalsDoneCmd) Run(ctx *Context) error {
	completed := !c.Undo
	goal, err := ctx.Client.UpdateGoal(ctx, c.ID, schema.UpdateGoal{IsCompleted: &completed})
	if err != nil {
		return err
	}
	renderGoal(ctx.Out, *goal)
	return nil
}

type GoalsRmCmd struct {
	ID int64 `arg:"" help:"Goal ID."`
}

func (c *GoalsRmCmd) Run(ctx *Context) error {
	err := ctx.Client.DeleteGoal(ctx, c.ID)
	if err != nil {
		return err
	}
	printf(ctx.Out, "Deleted goal #%d\n", c.ID)
	return nil
}

// parseDate reads a YYYY-MM-DD flag as UTC midnight. Empty means unset.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}
