package cli

import (
	"fmt"

	"github.com/templui/focusflow/internal/model"
	"github.com/templui/focusflow/internal/schema"
)

type FocusShowCmd struct{}

func (c *FocusShowCmd) Run(ctx *Context) error {
	focus, err := ctx.Client.TodayFocus(ctx)
	if err != nil {
		return err
	}

	var goals []model.Goal
	if focus != nil && focus.TopPriorityID != nil {
		goals, err = ctx.Client.Goals(ctx, schema.GoalFilter{})
		if err != nil {
			return err
		}
	}
	renderFocus(ctx.Out, focus, goals)
	return nil
}

type FocusSetCmd struct {
	Top    *int64  `short:"t" help:"ID of today's top priority goal."`
	Mood   *string `short:"m" help:"Mood (great|good|okay|overwhelmed|distracted)."`
	Energy *int    `short:"e" help:"Energy level from 1 to 5."`
	Notes  *string `short:"n" help:"Free-form notes."`
}

func (c *FocusSetCmd) Run(ctx *Context) error {
	in := schema.UpsertDailyFocus{
		TopPriorityID: c.Top,
		Mood:          c.Mood,
		EnergyLevel:   c.Energy,
		Notes:         c.Notes,
	}
	if in.Patch() == (model.FocusPatch{}) {
		return fmt.Errorf("nothing to change, pass at least one flag")
	}

	focus, err := ctx.Client.SaveFocus(ctx, in)
	if err != nil {
		return err
	}

	goals, err := ctx.Client.Goals(ctx, schema.GoalFilter{})
	if err != nil {
		return err
	}
	renderFocus(ctx.Out, focus, goals)
	return nil
}
