package client

import (
	"context"
	"net/http"

	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/model"
	"github.com/templui/focusflow/internal/schema"
)

var api = contract.API

// Cache key prefixes per resource group.
var (
	goalKeys     = api.Goals.List.Path
	focusKeys    = "/api/daily-focus"
	resourceKeys = api.Resources.List.Path
)

func (c *Client) Goals(ctx context.Context, filter schema.GoalFilter) ([]model.Goal, error) {
	var goals []model.Goal
	err := c.fetch(ctx, call{op: "Failed to fetch goals", route: api.Goals.List, input: &filter}, &goals)
	return goals, err
}

func (c *Client) CreateGoal(ctx context.Context, in schema.CreateGoal) (*model.Goal, error) {
	var goal model.Goal
	err := c.mutate(ctx, call{op: "Failed to create goal", route: api.Goals.Create, input: &in}, &goal, goalKeys)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id int64, in schema.UpdateGoal) (*model.Goal, error) {
	var goal model.Goal
	cl := call{op: "Failed to update goal", route: api.Goals.Update, params: map[string]any{"id": id}, input: &in}
	err := c.mutate(ctx, cl, &goal, goalKeys)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal also drops today's focus, whose top priority may have pointed at the goal.
func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	cl := call{op: "Failed to delete goal", route: api.Goals.Delete, params: map[string]any{"id": id}}
	return c.mutate(ctx, cl, nil, goalKeys, focusKeys)
}

// ExportGoals is never cached.
func (c *Client) ExportGoals(ctx context.Context) ([]model.Goal, error) {
	cl := call{op: "Failed to export goals", route: api.Goals.Export}
	_, data, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}

	var goals []model.Goal
	err = c.decode(cl, data, &goals)
	return goals, err
}

// TodayFocus returns nil before the first check-in of the day.
func (c *Client) TodayFocus(ctx context.Context) (*model.DailyFocus, error) {
	var focus *model.DailyFocus
	err := c.fetch(ctx, call{op: "Failed to fetch daily focus", route: api.DailyFocus.GetToday}, &focus)
	return focus, err
}

func (c *Client) SaveFocus(ctx context.Context, in schema.UpsertDailyFocus) (*model.DailyFocus, error) {
	var focus model.DailyFocus
	err := c.mutate(ctx, call{op: "Failed to save daily focus", route: api.DailyFocus.Upsert, input: &in}, &focus, focusKeys)
	if err != nil {
		return nil, err
	}
	return &focus, nil
}

func (c *Client) Resources(ctx context.Context, filter schema.ResourceFilter) ([]model.Resource, error) {
	var resources []model.Resource
	err := c.fetch(ctx, call{op: "Failed to fetch resources", route: api.Resources.List, input: &filter}, &resources)
	return resources, err
}

// Resource returns nil, nil when the resource does not exist.
func (c *Client) Resource(ctx context.Context, id int64) (*model.Resource, error) {
	var resource model.Resource
	cl := call{op: "Failed to fetch resource", route: api.Resources.Get, params: map[string]any{"id": id}}
	err := c.fetch(ctx, cl, &resource)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

type session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (c *Client) Register(ctx context.Context, in schema.Register) (*model.User, error) {
	return c.startSession(ctx, call{op: "Failed to register", route: api.Auth.Register, input: &in})
}

func (c *Client) Login(ctx context.Context, in schema.Login) (*model.User, error) {
	return c.startSession(ctx, call{op: "Failed to log in", route: api.Auth.Login, input: &in})
}

func (c *Client) startSession(ctx context.Context, cl call) (*model.User, error) {
	var s session
	err := c.mutate(ctx, cl, &s)
	if err != nil {
		return nil, err
	}
	c.setToken(s.Token)
	return &s.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.mutate(ctx, call{op: "Failed to log out", route: api.Auth.Logout}, nil)
	if err != nil {
		return err
	}
	c.setToken("")
	return nil
}

func (c *Client) User(ctx context.Context) (*model.User, error) {
	var user model.User
	err := c.fetch(ctx, call{op: "Failed to fetch user", route: api.Auth.User}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Health(ctx context.Context) error {
	_, _, err := c.do(ctx, call{op: "Server unavailable", route: api.System.Health})
	return err
}
