// Package contract is the registry of API routes shared by the server and the client.
// Each route names its method, path template, input type and the body expected for
// every status it can return.
package contract

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/templui/focusflow/internal/schema"
)

type Route struct {
	Name   string
	Method string
	Path   string // path template, parameters written as :name
	Auth   bool

	// Input returns a fresh pointer to the request input, or nil for routes
	// without one. Inputs implementing schema.QueryInput travel in the query string.
	Input func() any

	// Responses maps each status to its body schema. A nil schema means no body.
	Responses map[int]*Schema
}

// Pattern returns the net/http ServeMux pattern for the route.
func (r Route) Pattern() string {
	segments := strings.Split(r.Path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return r.Method + " " + strings.Join(segments, "/")
}

func (r Route) URL(params map[string]any) string {
	return BuildURL(r.Path, params)
}

// NewInput returns a fresh input value, or nil when the route takes none.
func (r Route) NewInput() any {
	if r.Input == nil {
		return nil
	}
	return r.Input()
}

// ValidateResponse checks body against the schema declared for status.
func (r Route) ValidateResponse(ctx context.Context, status int, body []byte) error {
	s, ok := r.Responses[status]
	if !ok {
		return fmt.Errorf("%s: undeclared response status %d", r.Name, status)
	}

	if s == nil {
		if len(bytes.TrimSpace(body)) != 0 {
			return fmt.Errorf("%s: expected empty body for status %d", r.Name, status)
		}
		return nil
	}

	if err := s.Validate(ctx, body); err != nil {
		return fmt.Errorf("%s: %w", r.Name, err)
	}
	return nil
}

// BuildURL replaces every :name segment of path with the matching parameter.
// Segments without a parameter are left as they are.
func BuildURL(path string, params map[string]any) string {
	if len(params) == 0 {
		return path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if v, ok := params[seg[1:]]; ok {
			segments[i] = url.PathEscape(fmt.Sprint(v))
		}
	}
	return strings.Join(segments, "/")
}

type GoalRoutes struct {
	List   Route
	Create Route
	Update Route
	Delete Route
	Export Route
}

type FocusRoutes struct {
	GetToday Route
	Upsert   Route
}

type ResourceRoutes struct {
	List Route
	Get  Route
}

type AuthRoutes struct {
	Register Route
	Login    Route
	Logout   Route
	User     Route
}

type SystemRoutes struct {
	Health Route
}

type Registry struct {
	Goals      GoalRoutes
	DailyFocus FocusRoutes
	Resources  ResourceRoutes
	Auth       AuthRoutes
	System     SystemRoutes
}

// All returns every route in registration order.
func (reg Registry) All() []Route {
	return []Route{
		reg.Goals.List, reg.Goals.Export, reg.Goals.Create, reg.Goals.Update, reg.Goals.Delete,
		reg.DailyFocus.GetToday, reg.DailyFocus.Upsert,
		reg.Resources.List, reg.Resources.Get,
		reg.Auth.Register, reg.Auth.Login, reg.Auth.Logout, reg.Auth.User,
		reg.System.Health,
	}
}

// responses adds the generic 500 body every route may return.
func responses(m map[int]*Schema) map[int]*Schema {
	m[http.StatusInternalServerError] = ErrorBody
	return m
}

// API is the route registry.
var API = Registry{
	Goals: GoalRoutes{
		List: Route{
			Name:   "list goals",
			Method: http.MethodGet,
			Path:   "/api/goals",
			Auth:   true,
			Input:  func() any { return new(schema.GoalFilter) },
			Responses: responses(map[int]*Schema{
				http.StatusOK:           GoalListBody,
				http.StatusBadRequest:   ErrorBody,
				http.StatusUnauthorized: ErrorBody,
			}),
		},
		Create: Route{
			Name:   "create goal",
			Method: http.MethodPost,
			Path:   "/api/goals",
			Auth:   true,
			Input:  func() any { return new(schema.CreateGoal) },
			Responses: responses(map[int]*Schema{
				http.StatusCreated:               GoalBody,
				http.StatusBadRequest:            ErrorBody,
				http.StatusRequestEntityTooLarge: ErrorBody,
				http.StatusUnauthorized:          ErrorBody,
			}),
		},
		Update: Route{
			Name:   "update goal",
			Method: http.MethodPut,
			Path:   "/api/goals/:id",
			Auth:   true,
			Input:  func() any { return new(schema.UpdateGoal) },
			Responses: responses(map[int]*Schema{
				http.StatusOK:                    GoalBody,
				http.StatusBadRequest:            ErrorBody,
				http.StatusRequestEntityTooLarge: ErrorBody,
				http.StatusUnauthorized:          ErrorBody,
				http.StatusNotFound:              ErrorBody,
			}),
		},
		Delete: Route{
			Name:   "delete goal",
			Method: http.MethodDelete,
			Path:   "/api/goals/:id",
			Auth:   true,
			Responses: responses(map[int]*Schema{
				http.StatusNoContent:    nil,
				http.StatusBadRequest:   ErrorBody,
				http.StatusUnauthorized: ErrorBody,
			}),
		},
		Export: Route{
			Name:   "export goals",
			Method: http.MethodGet,
			Path:   "/api/goals/export",
			Auth:   true,
			Responses: responses(map[int]*Schema{
				http.StatusOK:           GoalListBody,
				http.StatusUnauthorized: ErrorBody,
			}),
		},
	},
	DailyFocus: FocusRoutes{
		GetToday: Route{
			Name:   "get today's focus",
			Method: http.MethodGet,
			Path:   "/api/daily-focus/today",
			Auth:   true,
			Responses: responses(map[int]*Schema{
				http.StatusOK:           FocusOrNull,
				http.StatusUnauthorized: ErrorBody,
			}),
		},
		Upsert: Route{
			Name:   "save today's focus",
			Method: http.MethodPost,
			Path:   "/api/daily-focus",
			Auth:   true,
			Input:  func() any { return new(schema.UpsertDailyFocus) },
			Responses: responses(map[int]*Schema{
				http.StatusOK:                    FocusBody,
				http.StatusBadRequest:            ErrorBody,
				http.StatusRequestEntityTooLarge: ErrorBody,
				http.StatusUnauthorized:          ErrorBody,
			}),
		},
	},
	Resources: ResourceRoutes{
		List: Route{
			Name:   "list resources",
			Method: http.MethodGet,
			Path:   "/api/resources",
			Input:  func() any { return new(schema.ResourceFilter) },
			Responses: responses(map[int]*Schema{
				http.StatusOK:           ResourceList,
				http.StatusBadRequest:   ErrorBody,
				http.StatusUnauthorized: ErrorBody,
			}),
		},
		Get: Route{
			Name:   "get resource",
			Method: http.MethodGet,
			Path:   "/api/resources/:id",
			Responses: responses(map[int]*Schema{
				http.StatusOK:           ResourceBody,
				http.StatusBadRequest:   ErrorBody,
				http.StatusUnauthorized: ErrorBody,
				http.StatusNotFound:     ErrorBody,
			}),
		},
	},
	Auth: AuthRoutes{
		Register: Route{
			Name:   "register",
			Method: http.MethodPost,
			Path:   "/api/auth/register",
			Input:  func() any { return new(schema.Register) },
			Responses: responses(map[int]*Schema{
				http.StatusCreated:               SessionBody,
				http.StatusBadRequest:            ErrorBody,
				http.StatusRequestEntityTooLarge: ErrorBody,
				http.StatusConflict:              ErrorBody,
				http.StatusTooManyRequests:       ErrorBody,
			}),
		},
		Login: Route{
			Name:   "login",
			Method: http.MethodPost,
			Path:   "/api/auth/login",
			Input:  func() any { return new(schema.Login) },
			Responses: responses(map[int]*Schema{
				http.StatusOK:                    SessionBody,
				http.StatusBadRequest:            ErrorBody,
				http.StatusRequestEntityTooLarge: ErrorBody,
				http.StatusUnauthorized:          ErrorBody,
				http.StatusTooManyRequests:       ErrorBody,
			}),
		},
		Logout: Route{
			Name:   "logout",
			Method: http.MethodPost,
			Path:   "/api/logout",
			Responses: responses(map[int]*Schema{
				http.StatusNoContent: nil,
			}),
		},
		User: Route{
			Name:   "current user",
			Method: http.MethodGet,
			Path:   "/api/auth/user",
			Auth:   true,
			Responses: responses(map[int]*Schema{
				http.StatusOK:           UserBody,
				http.StatusUnauthorized: ErrorBody,
			}),
		},
	},
	System: SystemRoutes{
		Health: Route{
			Name:   "health",
			Method: http.MethodGet,
			Path:   "/api/health",
			Responses: responses(map[int]*Schema{
				http.StatusOK:                 HealthBody,
				http.StatusServiceUnavailable: ErrorBody,
			}),
		},
	},
}
