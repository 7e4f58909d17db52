package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/ctxkeys"
	"github.com/templui/focusflow/internal/respond"
	"github.com/templui/focusflow/internal/schema"
	"github.com/templui/focusflow/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	filter, err := bind[schema.GoalFilter](w, r, contract.API.Goals.List)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to parse goal filter", "error", err)
		respond.InternalError(w)
		return
	}

	goals, err := h.goalService.Goals(r.Context(), userID, filter.Model())
	if err != nil {
		slog.Error("failed to get goals", "error", err, "user_id", userID)
		respond.InternalError(w)
		return
	}

	respond.OK(w, nonNil(goals))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	in, err := bind[schema.CreateGoal](w, r, contract.API.Goals.Create)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to parse goal", "error", err)
		respond.InternalError(w)
		return
	}

	goal, err := h.goalService.Create(r.Context(), userID, *in)
	if err != nil {
		slog.Error("failed to create goal", "error", err, "user_id", userID)
		respond.InternalError(w)
		return
	}

	respond.Created(w, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goalID, ok := pathID(w, r)
	if !ok {
		return
	}

	in, err := bind[schema.UpdateGoal](w, r, contract.API.Goals.Update)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to parse goal update", "error", err)
		respond.InternalError(w)
		return
	}

	goal, err := h.goalService.Update(r.Context(), userID, goalID, in.Patch())
	if err != nil {
		slog.Error("failed to update goal", "error", err, "user_id", userID, "goal_id", goalID)
		respond.InternalError(w)
		return
	}
	if goal == nil {
		respond.NotFound(w, "Goal not found")
		return
	}

	respond.OK(w, goal)
}

// Delete always answers 204, whether or not the goal existed.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goalID, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.goalService.Delete(r.Context(), userID, goalID)
	if err != nil {
		slog.Error("failed to delete goal", "error", err, "user_id", userID, "goal_id", goalID)
		respond.InternalError(w)
		return
	}

	respond.NoContent(w)
}

// Export downloads all of the caller's goals as a JSON file.
func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, filename, err := h.goalService.Export(r.Context(), userID)
	if err != nil {
		slog.Error("failed to export goals", "error", err, "user_id", userID)
		respond.InternalError(w)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	respond.OK(w, nonNil(goals))
}

// nonNil makes empty lists encode as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
