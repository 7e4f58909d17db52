package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/ctxkeys"
	"github.com/templui/focusflow/internal/respond"
	"github.com/templui/focusflow/internal/schema"
	"github.com/templui/focusflow/internal/service"
)

type FocusHandler struct {
	focusService *service.FocusService
}

func NewFocusHandler(focusService *service.FocusService) *FocusHandler {
	return &FocusHandler{
		focusService: focusService,
	}
}

// Today answers with today's check-in, or JSON null before the first one.
func (h *FocusHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	focus, err := h.focusService.Today(r.Context(), userID)
	if err != nil {
		slog.Error("failed to get daily focus", "error", err, "user_id", userID)
		respond.InternalError(w)
		return
	}

	respond.OK(w, focus)
}

func (h *FocusHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	in, err := bind[schema.UpsertDailyFocus](w, r, contract.API.DailyFocus.Upsert)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to parse daily focus", "error", err)
		respond.InternalError(w)
		return
	}

	focus, err := h.focusService.Save(r.Context(), userID, in.Patch())
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to save daily focus", "error", err, "user_id", userID)
		respond.InternalError(w)
		return
	}

	respond.OK(w, focus)
}
