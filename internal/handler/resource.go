package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/focusflow/internal/contract"
	"github.com/templui/focusflow/internal/respond"
	"github.com/templui/focusflow/internal/schema"
	"github.com/templui/focusflow/internal/service"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
}

func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := bind[schema.ResourceFilter](w, r, contract.API.Resources.List)
	if respond.Invalid(w, err) {
		return
	}
	if err != nil {
		slog.Error("failed to parse resource filter", "error", err)
		respond.InternalError(w)
		return
	}

	resources, err := h.resourceService.Resources(r.Context(), filter.Model())
	if err != nil {
		slog.Error("failed to get resources", "error", err)
		respond.InternalError(w)
		return
	}

	respond.OK(w, nonNil(resources))
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resource, err := h.resourceService.Resource(r.Context(), id)
	if err != nil {
		slog.Error("failed to get resource", "error", err, "resource_id", id)
		respond.InternalError(w)
		return
	}
	if resource == nil {
		respond.NotFound(w, "Resource not found")
		return
	}

	respond.OK(w, resource)
}
