package schema

import (
	"net/url"
	"strings"

	"github.com/templui/focusflow/internal/model"
)

// ResourceFilter is the optional query of the resource list.
type ResourceFilter struct {
	Category string `json:"category,omitempty" validate:"omitempty,resourcecategory"`
	Type     string `json:"type,omitempty" validate:"omitempty,resourcetype"`
	Search   string `json:"search,omitempty" validate:"max=200"`
}

func (f *ResourceFilter) DecodeQuery(values url.Values) {
	f.Category = values.Get("category")
	f.Type = values.Get("type")
	f.Search = strings.TrimSpace(values.Get("search"))
}

func (f *ResourceFilter) EncodeQuery() url.Values {
	values := url.Values{}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.Type != "" {
		values.Set("type", f.Type)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	return values
}

func (f *ResourceFilter) Model() model.ResourceFilter {
	return model.ResourceFilter{Category: f.Category, Type: f.Type, Search: f.Search}
}

// CreateResource is used by the seeding routine only; it is not exposed over HTTP.
type CreateResource struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required"`
	Type     string   `json:"type" validate:"required,resourcetype"`
	Category string   `json:"category" validate:"required,resourcecategory"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
}
