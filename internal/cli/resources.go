package cli

import (
	"fmt"

	"github.com/templui/focusflow/internal/schema"
)

type ResourcesListCmd struct {
	Category string `short:"c" help:"Only this category (organization|interview|workplace|study)."`
	Type     string `short:"t" help:"Only this type (tip|article|interview_question|template)."`
	Search   string `short:"s" help:"Text to look for in titles, content and tags."`
}

func (c *ResourcesListCmd) Run(ctx *Context) error {
	resources, err := ctx.Client.Resources(ctx, schema.ResourceFilter{
		Category: c.Category,
		Type:     c.Type,
		Search:   c.Search,
	})
	if err != nil {
		return err
	}
	renderResources(ctx.Out, resources)
	return nil
}

type ResourcesShowCmd struct {
	ID int64 `arg:"" help:"Resource ID."`
}

func (c *ResourcesShowCmd) Run(ctx *Context) error {
	resource, err := ctx.Client.Resource(ctx, c.ID)
	if err != nil {
		return err
	}
	if resource == nil {
		return fmt.Errorf("resource #%d not found", c.ID)
	}
	renderResource(ctx.Out, resource)
	return nil
}
