package service

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/templui/focusflow/internal/markdown"
	"github.com/templui/focusflow/internal/model"
	"github.com/templui/focusflow/internal/repository"
	"github.com/templui/focusflow/internal/schema"
)

type ResourceService struct {
	repo   repository.ResourceRepository
	parser *markdown.Parser
	now    Clock
}

func NewResourceService(repo repository.ResourceRepository, now Clock) *ResourceService {
	return &ResourceService{
		repo:   repo,
		parser: markdown.NewParser(),
		now:    now,
	}
}

func (s *ResourceService) Resources(ctx context.Context, filter model.ResourceFilter) ([]*model.Resource, error) {
	return s.repo.Resources(ctx, filter)
}

// Resource returns the resource with its content rendered to HTML, or nil if it does not exist.
func (s *ResourceService) Resource(ctx context.Context, id int64) (*model.Resource, error) {
	resource, err := s.repo.ByID(ctx, id)
	if err != nil || resource == nil {
		return nil, err
	}

	html, err := s.parser.Render([]byte(resource.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to render resource %d: %w", id, err)
	}
	resource.HTML = string(html)

	return resource, nil
}

// Seed loads every *.md file in fsys into an empty resources table.
// It does nothing once any resource exists and returns how many were created.
func (s *ResourceService) Seed(ctx context.Context, fsys fs.FS, dir string) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	inputs := make([]schema.CreateResource, 0, len(files))
	for _, file := range files {
		source, err := fs.ReadFile(fsys, file)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", file, err)
		}

		doc := s.parser.Split(source)
		in := schema.CreateResource{
			Title:    doc.String("title"),
			Content:  strings.TrimSpace(string(doc.Body)),
			Type:     doc.String("type"),
			Category: doc.String("category"),
			Tags:     doc.Strings("tags"),
		}

		err = schema.Validate(&in)
		if err != nil {
			return 0, fmt.Errorf("invalid resource %s: %w", file, err)
		}
		inputs = append(inputs, in)
	}

	now := s.now()
	for _, in := range inputs {
		resource := &model.Resource{
			Title:     in.Title,
			Content:   in.Content,
			Type:      in.Type,
			Category:  in.Category,
			Tags:      model.StringArray(in.Tags),
			CreatedAt: now,
		}

		err = s.repo.Create(ctx, resource)
		if err != nil {
			return 0, fmt.Errorf("failed to create resource %q: %w", in.Title, err)
		}
	}

	slog.Info("resources seeded", "count", len(inputs))
	return len(inputs), nil
}
