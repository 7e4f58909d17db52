package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/templui/focusflow/internal/model"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	Resources(ctx context.Context, filter model.ResourceFilter) ([]*model.Resource, error)
	ByID(ctx context.Context, id int64) (*model.Resource, error)
	Count(ctx context.Context) (int, error)
}

type resourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	query := `INSERT INTO resources (title, content, type, category, tags, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		resource.Title,
		resource.Content,
		resource.Type,
		resource.Category,
		resource.Tags,
		resource.CreatedAt.UTC(),
	).Scan(&resource.ID)
}

// Resources lists resources newest first. Search matches title, content or tags
// case-insensitively.
func (r *resourceRepository) Resources(ctx context.Context, filter model.ResourceFilter) ([]*model.Resource, error) {
	resources := []*model.Resource{}

	var where []string
	var args []any
	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		where = append(where, "category = "+arg(filter.Category))
	}
	if filter.Type != "" {
		where = append(where, "type = "+arg(filter.Type))
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		where = append(where, fmt.Sprintf(
			`(LOWER(title) LIKE %s ESCAPE '\' OR LOWER(content) LIKE %s ESCAPE '\' OR LOWER(tags) LIKE %s ESCAPE '\')`,
			arg(pattern), arg(pattern), arg(pattern)))
	}

	query := `SELECT * FROM resources`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	err := r.db.SelectContext(ctx, &resources, query, args...)
	if err != nil {
		return nil, err
	}

	if filter.Search != "" {
		resources = slices.DeleteFunc(resources, func(resource *model.Resource) bool {
			return !matchesSearch(resource, filter.Search)
		})
	}

	return resources, nil
}

// matchesSearch rechecks a row the LIKE prefilter returned. Tags are stored as
// a JSON array, so the raw column also matches quotes, commas and brackets.
func matchesSearch(resource *model.Resource, search string) bool {
	term := strings.ToLower(search)
	if strings.Contains(strings.ToLower(resource.Title), term) ||
		strings.Contains(strings.ToLower(resource.Content), term) {
		return true
	}
	return slices.ContainsFunc(resource.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}

func (r *resourceRepository) ByID(ctx context.Context, id int64) (*model.Resource, error) {
	resource := &model.Resource{}
	query := `SELECT * FROM resources WHERE id = $1`

	err := r.db.GetContext(ctx, resource, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return resource, nil
}

func (r *resourceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM resources`)
	return count, err
}
