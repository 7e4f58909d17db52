package repository

import (
	"context"
	"testing"
	"time"

	"github.com/templui/focusflow/internal/db/dbtest"
	"github.com/templui/focusflow/internal/model"
)

func seedResources(t *testing.T, repo ResourceRepository) []*model.Resource {
	t.Helper()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	resources := []*model.Resource{
		{Title: "Pomodoro Technique", Content: "Work in 25 minute blocks.", Type: model.ResourceTypeTip, Category: model.ResourceCategoryStudy, Tags: model.StringArray{"focus", "time"}},
		{Title: "Tell me about yourself", Content: "Keep it to two minutes.", Type: model.ResourceTypeInterviewQuestion, Category: model.ResourceCategoryInterview, Tags: model.StringArray{"behavioral"}},
		{Title: "100% effort_plan", Content: "Literal wildcard characters.", Type: model.ResourceTypeTemplate, Category: model.ResourceCategoryOrganization},
	}
	for i, r := range resources {
		r.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := repo.Create(context.Background(), r); err != nil {
			t.Fatalf("Create %s: %v", r.Title, err)
		}
	}
	return resources
}

func TestResourceRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewResourceRepository(dbtest.New(t))
	seedResources(t, repo)

	tests := []struct {
		name   string
		filter model.ResourceFilter
		want   []string
	}{
		{name: "all newest first", want: []string{"100% effort_plan", "Tell me about yourself", "Pomodoro Technique"}},
		{name: "by category", filter: model.ResourceFilter{Category: model.ResourceCategoryStudy}, want: []string{"Pomodoro Technique"}},
		{name: "by type", filter: model.ResourceFilter{Type: model.ResourceTypeInterviewQuestion}, want: []string{"Tell me about yourself"}},
		{name: "search title case-insensitive", filter: model.ResourceFilter{Search: "POMODORO"}, want: []string{"Pomodoro Technique"}},
		{name: "search content", filter: model.ResourceFilter{Search: "two minutes"}, want: []string{"Tell me about yourself"}},
		{name: "search tags", filter: model.ResourceFilter{Search: "behavioral"}, want: []string{"Tell me about yourself"}},
		{name: "wildcards are literal", filter: model.ResourceFilter{Search: "%"}, want: []string{"100% effort_plan"}},
		{name: "underscore is literal", filter: model.ResourceFilter{Search: "t_p"}, want: []string{"100% effort_plan"}},
		{name: "tag separators do not match", filter: model.ResourceFilter{Search: `","`}, want: []string{}},
		{name: "tag quotes do not match", filter: model.ResourceFilter{Search: `"`}, want: []string{}},
		{name: "tag brackets do not match", filter: model.ResourceFilter{Search: "["}, want: []string{}},
		{name: "combined filters", filter: model.ResourceFilter{Category: model.ResourceCategoryStudy, Search: "two"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Resources(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Resources: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d resources, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Title != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, got[i].Title, tt.want[i])
				}
			}
		})
	}
}

func TestResourceRepositoryByIDAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewResourceRepository(dbtest.New(t))

	count, err := repo.Count(ctx)
	if err != nil || count != 0 {
		t.Fatalf("Count on empty table = %d, %v", count, err)
	}

	seeded := seedResources(t, repo)

	count, err = repo.Count(ctx)
	if err != nil || count != len(seeded) {
		t.Fatalf("Count = %d, %v; want %d", count, err, len(seeded))
	}

	r, err := repo.ByID(ctx, seeded[0].ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if r.Title != "Pomodoro Technique" || len(r.Tags) != 2 || r.Tags[0] != "focus" {
		t.Errorf("unexpected resource: %+v", r)
	}

	untagged, err := repo.ByID(ctx, seeded[2].ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if untagged.Tags == nil || len(untagged.Tags) != 0 {
		t.Errorf("untagged resource tags = %#v, want empty", untagged.Tags)
	}

	missing, err := repo.ByID(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("ByID missing = %v, %v; want nil, nil", missing, err)
	}
}
