package repository

import (
	"context"
	"testing"
	"time"

	"github.com/templui/focusflow/internal/db/dbtest"
	"github.com/templui/focusflow/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

func newGoal(userID, title, category string, createdAt time.Time) *model.Goal {
	return &model.Goal{
		UserID:    userID,
		Title:     title,
		Category:  category,
		Priority:  model.GoalPriorityMedium,
		CreatedAt: createdAt,
	}
}

func TestGoalRepositoryCreateAndList(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.New(t)
	dbtest.CreateUser(t, conn, "alice")
	dbtest.CreateUser(t, conn, "bob")
	repo := NewGoalRepository(conn)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	older := newGoal("alice", "Older", model.GoalCategoryCareer, base)
	newer := newGoal("alice", "Newer", model.GoalCategoryHealth, base.Add(time.Hour))
	other := newGoal("bob", "Bob's", model.GoalCategoryCareer, base.Add(2*time.Hour))

	for _, g := range []*model.Goal{older, newer, other} {
		if err := repo.Create(ctx, g); err != nil {
			t.Fatalf("Create %s: %v", g.Title, err)
		}
		if g.ID == 0 {
			t.Fatalf("Create %s did not assign an id", g.Title)
		}
	}

	goals, err := repo.Goals(ctx, "alice", model.GoalFilter{})
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(goals))
	}
	if goals[0].Title != "Newer" || goals[1].Title != "Older" {
		t.Errorf("order = %q, %q; want newest first", goals[0].Title, goals[1].Title)
	}

	goals, err = repo.Goals(ctx, "alice", model.GoalFilter{Category: model.GoalCategoryCareer})
	if err != nil {
		t.Fatalf("Goals by category: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "Older" {
		t.Errorf("category filter returned %v", goals)
	}

	goals, err = repo.Goals(ctx, "alice", model.GoalFilter{IsCompleted: ptr(true)})
	if err != nil {
		t.Fatalf("Goals by completion: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("expected no completed goals, got %d", len(goals))
	}

	goals, err = repo.Goals(ctx, "carol", model.GoalFilter{})
	if err != nil {
		t.Fatalf("Goals for unknown user: %v", err)
	}
	if goals == nil || len(goals) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", goals)
	}
}

func TestGoalRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.New(t)
	dbtest.CreateUser(t, conn, "alice")
	dbtest.CreateUser(t, conn, "bob")
	repo := NewGoalRepository(conn)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	goal := newGoal("alice", "Update Resume", model.GoalCategoryCareer, time.Now())
	goal.Priority = model.GoalPriorityHigh
	goal.DueDate = &due
	if err := repo.Create(ctx, goal); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Update(ctx, "alice", goal.ID, model.GoalPatch{IsCompleted: ptr(true)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated == nil {
		t.Fatal("Update returned nil for an owned goal")
	}
	if !updated.IsCompleted {
		t.Error("isCompleted not applied")
	}
	if updated.Title != "Update Resume" || updated.Category != model.GoalCategoryCareer || updated.Priority != model.GoalPriorityHigh {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("due date changed: %v", updated.DueDate)
	}

	foreign, err := repo.Update(ctx, "bob", goal.ID, model.GoalPatch{Title: ptr("hijacked")})
	if err != nil {
		t.Fatalf("Update as other user: %v", err)
	}
	if foreign != nil {
		t.Fatal("another user's goal must not be updated")
	}

	missing, err := repo.Update(ctx, "alice", 9999, model.GoalPatch{Title: ptr("nothing")})
	if err != nil || missing != nil {
		t.Fatalf("Update missing = %v, %v; want nil, nil", missing, err)
	}

	same, err := repo.Update(ctx, "alice", goal.ID, model.GoalPatch{})
	if err != nil || same == nil || same.ID != goal.ID {
		t.Fatalf("empty patch = %v, %v; want the stored goal", same, err)
	}

	stored, err := repo.ByID(ctx, "alice", goal.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Title != "Update Resume" {
		t.Errorf("title = %q after foreign update", stored.Title)
	}
}

func TestGoalRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.New(t)
	dbtest.CreateUser(t, conn, "alice")
	dbtest.CreateUser(t, conn, "bob")
	repo := NewGoalRepository(conn)

	goal := newGoal("alice", "Run", model.GoalCategoryHealth, time.Now())
	if err := repo.Create(ctx, goal); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, "bob", goal.ID); err != nil {
		t.Fatalf("Delete as other user: %v", err)
	}
	if g, _ := repo.ByID(ctx, "alice", goal.ID); g == nil {
		t.Fatal("goal deleted by another user")
	}

	if err := repo.Delete(ctx, "alice", goal.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "alice", goal.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	g, err := repo.ByID(ctx, "alice", goal.ID)
	if err != nil || g != nil {
		t.Fatalf("ByID after delete = %v, %v; want nil, nil", g, err)
	}
}
