package model

import (
	"time"
)

const (
	ResourceTypeTip               = "tip"
	ResourceTypeArticle           = "article"
	ResourceTypeInterviewQuestion = "interview_question"
	ResourceTypeTemplate          = "template"
)

const (
	ResourceCategoryOrganization = "organization"
	ResourceCategoryInterview    = "interview"
	ResourceCategoryWorkplace    = "workplace"
	ResourceCategoryStudy        = "study"
)

var (
	ResourceTypes      = []string{ResourceTypeTip, ResourceTypeArticle, ResourceTypeInterviewQuestion, ResourceTypeTemplate}
	ResourceCategories = []string{ResourceCategoryOrganization, ResourceCategoryInterview, ResourceCategoryWorkplace, ResourceCategoryStudy}
)

// Resource is curated content readable by everyone. Content is markdown.
type Resource struct {
	ID        int64       `db:"id" json:"id"`
	Title     string      `db:"title" json:"title"`
	Content   string      `db:"content" json:"content"`
	Type      string      `db:"type" json:"type"`
	Category  string      `db:"category" json:"category"`
	Tags      StringArray `db:"tags" json:"tags"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`

	// Computed fields (not in database)
	HTML string `db:"-" json:"html,omitempty"`
}

type ResourceFilter struct {
	Category string
	Type     string
	Search   string
}
