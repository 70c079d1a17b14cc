package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArticleStatus string

const (
	StatusDraft         ArticleStatus = "draft"
	StatusPendingReview ArticleStatus = "pending_review"
	StatusPublished     ArticleStatus = "published"
	StatusRejected      ArticleStatus = "rejected"
)

func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusPublished, StatusRejected:
		return true
	}
	return false
}

type ArticleMeta struct {
	Slug            string   `json:"slug" bson:"slug"`
	Title           string   `json:"title" bson:"title"`
	Subtitle        string   `json:"subtitle" bson:"subtitle"`
	CoverImage      string   `json:"cover_image" bson:"cover_image"`
	Tags            []string `json:"tags" bson:"tags"`
	ReadTimeMinutes int      `json:"read_time_minutes" bson:"read_time_minutes"`
}

// PrimaryCategory is the first tag, used as the card label. Articles created
// without tags fall back to a fixed label instead of rendering empty.
func (m ArticleMeta) PrimaryCategory() string {
	if len(m.Tags) == 0 {
		return "Umum"
	}
	return m.Tags[0]
}

type ArticleContent struct {
	Body              string `json:"body" bson:"body"`
	IsLocked          bool   `json:"is_locked" bson:"is_locked"`
	LockCTAText       string `json:"lock_cta_text,omitempty" bson:"lock_cta_text,omitempty"`
	LinkedModuleID    string `json:"linked_module_id,omitempty" bson:"linked_module_id,omitempty"`
	LinkedSubModuleID string `json:"linked_sub_module_id,omitempty" bson:"linked_sub_module_id,omitempty"`
}

type ArticleEditorial struct {
	AuthorID   string        `json:"author_id" bson:"author_id"`
	AuthorName string        `json:"author_name" bson:"author_name"`
	Status     ArticleStatus `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
	// PublishedAt records the first time the article reached published.
	// It is never cleared by later transitions.
	PublishedAt     *time.Time `json:"published_at" bson:"published_at"`
	ReviewerID      string     `json:"reviewer_id,omitempty" bson:"reviewer_id,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	IsWeeklyPick    bool       `json:"is_weekly_pick" bson:"is_weekly_pick"`
}

type BibliographyEntry struct {
	Title    string `json:"title" bson:"title"`
	Source   string `json:"source" bson:"source"`
	URL      string `json:"url" bson:"url"`
	Category string `json:"category" bson:"category"`
}

type ArticleMetrics struct {
	Views     int64 `json:"views" bson:"views"`
	AppClicks int64 `json:"app_clicks" bson:"app_clicks"`
}

type Article struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Meta         ArticleMeta         `json:"meta" bson:"meta"`
	Content      ArticleContent      `json:"content" bson:"content"`
	Editorial    ArticleEditorial    `json:"editorial" bson:"editorial"`
	Bibliography []BibliographyEntry `json:"bibliography" bson:"bibliography"`
	Metrics      ArticleMetrics      `json:"metrics" bson:"metrics"`
}

// AppLink builds the companion-app deep link for locked content.
// Scheme: wargaplus://open/module/{moduleId}[/{subModuleId}]
func (a *Article) AppLink() string {
	if a.Content.LinkedModuleID == "" {
		return ""
	}
	link := "wargaplus://open/module/" + a.Content.LinkedModuleID
	if a.Content.LinkedSubModuleID != "" {
		link += "/" + a.Content.LinkedSubModuleID
	}
	return link
}
