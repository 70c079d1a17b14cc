package models

import "time"

type RegisterRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=3,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string      `json:"token"`
	Profile UserProfile `json:"profile"`
}

// ArticleDraft carries the caller-supplied parts of a new article.
// Everything omitted gets a default at creation.
type ArticleDraft struct {
	Meta         *ArticleMeta        `json:"meta"`
	Content      *ArticleContent     `json:"content"`
	Bibliography []BibliographyEntry `json:"bibliography"`
}

// Patch structs use pointers so "leave untouched" (nil) and "replace with
// this value, even if empty" (non-nil) stay distinguishable. The original
// web client skipped falsy values, which made clearing a string impossible.

type MetaPatch struct {
	Slug            *string   `json:"slug"`
	Title           *string   `json:"title"`
	Subtitle        *string   `json:"subtitle"`
	CoverImage      *string   `json:"cover_image"`
	Tags            *[]string `json:"tags"`
	ReadTimeMinutes *int      `json:"read_time_minutes"`
}

type ContentPatch struct {
	Body              *string `json:"body"`
	IsLocked          *bool   `json:"is_locked"`
	LockCTAText       *string `json:"lock_cta_text"`
	LinkedModuleID    *string `json:"linked_module_id"`
	LinkedSubModuleID *string `json:"linked_sub_module_id"`
}

type EditorialPatch struct {
	AuthorName      *string        `json:"author_name"`
	Status          *ArticleStatus `json:"status"`
	ReviewerID      *string        `json:"reviewer_id"`
	RejectionReason *string        `json:"rejection_reason"`
	// PublishedAt is stamped by the workflow service on first publish.
	// Request bodies cannot supply it.
	PublishedAt *time.Time `json:"-"`
}

type ArticlePatch struct {
	Meta         *MetaPatch           `json:"meta"`
	Content      *ContentPatch        `json:"content"`
	Editorial    *EditorialPatch      `json:"editorial"`
	Bibliography *[]BibliographyEntry `json:"bibliography"`
}

// IsZero reports whether the patch would touch nothing.
func (p ArticlePatch) IsZero() bool {
	return p.Meta == nil && p.Content == nil && p.Editorial == nil && p.Bibliography == nil
}

type UpdateStatusRequest struct {
	Status          ArticleStatus `json:"status" binding:"required"`
	RejectionReason string        `json:"rejection_reason"`
}

type SetWeeklyPicksRequest struct {
	ArticleIDs []string `json:"article_ids" binding:"max=3"`
	EditorNote string   `json:"editor_note"`
}

type ArticleListParams struct {
	AuthorID string `form:"author_id"`
	Status   string `form:"status"`
}

// ProfileOverrides are optional fields merged into the profile during sync.
type ProfileOverrides struct {
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
	Bio         *string `json:"bio"`
}

// HomeFeed is the landing page payload: hero + grid resolved from weekly
// picks, falling back to the published feed.
type HomeFeed struct {
	Hero       *Article  `json:"hero"`
	Grid       []Article `json:"grid"`
	EditorNote string    `json:"editor_note,omitempty"`
}
