package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"warga-daily/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeArticleRepo mimics the document store in memory, including the query
// semantics the services rely on: published-only filters, sort orders, and
// the caller-order guarantee of ListByIDs.
type fakeArticleRepo struct {
	articles map[string]*models.Article
	failFlag bool // next SetWeeklyPickFlag call fails
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: map[string]*models.Article{}}
}

func (f *fakeArticleRepo) put(a models.Article) string {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	id := a.ID.Hex()
	f.articles[id] = &a
	return id
}

func (f *fakeArticleRepo) Create(ctx context.Context, authorID, authorName string, draft models.ArticleDraft) (string, error) {
	now := time.Now().UTC()
	a := models.Article{
		ID: primitive.NewObjectID(),
		Meta: models.ArticleMeta{
			Title: "Untitled Draft",
			Tags:  []string{},
		},
		Editorial: models.ArticleEditorial{
			AuthorID:   authorID,
			AuthorName: authorName,
			Status:     models.StatusDraft,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		Bibliography: []models.BibliographyEntry{},
	}
	if draft.Meta != nil {
		if draft.Meta.Title != "" {
			a.Meta.Title = draft.Meta.Title
		}
		if draft.Meta.Tags != nil {
			a.Meta.Tags = draft.Meta.Tags
		}
		a.Meta.Slug = draft.Meta.Slug
	}
	if draft.Content != nil {
		a.Content = *draft.Content
	}
	if draft.Bibliography != nil {
		a.Bibliography = draft.Bibliography
	}
	id := a.ID.Hex()
	f.articles[id] = &a
	return id, nil
}

func (f *fakeArticleRepo) Update(ctx context.Context, id string, patch models.ArticlePatch) error {
	a, ok := f.articles[id]
	if !ok {
		return fmt.Errorf("no document %s", id)
	}
	if m := patch.Meta; m != nil {
		if m.Slug != nil {
			a.Meta.Slug = *m.Slug
		}
		if m.Title != nil {
			a.Meta.Title = *m.Title
		}
		if m.Subtitle != nil {
			a.Meta.Subtitle = *m.Subtitle
		}
		if m.CoverImage != nil {
			a.Meta.CoverImage = *m.CoverImage
		}
		if m.Tags != nil {
			a.Meta.Tags = *m.Tags
		}
		if m.ReadTimeMinutes != nil {
			a.Meta.ReadTimeMinutes = *m.ReadTimeMinutes
		}
	}
	if c := patch.Content; c != nil {
		if c.Body != nil {
			a.Content.Body = *c.Body
		}
		if c.IsLocked != nil {
			a.Content.IsLocked = *c.IsLocked
		}
		if c.LockCTAText != nil {
			a.Content.LockCTAText = *c.LockCTAText
		}
		if c.LinkedModuleID != nil {
			a.Content.LinkedModuleID = *c.LinkedModuleID
		}
		if c.LinkedSubModuleID != nil {
			a.Content.LinkedSubModuleID = *c.LinkedSubModuleID
		}
	}
	if e := patch.Editorial; e != nil {
		if e.AuthorName != nil {
			a.Editorial.AuthorName = *e.AuthorName
		}
		if e.Status != nil {
			a.Editorial.Status = *e.Status
		}
		if e.ReviewerID != nil {
			a.Editorial.ReviewerID = *e.ReviewerID
		}
		if e.RejectionReason != nil {
			a.Editorial.RejectionReason = *e.RejectionReason
		}
		if e.PublishedAt != nil {
			t := *e.PublishedAt
			a.Editorial.PublishedAt = &t
		}
		a.Editorial.UpdatedAt = time.Now().UTC()
	}
	if patch.Bibliography != nil {
		a.Bibliography = *patch.Bibliography
	}
	return nil
}

func (f *fakeArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArticleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var best *models.Article
	for _, a := range f.articles {
		if a.Meta.Slug != slug || a.Editorial.Status != models.StatusPublished {
			continue
		}
		if best == nil || laterPublished(a, best) {
			best = a
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func laterPublished(a, b *models.Article) bool {
	if a.Editorial.PublishedAt == nil {
		return false
	}
	if b.Editorial.PublishedAt == nil {
		return true
	}
	return a.Editorial.PublishedAt.After(*b.Editorial.PublishedAt)
}

func (f *fakeArticleRepo) ListByAuthor(ctx context.Context, authorID string, status models.ArticleStatus) ([]models.Article, error) {
	out := []models.Article{}
	for _, a := range f.articles {
		if authorID != "" && a.Editorial.AuthorID != authorID {
			continue
		}
		if status != "" && a.Editorial.Status != status {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Editorial.CreatedAt.After(out[j].Editorial.CreatedAt)
	})
	return out, nil
}

func (f *fakeArticleRepo) listPublishedWhere(match func(*models.Article) bool) []models.Article {
	out := []models.Article{}
	for _, a := range f.articles {
		if a.Editorial.Status != models.StatusPublished {
			continue
		}
		if match != nil && !match(a) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := &out[i], &out[j]
		return laterPublished(ai, aj)
	})
	return out
}

func (f *fakeArticleRepo) ListPublished(ctx context.Context) ([]models.Article, error) {
	return f.listPublishedWhere(nil), nil
}

func (f *fakeArticleRepo) ListByAuthorPublic(ctx context.Context, authorID string) ([]models.Article, error) {
	return f.listPublishedWhere(func(a *models.Article) bool {
		return a.Editorial.AuthorID == authorID
	}), nil
}

func (f *fakeArticleRepo) ListByTag(ctx context.Context, tag string) ([]models.Article, error) {
	return f.listPublishedWhere(func(a *models.Article) bool {
		for _, t := range a.Meta.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}), nil
}

func (f *fakeArticleRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Article, error) {
	out := []models.Article{}
	for _, id := range ids {
		a, ok := f.articles[id]
		if !ok || a.Editorial.Status != models.StatusPublished {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeArticleRepo) Delete(ctx context.Context, id string) error {
	delete(f.articles, id)
	return nil
}

func (f *fakeArticleRepo) SetWeeklyPickFlag(ctx context.Context, ids []string, picked bool) error {
	if f.failFlag {
		f.failFlag = false
		return fmt.Errorf("write failed")
	}
	for _, id := range ids {
		if a, ok := f.articles[id]; ok {
			a.Editorial.IsWeeklyPick = picked
		}
	}
	return nil
}

func (f *fakeArticleRepo) IncrementViews(ctx context.Context, id string) error {
	if a, ok := f.articles[id]; ok {
		a.Metrics.Views++
	}
	return nil
}

func (f *fakeArticleRepo) IncrementAppClicks(ctx context.Context, id string) error {
	if a, ok := f.articles[id]; ok {
		a.Metrics.AppClicks++
	}
	return nil
}

// fakeSettingsRepo holds the weekly picks singleton.
type fakeSettingsRepo struct {
	picks *models.WeeklyPicks
}

func (f *fakeSettingsRepo) GetWeeklyPicks(ctx context.Context) (*models.WeeklyPicks, error) {
	if f.picks == nil {
		return nil, nil
	}
	cp := *f.picks
	return &cp, nil
}

func (f *fakeSettingsRepo) SetWeeklyPicks(ctx context.Context, picks models.WeeklyPicks) error {
	f.picks = &picks
	return nil
}

// fakeUserRepo replicates the sync contract over a map.
type fakeUserRepo struct {
	users map[string]*models.UserProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.UserProfile{}}
}

func (f *fakeUserRepo) Sync(ctx context.Context, user models.AuthUser, overrides *models.ProfileOverrides) (*models.UserProfile, error) {
	now := time.Now().UTC()
	existing, ok := f.users[user.UID]
	if !ok {
		name := user.DisplayName
		if overrides != nil && overrides.DisplayName != nil {
			name = *overrides.DisplayName
		}
		if name == "" {
			name = "Warga Baru"
		}
		profile := &models.UserProfile{
			UID:         user.UID,
			Email:       user.Email,
			DisplayName: name,
			PhotoURL:    user.PhotoURL,
			Role:        models.RoleContributor,
			CreatedAt:   now,
			LastLoginAt: now,
		}
		if overrides != nil && overrides.Bio != nil {
			profile.Bio = *overrides.Bio
		}
		f.users[user.UID] = profile
		cp := *profile
		return &cp, nil
	}

	existing.LastLoginAt = now
	if overrides != nil {
		if overrides.DisplayName != nil {
			existing.DisplayName = *overrides.DisplayName
		}
		if overrides.PhotoURL != nil {
			existing.PhotoURL = *overrides.PhotoURL
		}
		if overrides.Bio != nil {
			existing.Bio = *overrides.Bio
		}
	}
	cp := *existing
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	p, ok := f.users[uid]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	for _, p := range f.users {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, profile *models.UserProfile) error {
	f.users[profile.UID] = profile
	return nil
}
