package services

import (
	"context"
	"time"

	"warga-daily/models"
	"warga-daily/repositories"

	"go.uber.org/zap"
)

type ArticleService interface {
	Create(ctx context.Context, actor *models.UserProfile, draft models.ArticleDraft) (string, error)
	Get(ctx context.Context, actor *models.UserProfile, id string) (*models.Article, error)
	List(ctx context.Context, actor *models.UserProfile, params models.ArticleListParams) ([]models.Article, error)
	Update(ctx context.Context, actor *models.UserProfile, id string, patch models.ArticlePatch) error
	SubmitForReview(ctx context.Context, actor *models.UserProfile, id string) error
	Review(ctx context.Context, actor *models.UserProfile, id string, req models.UpdateStatusRequest) error
	Delete(ctx context.Context, actor *models.UserProfile, id string) error

	// Public reads: published articles only, no actor required.
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListPublished(ctx context.Context) ([]models.Article, error)
	ListByTag(ctx context.Context, tag string) ([]models.Article, error)
	ListByAuthorPublic(ctx context.Context, authorID string) ([]models.Article, error)
	RecordView(ctx context.Context, id string) error
	RecordAppClick(ctx context.Context, id string) error
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	logger      *zap.Logger
}

func NewArticleService(articleRepo repositories.ArticleRepository, logger *zap.Logger) ArticleService {
	return &articleService{articleRepo: articleRepo, logger: logger}
}

// CanTransition encodes the editorial state machine. Editors (admin/staff)
// may move an article between any two states; authors may only submit a
// draft for review or resubmit a rejected one. The check is advisory: the
// repository beneath performs no authorization of its own.
func CanTransition(role models.UserRole, isAuthor bool, from, to models.ArticleStatus) bool {
	if role.IsEditor() {
		return true
	}
	if !isAuthor {
		return false
	}
	switch {
	case from == models.StatusDraft && to == models.StatusPendingReview:
		return true
	case from == models.StatusRejected && to == models.StatusPendingReview:
		return true
	}
	return false
}

func (s *articleService) Create(ctx context.Context, actor *models.UserProfile, draft models.ArticleDraft) (string, error) {
	id, err := s.articleRepo.Create(ctx, actor.UID, actor.DisplayName, draft)
	if err != nil {
		return "", err
	}
	s.logger.Info("article created",
		zap.String("article_id", id),
		zap.String("author_id", actor.UID))
	return id, nil
}

func (s *articleService) Get(ctx context.Context, actor *models.UserProfile, id string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	if !actor.Role.IsEditor() && article.Editorial.AuthorID != actor.UID {
		return nil, ErrForbidden
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context, actor *models.UserProfile, params models.ArticleListParams) ([]models.Article, error) {
	// Contributors only ever see their own articles; the unfiltered
	// cross-author listing is reserved for admin/staff.
	if !actor.Role.IsEditor() {
		params.AuthorID = actor.UID
	}
	return s.articleRepo.ListByAuthor(ctx, params.AuthorID, models.ArticleStatus(params.Status))
}

func (s *articleService) Update(ctx context.Context, actor *models.UserProfile, id string, patch models.ArticlePatch) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrNotFound
	}
	if !actor.Role.IsEditor() && article.Editorial.AuthorID != actor.UID {
		return ErrForbidden
	}

	if patch.Editorial != nil && patch.Editorial.Status != nil {
		target := *patch.Editorial.Status
		if !target.Valid() {
			return ErrInvalidTransition
		}
		isAuthor := article.Editorial.AuthorID == actor.UID
		if !CanTransition(actor.Role, isAuthor, article.Editorial.Status, target) {
			return ErrInvalidTransition
		}
		stampFirstPublish(article, patch.Editorial, target)
	}

	if patch.IsZero() {
		return nil
	}
	return s.articleRepo.Update(ctx, id, patch)
}

// stampFirstPublish attaches published_at when an article enters published
// for the first time. Later transitions never clear it, so the field records
// first-publish time rather than current state.
func stampFirstPublish(article *models.Article, patch *models.EditorialPatch, target models.ArticleStatus) {
	if target == models.StatusPublished && article.Editorial.PublishedAt == nil {
		now := time.Now().UTC()
		patch.PublishedAt = &now
	}
}

func (s *articleService) SubmitForReview(ctx context.Context, actor *models.UserProfile, id string) error {
	status := models.StatusPendingReview
	return s.Update(ctx, actor, id, models.ArticlePatch{
		Editorial: &models.EditorialPatch{Status: &status},
	})
}

func (s *articleService) Review(ctx context.Context, actor *models.UserProfile, id string, req models.UpdateStatusRequest) error {
	if !actor.Role.IsEditor() {
		return ErrForbidden
	}
	patch := models.ArticlePatch{
		Editorial: &models.EditorialPatch{
			Status:     &req.Status,
			ReviewerID: &actor.UID,
		},
	}
	if req.Status == models.StatusRejected {
		patch.Editorial.RejectionReason = &req.RejectionReason
	}
	return s.Update(ctx, actor, id, patch)
}

func (s *articleService) Delete(ctx context.Context, actor *models.UserProfile, id string) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrNotFound
	}
	if !actor.Role.IsEditor() && article.Editorial.AuthorID != actor.UID {
		return ErrForbidden
	}
	// Hard delete. The repository does not check ownership; this service
	// check is the only guard.
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("article deleted",
		zap.String("article_id", id),
		zap.String("actor_id", actor.UID))
	return nil
}

func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

func (s *articleService) ListPublished(ctx context.Context) ([]models.Article, error) {
	return s.articleRepo.ListPublished(ctx)
}

func (s *articleService) ListByTag(ctx context.Context, tag string) ([]models.Article, error) {
	return s.articleRepo.ListByTag(ctx, tag)
}

func (s *articleService) ListByAuthorPublic(ctx context.Context, authorID string) ([]models.Article, error) {
	return s.articleRepo.ListByAuthorPublic(ctx, authorID)
}

func (s *articleService) RecordView(ctx context.Context, id string) error {
	return s.articleRepo.IncrementViews(ctx, id)
}

func (s *articleService) RecordAppClick(ctx context.Context, id string) error {
	return s.articleRepo.IncrementAppClicks(ctx, id)
}
