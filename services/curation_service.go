package services

import (
	"context"
	"fmt"
	"time"

	"warga-daily/models"
	"warga-daily/repositories"

	"go.uber.org/zap"
)

type CurationService interface {
	Get(ctx context.Context) (*models.WeeklyPicks, error)
	Set(ctx context.Context, actor *models.UserProfile, ids []string, note string) (*models.WeeklyPicks, error)
	Homepage(ctx context.Context) (*models.HomeFeed, error)
}

type curationService struct {
	articleRepo  repositories.ArticleRepository
	settingsRepo repositories.SettingsRepository
	logger       *zap.Logger
}

func NewCurationService(articleRepo repositories.ArticleRepository, settingsRepo repositories.SettingsRepository, logger *zap.Logger) CurationService {
	return &curationService{
		articleRepo:  articleRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (s *curationService) Get(ctx context.Context) (*models.WeeklyPicks, error) {
	return s.settingsRepo.GetWeeklyPicks(ctx)
}

// Set replaces the weekly picks as one domain operation: overwrite the
// singleton, flag the newly selected articles, and clear the flag on
// articles that fell out of the selection. The store offers no
// multi-document transaction, so the writes run in order and any failure is
// reported to the caller instead of rolled back; re-running Set with the
// same arguments converges the flags.
func (s *curationService) Set(ctx context.Context, actor *models.UserProfile, ids []string, note string) (*models.WeeklyPicks, error) {
	if !actor.Role.IsEditor() {
		return nil, ErrForbidden
	}
	if len(ids) > models.MaxWeeklyPicks {
		return nil, ErrTooManyPicks
	}

	resolved, err := s.articleRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(resolved) != len(ids) {
		return nil, ErrUnpublishedPick
	}

	previous, err := s.settingsRepo.GetWeeklyPicks(ctx)
	if err != nil {
		return nil, err
	}

	picks := models.WeeklyPicks{
		FeaturedArticleIDs: ids,
		EditorNote:         note,
		UpdatedAt:          time.Now().UTC(),
	}
	if err := s.settingsRepo.SetWeeklyPicks(ctx, picks); err != nil {
		return nil, err
	}

	if err := s.articleRepo.SetWeeklyPickFlag(ctx, ids, true); err != nil {
		return nil, fmt.Errorf("picks saved but flagging selected articles failed: %w", err)
	}

	var stale []string
	if previous != nil {
		stale = difference(previous.FeaturedArticleIDs, ids)
	}
	if err := s.articleRepo.SetWeeklyPickFlag(ctx, stale, false); err != nil {
		return nil, fmt.Errorf("picks saved but clearing stale flags failed: %w", err)
	}

	s.logger.Info("weekly picks updated",
		zap.Strings("article_ids", ids),
		zap.String("editor_id", actor.UID))
	return &picks, nil
}

// difference returns the ids in prev that are absent from current.
func difference(prev, current []string) []string {
	keep := make(map[string]struct{}, len(current))
	for _, id := range current {
		keep[id] = struct{}{}
	}
	out := []string{}
	for _, id := range prev {
		if _, ok := keep[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Homepage resolves the landing feed. A non-empty pick list is resolved in
// curated order; otherwise the published feed is used. The first article
// becomes the hero, the rest the grid.
func (s *curationService) Homepage(ctx context.Context) (*models.HomeFeed, error) {
	feed := &models.HomeFeed{Grid: []models.Article{}}

	var articles []models.Article
	picks, err := s.settingsRepo.GetWeeklyPicks(ctx)
	if err != nil {
		return nil, err
	}
	if picks != nil && len(picks.FeaturedArticleIDs) > 0 {
		articles, err = s.articleRepo.ListByIDs(ctx, picks.FeaturedArticleIDs)
		if err != nil {
			return nil, err
		}
		feed.EditorNote = picks.EditorNote
	}
	if len(articles) == 0 {
		feed.EditorNote = ""
		articles, err = s.articleRepo.ListPublished(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(articles) > 0 {
		feed.Hero = &articles[0]
		feed.Grid = articles[1:]
	}
	return feed, nil
}
