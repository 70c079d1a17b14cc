package repositories

import (
	"context"
	"errors"

	"warga-daily/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SettingsCollection = "site_settings"
	weeklyPicksDocID   = "weekly_picks"
)

type SettingsRepository interface {
	GetWeeklyPicks(ctx context.Context) (*models.WeeklyPicks, error)
	// SetWeeklyPicks overwrites the singleton document entirely.
	// Last write wins; there is no merge with a concurrent editor.
	SetWeeklyPicks(ctx context.Context, picks models.WeeklyPicks) error
}

type settingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) SettingsRepository {
	return &settingsRepository{coll: db.Collection(SettingsCollection)}
}

func (r *settingsRepository) GetWeeklyPicks(ctx context.Context) (*models.WeeklyPicks, error) {
	var picks models.WeeklyPicks
	err := r.coll.FindOne(ctx, bson.M{"_id": weeklyPicksDocID}).Decode(&picks)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &picks, nil
}

func (r *settingsRepository) SetWeeklyPicks(ctx context.Context, picks models.WeeklyPicks) error {
	doc := bson.M{
		"featured_article_ids": picks.FeaturedArticleIDs,
		"editor_note":          picks.EditorNote,
		"updated_at":           picks.UpdatedAt,
	}
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": weeklyPicksDocID},
		doc,
		options.Replace().SetUpsert(true))
	return err
}
