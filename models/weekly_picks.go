package models

import "time"

// WeeklyPicks is the singleton curation document under site_settings.
// The id order is the curated display order and must be preserved as-is.
type WeeklyPicks struct {
	FeaturedArticleIDs []string  `json:"featured_article_ids" bson:"featured_article_ids"`
	EditorNote         string    `json:"editor_note" bson:"editor_note"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}

const MaxWeeklyPicks = 3
