package repositories

import (
	"context"
	"errors"
	"time"

	"warga-daily/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ArticlesCollection = "articles_collection"

// ArticleRepository is a thin request/response wrapper over the articles
// collection. It holds no state and enforces no authorization: ownership and
// role checks live in the service layer, and callers of Delete get a hard,
// irreversible delete regardless of who they are.
type ArticleRepository interface {
	Create(ctx context.Context, authorID, authorName string, draft models.ArticleDraft) (string, error)
	Update(ctx context.Context, id string, patch models.ArticlePatch) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListByAuthor(ctx context.Context, authorID string, status models.ArticleStatus) ([]models.Article, error)
	ListPublished(ctx context.Context) ([]models.Article, error)
	ListByAuthorPublic(ctx context.Context, authorID string) ([]models.Article, error)
	ListByTag(ctx context.Context, tag string) ([]models.Article, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Article, error)
	Delete(ctx context.Context, id string) error
	SetWeeklyPickFlag(ctx context.Context, ids []string, picked bool) error
	IncrementViews(ctx context.Context, id string) error
	IncrementAppClicks(ctx context.Context, id string) error
}

type articleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) ArticleRepository {
	return &articleRepository{coll: db.Collection(ArticlesCollection)}
}

func (r *articleRepository) Create(ctx context.Context, authorID, authorName string, draft models.ArticleDraft) (string, error) {
	article := newDraftArticle(authorID, authorName, draft, time.Now().UTC())

	res, err := r.coll.InsertOne(ctx, article)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// newDraftArticle fills defaults for every field the caller left out.
func newDraftArticle(authorID, authorName string, draft models.ArticleDraft, now time.Time) models.Article {
	article := models.Article{
		Meta: models.ArticleMeta{
			Title: "Untitled Draft",
			Tags:  []string{},
		},
		Editorial: models.ArticleEditorial{
			AuthorID:    authorID,
			AuthorName:  authorName,
			Status:      models.StatusDraft,
			CreatedAt:   now,
			UpdatedAt:   now,
			PublishedAt: nil,
		},
		Bibliography: []models.BibliographyEntry{},
		Metrics:      models.ArticleMetrics{},
	}

	if draft.Meta != nil {
		if draft.Meta.Title != "" {
			article.Meta.Title = draft.Meta.Title
		}
		article.Meta.Slug = draft.Meta.Slug
		article.Meta.Subtitle = draft.Meta.Subtitle
		article.Meta.CoverImage = draft.Meta.CoverImage
		article.Meta.ReadTimeMinutes = draft.Meta.ReadTimeMinutes
		if draft.Meta.Tags != nil {
			article.Meta.Tags = draft.Meta.Tags
		}
	}
	if draft.Content != nil {
		article.Content = *draft.Content
	}
	if draft.Bibliography != nil {
		article.Bibliography = draft.Bibliography
	}
	return article
}

func (r *articleRepository) Update(ctx context.Context, id string, patch models.ArticlePatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	set := buildUpdateDoc(patch, time.Now().UTC())
	if len(set) == 0 {
		return nil
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	return err
}

// buildUpdateDoc flattens a patch into dot-path assignments so untouched
// sibling fields survive the update. A nil pointer means "leave alone"; a
// non-nil pointer replaces, including replacement with an empty value.
// Touching editorial always refreshes editorial.updated_at.
func buildUpdateDoc(patch models.ArticlePatch, now time.Time) bson.M {
	set := bson.M{}

	if m := patch.Meta; m != nil {
		setIf(set, "meta.slug", m.Slug)
		setIf(set, "meta.title", m.Title)
		setIf(set, "meta.subtitle", m.Subtitle)
		setIf(set, "meta.cover_image", m.CoverImage)
		setIf(set, "meta.read_time_minutes", m.ReadTimeMinutes)
		if m.Tags != nil {
			set["meta.tags"] = *m.Tags
		}
	}

	if c := patch.Content; c != nil {
		setIf(set, "content.body", c.Body)
		setIf(set, "content.is_locked", c.IsLocked)
		setIf(set, "content.lock_cta_text", c.LockCTAText)
		setIf(set, "content.linked_module_id", c.LinkedModuleID)
		setIf(set, "content.linked_sub_module_id", c.LinkedSubModuleID)
	}

	if e := patch.Editorial; e != nil {
		setIf(set, "editorial.author_name", e.AuthorName)
		setIf(set, "editorial.reviewer_id", e.ReviewerID)
		setIf(set, "editorial.rejection_reason", e.RejectionReason)
		if e.Status != nil {
			set["editorial.status"] = *e.Status
		}
		if e.PublishedAt != nil {
			set["editorial.published_at"] = *e.PublishedAt
		}
		set["editorial.updated_at"] = now
	}

	if patch.Bibliography != nil {
		set["bibliography"] = *patch.Bibliography
	}

	return set
}

func setIf[T any](set bson.M, path string, v *T) {
	if v != nil {
		set[path] = *v
	}
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	// Duplicate slugs are possible; take the most recently published one.
	opts := options.FindOne().SetSort(bson.D{{Key: "editorial.published_at", Value: -1}})
	return r.findOne(ctx, bson.M{
		"meta.slug":        slug,
		"editorial.status": models.StatusPublished,
	}, opts)
}

func (r *articleRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*models.Article, error) {
	var article models.Article
	var err error
	if opts != nil {
		err = r.coll.FindOne(ctx, filter, opts).Decode(&article)
	} else {
		err = r.coll.FindOne(ctx, filter).Decode(&article)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListByAuthor(ctx context.Context, authorID string, status models.ArticleStatus) ([]models.Article, error) {
	filter := bson.M{}
	if authorID != "" {
		filter["editorial.author_id"] = authorID
	}
	if status != "" {
		filter["editorial.status"] = status
	}
	return r.find(ctx, filter, bson.D{{Key: "editorial.created_at", Value: -1}})
}

func (r *articleRepository) ListPublished(ctx context.Context) ([]models.Article, error) {
	return r.find(ctx,
		bson.M{"editorial.status": models.StatusPublished},
		bson.D{{Key: "editorial.published_at", Value: -1}})
}

func (r *articleRepository) ListByAuthorPublic(ctx context.Context, authorID string) ([]models.Article, error) {
	return r.find(ctx, bson.M{
		"editorial.author_id": authorID,
		"editorial.status":    models.StatusPublished,
	}, bson.D{{Key: "editorial.published_at", Value: -1}})
}

func (r *articleRepository) ListByTag(ctx context.Context, tag string) ([]models.Article, error) {
	// Exact, case-sensitive membership test against the tags array.
	return r.find(ctx, bson.M{
		"meta.tags":        tag,
		"editorial.status": models.StatusPublished,
	}, bson.D{{Key: "editorial.published_at", Value: -1}})
}

func (r *articleRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Article, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []models.Article{}, nil
	}

	found, err := r.find(ctx, bson.M{
		"_id":              bson.M{"$in": oids},
		"editorial.status": models.StatusPublished,
	}, nil)
	if err != nil {
		return nil, err
	}
	return orderByIDs(found, ids), nil
}

// orderByIDs re-sorts a query result into the caller's id order. The store
// does not guarantee $in result ordering. Ids with no matching published
// document are dropped silently.
func orderByIDs(articles []models.Article, ids []string) []models.Article {
	byID := make(map[string]models.Article, len(articles))
	for _, a := range articles {
		byID[a.ID.Hex()] = a
	}
	ordered := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered
}

func (r *articleRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Article, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	articles := []models.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *articleRepository) SetWeeklyPickFlag(ctx context.Context, ids []string, picked bool) error {
	if len(ids) == 0 {
		return nil
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{"editorial.is_weekly_pick": picked}})
	return err
}

func (r *articleRepository) IncrementViews(ctx context.Context, id string) error {
	return r.increment(ctx, id, "metrics.views")
}

func (r *articleRepository) IncrementAppClicks(ctx context.Context, id string) error {
	return r.increment(ctx, id, "metrics.app_clicks")
}

func (r *articleRepository) increment(ctx context.Context, id, field string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{field: 1}})
	return err
}
