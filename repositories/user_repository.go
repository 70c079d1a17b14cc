package repositories

import (
	"context"
	"errors"
	"time"

	"warga-daily/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const UsersCollection = "users_collection"

type UserRepository interface {
	// Sync creates the profile on first sign-in (role contributor) or
	// refreshes last_login_at and merges overrides on later ones.
	Sync(ctx context.Context, user models.AuthUser, overrides *models.ProfileOverrides) (*models.UserProfile, error)
	GetByID(ctx context.Context, uid string) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
}

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

func (r *userRepository) Sync(ctx context.Context, user models.AuthUser, overrides *models.ProfileOverrides) (*models.UserProfile, error) {
	existing, err := r.GetByID(ctx, user.UID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if existing == nil {
		profile := newContributorProfile(user, overrides, now)
		if _, err := r.coll.InsertOne(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	set := bson.M{"last_login_at": now}
	applyOverrides(set, overrides)
	if _, err := r.coll.UpdateByID(ctx, user.UID, bson.M{"$set": set}); err != nil {
		return nil, err
	}

	// Returned profile is rebuilt from the pre-update snapshot plus the
	// overrides, not re-read from the store. A concurrent write can make
	// it diverge from what the store now holds.
	existing.LastLoginAt = now
	mergeOverrides(existing, overrides)
	return existing, nil
}

func newContributorProfile(user models.AuthUser, overrides *models.ProfileOverrides, now time.Time) *models.UserProfile {
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
	mergeOverrides(profile, overrides)
	return profile
}

func applyOverrides(set bson.M, overrides *models.ProfileOverrides) {
	if overrides == nil {
		return
	}
	if overrides.DisplayName != nil {
		set["display_name"] = *overrides.DisplayName
	}
	if overrides.PhotoURL != nil {
		set["photo_url"] = *overrides.PhotoURL
	}
	if overrides.Bio != nil {
		set["bio"] = *overrides.Bio
	}
}

func mergeOverrides(profile *models.UserProfile, overrides *models.ProfileOverrides) {
	if overrides == nil {
		return
	}
	if overrides.DisplayName != nil {
		profile.DisplayName = *overrides.DisplayName
	}
	if overrides.PhotoURL != nil {
		profile.PhotoURL = *overrides.PhotoURL
	}
	if overrides.Bio != nil {
		profile.Bio = *overrides.Bio
	}
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	_, err := r.coll.InsertOne(ctx, profile)
	return err
}
