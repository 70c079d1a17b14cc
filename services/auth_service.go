package services

import (
	"context"
	"time"

	"warga-daily/config"
	"warga-daily/models"
	"warga-daily/repositories"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &models.UserProfile{
		UID:         primitive.NewObjectID().Hex(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        models.RoleContributor,
		Password:    string(hashed),
		CreatedAt:   now,
		LastLoginAt: now,
	}
	if err := s.userRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Profile: *profile}, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	profile, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	// Refresh last_login_at through the sync path.
	synced, err := s.userRepo.Sync(ctx, models.AuthUser{
		UID:         profile.UID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		PhotoURL:    profile.PhotoURL,
	}, nil)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(synced)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, Profile: *synced}, nil
}

func (s *authService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

func (s *authService) generateToken(profile *models.UserProfile) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"uid":  profile.UID,
		"name": profile.DisplayName,
		"role": profile.Role,
		"exp":  now.Add(config.JWTExpiration).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}
