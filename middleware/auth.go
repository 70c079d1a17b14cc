package middleware

import (
	"strings"

	"warga-daily/config"
	"warga-daily/helper"
	"warga-daily/models"
	"warga-daily/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var HTTPHelper = &helper.HTTPHelper{}

const ProfileKey = "profile"

type Claims struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and resolves the caller's
// profile from the store, so handlers receive an explicit current profile
// instead of reading ambient session state.
func AuthMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		// Ambil token string
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			HTTPHelper.SendUnauthorizedError(c, "Bearer token required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		claims := &Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// Validasi metode signing
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.JWTSecret, nil
		})

		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		if !token.Valid {
			HTTPHelper.SendUnauthorizedError(c, "Token is not valid", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		profile, err := userRepo.GetByID(c.Request.Context(), claims.UID)
		if err != nil || profile == nil {
			HTTPHelper.SendUnauthorizedError(c, "Profile not found", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(ProfileKey, profile)

		c.Next()
	}
}

// CurrentProfile returns the profile stored by AuthMiddleware.
func CurrentProfile(c *gin.Context) *models.UserProfile {
	v, exists := c.Get(ProfileKey)
	if !exists {
		return nil
	}
	profile, _ := v.(*models.UserProfile)
	return profile
}

// RequireEditor gates admin/staff-only routes. The check is advisory: the
// data layer does not enforce roles on its own.
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentProfile(c)
		if profile == nil {
			HTTPHelper.SendUnauthorizedError(c, "User profile not found", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		if !profile.Role.IsEditor() {
			HTTPHelper.SendForbiddenError(c, "Insufficient permissions", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}
		c.Next()
	}
}
