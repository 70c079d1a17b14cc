package models

import "time"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleStaff       UserRole = "staff"
	RoleContributor UserRole = "contributor"
)

// IsEditor reports whether the role may review submissions and curate
// weekly picks.
func (r UserRole) IsEditor() bool {
	return r == RoleAdmin || r == RoleStaff
}

type UserProfile struct {
	UID         string    `json:"uid" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	PhotoURL    string    `json:"photo_url" bson:"photo_url"`
	Role        UserRole  `json:"role" bson:"role"`
	Bio         string    `json:"bio" bson:"bio"`
	Password    string    `json:"-" bson:"password"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	LastLoginAt time.Time `json:"last_login_at" bson:"last_login_at"`
}

// AuthUser is the identity handed over by the authentication layer.
// The profile sync consumes it; nothing else reads it.
type AuthUser struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}
