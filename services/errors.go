package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("insufficient permissions")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTooManyPicks      = errors.New("weekly picks limited to 3 articles")
	ErrUnpublishedPick   = errors.New("weekly picks must reference published articles")
	ErrEmailTaken        = errors.New("email already registered")
	ErrWeakPassword      = errors.New("password too weak")
	ErrBadCredentials    = errors.New("invalid credentials")
)
