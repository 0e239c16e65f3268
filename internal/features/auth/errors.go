package auth

import (
	"errors"
)

var (
	ErrMissingFields = errors.New("required fields are missing")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidToken  = errors.New("invalid or expired token")
)
