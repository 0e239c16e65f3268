package content

import (
	"errors"
)

var (
	ErrContentNotFound      = errors.New("content not found")
	ErrTitleTaken           = errors.New("content with this title already exists")
	ErrMissingFields        = errors.New("title, description and languages are required fields")
	ErrInvalidType          = errors.New("content type must be movie or webseries")
	ErrLoginRequired        = errors.New("login required to access premium content")
	ErrSubscriptionRequired = errors.New("active subscription required to access premium content")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated         = errors.New("content already rated by this user")
	ErrRatingNotFound       = errors.New("rating not found for this user")
	ErrNoVideo              = errors.New("content has no video attached")
)
