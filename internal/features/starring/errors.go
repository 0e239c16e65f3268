package starring

import (
	"errors"
)

var (
	ErrStarringNotFound = errors.New("starring not found")
	ErrNameTaken        = errors.New("starring with this name already exists")
	ErrMissingName      = errors.New("starring name is required")
)
