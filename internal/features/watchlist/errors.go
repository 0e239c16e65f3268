package watchlist

import (
	"errors"
)

var (
	ErrAlreadyInWatchlist = errors.New("content is already in the watchlist")
	ErrNotInWatchlist     = errors.New("content is not in the watchlist")
)
