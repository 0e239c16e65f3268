package episode

import (
	"errors"
)

var (
	ErrEpisodeNotFound    = errors.New("episode not found")
	ErrEpisodeTitleTaken  = errors.New("episode with this title already exists for this content")
	ErrEpisodeNumberTaken = errors.New("episode with this season and episode number already exists for this content")
	ErrMissingFields      = errors.New("title, seasonNo and episodeNo are required fields")
)
