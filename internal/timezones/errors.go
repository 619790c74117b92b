package timezones

import (
	"errors"

	"github.com/tartampluch/go-multitime/internal/config"
)

var (
	ErrEntryNotFound = errors.New(config.ErrEntryNotFound)
	ErrLastEntry     = errors.New(config.ErrLastEntry)
	ErrMoveRange     = errors.New(config.ErrMoveRange)
)
