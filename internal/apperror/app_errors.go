package apperror

import "errors"

var (
	ErrInvalidInput  = errors.New("player name is required")
	ErrInvalidRecord = errors.New("invalid player data")
	ErrUnknownDriver = errors.New("unknown storage driver")
)
