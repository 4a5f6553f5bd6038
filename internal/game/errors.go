package game

import "errors"

// Configuration errors. Returned (wrapped) from Validate and the session
// constructors; generation itself never fails on a validated config.
var (
	ErrInvalidConfig    = errors.New("game: invalid config")
	ErrInfeasibleRange  = errors.New("game: no problem satisfies the configured ranges")
	ErrInfeasibleOption = errors.New("game: option bounds cannot hold the requested number of distinct options")
	ErrUnknownKind      = errors.New("game: unknown game kind")
)
