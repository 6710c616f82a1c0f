package registry

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrLoadRegistry      = errors.New("registry load failed")
	ErrSaveRegistry      = errors.New("registry save failed")
	ErrAllyCodeTaken     = errors.New("ally code already registered")
	ErrUnknownUser       = errors.New("unknown user")
	ErrUnknownGuild      = errors.New("unknown guild")
	ErrGuildExists       = errors.New("guild already registered")
	ErrAmbiguousAllyCode = errors.New("ally code required")
	ErrUnknownAllyCode   = errors.New("unknown ally code")
	ErrUnknownUnit       = errors.New("unknown unit")
)
