package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrSessionNotActive = errors.New("session is not active")
	ErrSessionPaused    = errors.New("session is paused")
	ErrNoMoreSteps      = errors.New("no more steps in brew session")
	ErrNoMashSchedule   = errors.New("recipe has no mash schedule")
	ErrInvalidRecipe    = errors.New("recipe failed validation")
)
