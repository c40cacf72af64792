package services

import "errors"

// Shared errors used across services and the HTTP mapping. Validation errors
// mean a precondition failed and no mutation was performed; the UI disables
// controls proactively but every operation re-checks here regardless.
var (
	ErrNotFound      = errors.New("requested resource not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrCourtNotFound = errors.New("court not found")

	ErrValidationFailed = errors.New("validation failed")

	// Match lifecycle
	ErrMatchNotStarted      = errors.New("match has not been started")
	ErrMatchAlreadyStarted  = errors.New("match has already been started")
	ErrMatchAlreadyFinished = errors.New("match has already been finished")
	ErrMatchNotDecided      = errors.New("no side has won enough sets to finish the match")

	// Scoring preconditions
	ErrSetAlreadyWon          = errors.New("set already has a winner")
	ErrInvalidPlayer          = errors.New("invalid player for this match category")
	ErrInvalidTeam            = errors.New("team must be \"a\" or \"b\"")
	ErrPlayerNotEligible      = errors.New("player is neither serving nor next to serve")
	ErrServiceNotSelected     = errors.New("initial server and receiver have not been selected")
	ErrServerAlreadySelected  = errors.New("initial server has already been selected")
	ErrServerNotSelected      = errors.New("initial server has not been selected")
	ErrReceiverAlreadyChosen  = errors.New("initial receiver has already been selected")
	ErrReceiverOnServingTeam  = errors.New("receiver must be on the team opposing the server")
	ErrSetAlreadyInPlay       = errors.New("service selection is only allowed before the first point")
	ErrNothingToUndo          = errors.New("cannot undo at 0-0")
	ErrSetUnreachable         = errors.New("selected set is not reachable yet")
	ErrShuttleCountNegative   = errors.New("shuttle count cannot go below zero")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
)
