// Package usecase implements the authoritative watchlist registry.
package usecase

import "errors"

var (
	// ErrWatchlistNotFound is returned when an operation names a watchlist
	// that does not exist.
	ErrWatchlistNotFound = errors.New("watchlist not found")

	// ErrWatchlistAlreadyExists is returned when creating a watchlist whose
	// name is already taken. Names are case-sensitive.
	ErrWatchlistAlreadyExists = errors.New("watchlist already exists")
)
