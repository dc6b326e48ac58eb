// Package entity defines the domain models for the watchlist feature.
package entity

// Watchlist is a named, deduplicated set of upper-cased stock symbols.
// Names are case-sensitive and chosen by the creator. Symbol order carries
// no meaning; insertion order is preserved for stable responses.
type Watchlist struct {
	Name    string
	Symbols []string
}

// Contains reports whether the watchlist holds the given symbol.
// The stored symbols are already upper-cased; the caller is expected to
// normalize the query the same way.
func (w Watchlist) Contains(symbol string) bool {
	for _, s := range w.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// Collection is the full name→watchlist mapping in insertion order.
// It is the unit returned by a full refresh and the unit of persistence
// on the client side.
type Collection []Watchlist
