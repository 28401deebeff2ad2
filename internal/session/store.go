// Package session provides the opaque server-side session store. A session
// is keyed by a random token carried in an HTTP-only cookie and holds exactly
// one attribute: the username. Expiry is rolling — every successful lookup
// pushes the deadline out by the configured inactivity window.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a token does not resolve to a live session.
var ErrNotFound = errors.New("session not found")

// Store is the session backend. Implementations must refresh the session
// TTL on Get to give rolling expiry.
type Store interface {
	// Get resolves a token to the stored username and refreshes the TTL.
	Get(ctx context.Context, token string) (string, error)
	// Save creates or replaces the session for token.
	Save(ctx context.Context, token, username string) error
	// Delete destroys the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
