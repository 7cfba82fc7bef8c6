package fsm

import "context"

// Store keeps per-user sessions. Operations on different user ids are
// independent; implementations must be safe for concurrent use.
type Store interface {
	// Get returns the user's session, or nil when no dialog is active.
	Get(ctx context.Context, userID int64) (*Session, error)
	// Set upserts the session, replacing accumulated fields atomically.
	Set(ctx context.Context, userID int64, session *Session) error
	// Clear removes the session entirely. Clearing an absent session is a no-op.
	Clear(ctx context.Context, userID int64) error
	// Close releases driver resources.
	Close() error
}
