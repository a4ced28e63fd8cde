package sessions

import "context"

// Repo persists the session snapshot between process runs.
type Repo interface {
	// Load returns the last saved snapshot, or nil when nothing was saved.
	// Unreadable data returns an error wrapping errors.ErrCorruptSnapshot.
	Load(ctx context.Context) (*Persisted, error)

	// Save replaces the stored snapshot
	Save(ctx context.Context, p Persisted) error

	// Clear removes the stored snapshot
	Clear(ctx context.Context) error
}
