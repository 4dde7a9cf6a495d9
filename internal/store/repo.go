package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a draft does not exist.
var ErrNotFound = errors.New("draft not found")

// DraftInfo is the listing view of a stored draft.
type DraftInfo struct {
	ID          uuid.UUID
	Code        string
	Description string
	Revision    int
	Sections    int
	Ready       bool
	UpdatedAt   time.Time
}

// Revision is one saved state of a draft.
type Revision struct {
	Number  int
	SavedAt time.Time
	Draft   *draft.Draft
}

// DraftRepo persists drafts and their revision history.
type DraftRepo interface {
	// Save writes the draft and appends a revision. It returns the new
	// revision number.
	Save(ctx context.Context, d *draft.Draft) (int, error)

	// Get loads the current state of a draft.
	Get(ctx context.Context, id uuid.UUID) (*draft.Draft, error)

	// Find loads a draft by ID or by code.
	Find(ctx context.Context, ref string) (*draft.Draft, error)

	// List returns every draft, most recently updated first.
	List(ctx context.Context) ([]DraftInfo, error)

	// Delete removes a draft and its history.
	Delete(ctx context.Context, id uuid.UUID) error

	// Revisions returns up to limit revisions, newest first (0 = all).
	Revisions(ctx context.Context, id uuid.UUID, limit int) ([]Revision, error)

	// Prune deletes all but the keep most recent revisions.
	Prune(ctx context.Context, id uuid.UUID, keep int) error
}
