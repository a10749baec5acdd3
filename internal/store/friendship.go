package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
)

// FriendshipStore defines the interface for friendship edge persistence.
type FriendshipStore interface {
	// Create inserts a pending edge; ID and SentAt are assigned by storage.
	// Returns ErrFriendshipExists if any edge already connects the pair,
	// and ErrUserNotFound if either side does not exist.
	Create(ctx context.Context, f *domain.Friendship) error

	// FindBetween returns the edge connecting a and b in either direction,
	// or ErrFriendshipNotFound.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*domain.Friendship, error)

	// FindByEmails returns the edge whose two emails are x and y in either
	// order, or ErrFriendshipNotFound. Inside a transaction the row is locked.
	FindByEmails(ctx context.Context, x, y string) (*domain.Friendship, error)

	// ListForUser returns every edge the user is on either side of.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error)

	// Confirm marks the edge confirmed at the given time.
	// Returns ErrFriendshipNotFound if no pending edge has that id.
	Confirm(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Friendship, error)

	// Delete removes the edge and returns it, or ErrFriendshipNotFound.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Friendship, error)

	// UpdateEmail rewrites the denormalized email of userID on all of their edges.
	UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error

	WithTx(tx *sql.Tx) FriendshipStore
}
