package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/phrazzld/calorie-api/internal/store"
)

const friendshipColumns = `id, user_id, friend_id, user_email, friend_email, confirmed, sent_at, confirmed_at`

// PostgresFriendshipStore implements store.FriendshipStore.
type PostgresFriendshipStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFriendshipStore creates a new PostgreSQL implementation of the FriendshipStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresFriendshipStore(db store.DBTX, logger *slog.Logger) *PostgresFriendshipStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFriendshipStore{
		db:     db,
		logger: logger.With(slog.String("component", "friendship_store")),
	}
}

var _ store.FriendshipStore = (*PostgresFriendshipStore)(nil)

// WithTx implements store.FriendshipStore.WithTx
func (s *PostgresFriendshipStore) WithTx(tx *sql.Tx) store.FriendshipStore {
	return &PostgresFriendshipStore{db: tx, logger: s.logger}
}

func scanFriendship(row rowScanner) (*domain.Friendship, error) {
	var f domain.Friendship
	var confirmedAt sql.NullTime
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.FriendID,
		&f.UserEmail,
		&f.FriendEmail,
		&f.Confirmed,
		&f.SentAt,
		&confirmedAt,
	)
	if err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		f.ConfirmedAt = &t
	}
	return &f, nil
}

// Create implements store.FriendshipStore.Create
func (s *PostgresFriendshipStore) Create(ctx context.Context, f *domain.Friendship) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO friendships (user_id, friend_id, user_email, friend_email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + friendshipColumns

	created, err := scanFriendship(s.db.QueryRowContext(
		ctx, query, f.UserID, f.FriendID, f.UserEmail, f.FriendEmail,
	))
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) || store.IsNotFoundError(mapped) {
			log.Debug("friend request rejected by storage", slog.String("error", redact.Error(err)))
		} else {
			log.Error("failed to create friendship", slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	*f = *created
	log.Info("friend request stored",
		slog.String("friendship_id", f.ID.String()),
		slog.String("user_id", f.UserID.String()),
		slog.String("friend_id", f.FriendID.String()))
	return nil
}

// FindBetween implements store.FriendshipStore.FindBetween
func (s *PostgresFriendshipStore) FindBetween(ctx context.Context, a, b uuid.UUID) (*domain.Friendship, error) {
	query := `SELECT ` + friendshipColumns + `
		FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
		LIMIT 1`

	f, err := scanFriendship(s.db.QueryRowContext(ctx, query, a, b))
	if err != nil {
		return nil, s.fail(ctx, "find_between", err)
	}
	return f, nil
}

// FindByEmails implements store.FriendshipStore.FindByEmails
func (s *PostgresFriendshipStore) FindByEmails(ctx context.Context, x, y string) (*domain.Friendship, error) {
	query := `SELECT ` + friendshipColumns + `
		FROM friendships
		WHERE (user_email = $1 AND friend_email = $2) OR (user_email = $2 AND friend_email = $1)
		LIMIT 1
		FOR UPDATE`

	f, err := scanFriendship(s.db.QueryRowContext(ctx, query, x, y))
	if err != nil {
		return nil, s.fail(ctx, "find_by_emails", err)
	}
	return f, nil
}

// ListForUser implements store.FriendshipStore.ListForUser
func (s *PostgresFriendshipStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	query := `SELECT ` + friendshipColumns + `
		FROM friendships
		WHERE user_id = $1 OR friend_id = $1
		ORDER BY sent_at`
	return queryAll(ctx, s.db, scanFriendship, query, userID)
}

// Confirm implements store.FriendshipStore.Confirm
func (s *PostgresFriendshipStore) Confirm(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Friendship, error) {
	query := `
		UPDATE friendships
		SET confirmed = TRUE, confirmed_at = $2
		WHERE id = $1 AND NOT confirmed
		RETURNING ` + friendshipColumns

	f, err := scanFriendship(s.db.QueryRowContext(ctx, query, id, at))
	if err != nil {
		return nil, s.fail(ctx, "confirm", err)
	}
	return f, nil
}

// Delete implements store.FriendshipStore.Delete
func (s *PostgresFriendshipStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Friendship, error) {
	query := `DELETE FROM friendships WHERE id = $1 RETURNING ` + friendshipColumns

	f, err := scanFriendship(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, s.fail(ctx, "delete", err)
	}
	return f, nil
}

// UpdateEmail implements store.FriendshipStore.UpdateEmail
func (s *PostgresFriendshipStore) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error {
	query := `
		UPDATE friendships
		SET user_email = CASE WHEN user_id = $1 THEN $2::text ELSE user_email END,
			friend_email = CASE WHEN friend_id = $1 THEN $2::text ELSE friend_email END
		WHERE user_id = $1 OR friend_id = $1`

	if _, err := s.db.ExecContext(ctx, query, userID, email); err != nil {
		return s.fail(ctx, "update_email", err)
	}
	return nil
}

func (s *PostgresFriendshipStore) fail(ctx context.Context, op string, err error) error {
	mapped := notFoundAs(err, store.ErrFriendshipNotFound)
	if store.IsNotFoundError(mapped) {
		return mapped
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("friendship operation failed",
		slog.String("operation", op),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError("friendship", op, "query failed", mapped)
}
