package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/phrazzld/calorie-api/internal/store"
)

const friendServiceName = "friend"

// FriendService drives the friendship state machine on behalf of an
// authenticated principal. Edges are located by the unordered pair of emails,
// so either party can act on them.
type FriendService interface {
	// Request moves the pair from NONE to REQUESTED.
	Request(ctx context.Context, principalID uuid.UUID, targetEmail string) (*domain.Friendship, error)

	// Confirm moves the pair from REQUESTED to CONFIRMED.
	Confirm(ctx context.Context, principalID uuid.UUID, email string) (*domain.Friendship, error)

	// Delete removes the edge in either state.
	Delete(ctx context.Context, principalID uuid.UUID, email string) (*domain.Friendship, error)

	// List returns every edge the principal is part of, possibly none.
	List(ctx context.Context, principalID uuid.UUID) ([]domain.Friendship, error)
}

type friendService struct {
	db          *sql.DB
	users       store.UserStore
	friendships store.FriendshipStore
	now         func() time.Time
	log         *slog.Logger
}

// NewFriendService creates a new FriendService.
func NewFriendService(
	db *sql.DB,
	users store.UserStore,
	friendships store.FriendshipStore,
	logger *slog.Logger,
) FriendService {
	if logger == nil {
		logger = slog.Default()
	}
	return &friendService{
		db:          db,
		users:       users,
		friendships: friendships,
		now:         time.Now,
		log:         logger.With(slog.String("component", "friend_service")),
	}
}

func (s *friendService) Request(
	ctx context.Context,
	principalID uuid.UUID,
	targetEmail string,
) (*domain.Friendship, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	principal, err := s.principal(ctx, s.users, principalID)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Errorf(domain.KindNotFound, "email %s not found", targetEmail).Wrap(err)
		}
		log.Error("failed to look up friend by email", slog.String("error", redact.Error(err)))
		return nil, internalError(friendServiceName, "request", err)
	}

	edge, err := domain.NewFriendship(*principal, *target)
	if err != nil {
		return nil, err
	}

	alreadyFriends := domain.Errorf(domain.KindConflict, "%s and %s are already friends",
		principal.Email, target.Email)

	_, err = s.friendships.FindBetween(ctx, principal.ID, target.ID)
	switch {
	case err == nil:
		return nil, alreadyFriends
	case !errors.Is(err, store.ErrFriendshipNotFound):
		log.Error("failed to look up existing friendship", slog.String("error", redact.Error(err)))
		return nil, internalError(friendServiceName, "request", err)
	}

	if err := s.friendships.Create(ctx, edge); err != nil {
		switch {
		case errors.Is(err, store.ErrFriendshipExists):
			return nil, alreadyFriends.Wrap(err)
		case errors.Is(err, store.ErrUserNotFound):
			return nil, domain.Errorf(domain.KindNotFound, "email %s not found", targetEmail).Wrap(err)
		}
		log.Error("failed to create friendship", slog.String("error", redact.Error(err)))
		return nil, internalError(friendServiceName, "request", err)
	}

	log.Info("friend request sent",
		slog.String("friendship_id", edge.ID.String()),
		slog.String("user_id", principal.ID.String()),
		slog.String("friend_id", target.ID.String()))
	return edge, nil
}

func (s *friendService) Confirm(
	ctx context.Context,
	principalID uuid.UUID,
	email string,
) (*domain.Friendship, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	var confirmed *domain.Friendship
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		principal, err := s.principal(ctx, s.users.WithTx(tx), principalID)
		if err != nil {
			return err
		}

		friendships := s.friendships.WithTx(tx)
		edge, err := s.edgeBetween(ctx, friendships, principal.Email, email)
		if err != nil {
			return err
		}

		if err := edge.Confirm(s.now()); err != nil {
			return domain.Errorf(domain.KindConflict, "%s and %s are already confirmed friends",
				principal.Email, email).Wrap(err)
		}

		confirmed, err = friendships.Confirm(ctx, edge.ID, *edge.ConfirmedAt)
		if err != nil {
			if errors.Is(err, store.ErrFriendshipNotFound) {
				return domain.Errorf(domain.KindConflict, "%s and %s are already confirmed friends",
					principal.Email, email).Wrap(err)
			}
			return internalError(friendServiceName, "confirm", err)
		}
		return nil
	})
	if err != nil {
		de, ok := domain.AsError(err)
		if ok && de.Kind != domain.KindInternal {
			return nil, err
		}
		log.Error("failed to confirm friendship", slog.String("error", redact.Error(err)))
		if !ok {
			return nil, internalError(friendServiceName, "confirm", err)
		}
		return nil, err
	}

	log.Info("friendship confirmed", slog.String("friendship_id", confirmed.ID.String()))
	return confirmed, nil
}

func (s *friendService) Delete(
	ctx context.Context,
	principalID uuid.UUID,
	email string,
) (*domain.Friendship, error) {
	principal, err := s.principal(ctx, s.users, principalID)
	if err != nil {
		return nil, err
	}

	edge, err := s.edgeBetween(ctx, s.friendships, principal.Email, email)
	if err != nil {
		return nil, err
	}

	deleted, err := s.friendships.Delete(ctx, edge.ID)
	if err != nil {
		if errors.Is(err, store.ErrFriendshipNotFound) {
			return nil, noRequestBetween(principal.Email, email).Wrap(err)
		}
		logger.FromContextOrDefault(ctx, s.log).Error("failed to delete friendship",
			slog.String("error", redact.Error(err)))
		return nil, internalError(friendServiceName, "delete", err)
	}
	return deleted, nil
}

func (s *friendService) List(ctx context.Context, principalID uuid.UUID) ([]domain.Friendship, error) {
	edges, err := s.friendships.ListForUser(ctx, principalID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.log).Error("failed to list friendships",
			slog.String("error", redact.Error(err)))
		return nil, internalError(friendServiceName, "list", err)
	}
	return edges, nil
}

// principal loads the acting user's current record, so a changed email is
// honored even when the token carries an older one.
func (s *friendService) principal(ctx context.Context, users store.UserStore, id uuid.UUID) (*domain.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Errorf(domain.KindNotFound, "User %s not found", id).Wrap(err)
		}
		logger.FromContextOrDefault(ctx, s.log).Error("failed to load principal",
			slog.String("error", redact.Error(err)))
		return nil, internalError(friendServiceName, "load_principal", err)
	}
	return user, nil
}

// edgeBetween finds the edge joining the two emails in either direction.
func (s *friendService) edgeBetween(
	ctx context.Context,
	friendships store.FriendshipStore,
	a, b string,
) (*domain.Friendship, error) {
	edge, err := friendships.FindByEmails(ctx, a, b)
	if err != nil {
		if errors.Is(err, store.ErrFriendshipNotFound) {
			return nil, noRequestBetween(a, b).Wrap(err)
		}
		logger.FromContextOrDefault(ctx, s.log).Error("failed to look up friendship",
			slog.String("error", redact.Error(err)))
		return nil, internalError(friendServiceName, "find", err)
	}
	return edge, nil
}

func noRequestBetween(a, b string) *domain.Error {
	return domain.Errorf(domain.KindNotFound, "No friend request found between %s and %s", a, b)
}
