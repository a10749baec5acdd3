package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// FriendshipStore is a mock of store.FriendshipStore for use with testify/mock
type FriendshipStore struct {
	mock.Mock
}

var _ store.FriendshipStore = (*FriendshipStore)(nil)

func (m *FriendshipStore) Create(ctx context.Context, f *domain.Friendship) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *FriendshipStore) FindBetween(ctx context.Context, a, b uuid.UUID) (*domain.Friendship, error) {
	args := m.Called(ctx, a, b)
	return friendshipResult(args)
}

func (m *FriendshipStore) FindByEmails(ctx context.Context, x, y string) (*domain.Friendship, error) {
	args := m.Called(ctx, x, y)
	return friendshipResult(args)
}

func (m *FriendshipStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	args := m.Called(ctx, userID)
	if edges, ok := args.Get(0).([]domain.Friendship); ok {
		return edges, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FriendshipStore) Confirm(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Friendship, error) {
	args := m.Called(ctx, id, at)
	return friendshipResult(args)
}

func (m *FriendshipStore) Delete(ctx context.Context, id uuid.UUID) (*domain.Friendship, error) {
	args := m.Called(ctx, id)
	return friendshipResult(args)
}

func (m *FriendshipStore) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error {
	args := m.Called(ctx, userID, email)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *FriendshipStore) WithTx(*sql.Tx) store.FriendshipStore {
	return m
}

func friendshipResult(args mock.Arguments) (*domain.Friendship, error) {
	if f, ok := args.Get(0).(*domain.Friendship); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}
