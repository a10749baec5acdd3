package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRow(id, token uuid.UUID, username, email string) *sqlmock.Rows {
	return sqlmock.NewRows(userColumnNames).AddRow(
		id.String(), username, email, "$2a$08$hash", token.String(), testTime,
		int64(80), nil, int64(2200), nil, "female", "1990-04-12",
	)
}

func TestPostgresUserStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("success fills generated fields", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		id, token := uuid.New(), uuid.New()
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("testuser1", "a@b.com", "$2a$08$hash",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(userRow(id, token, "testuser1", "a@b.com"))

		user := &domain.User{Username: "testuser1", Email: "a@b.com", HashedPassword: "$2a$08$hash"}
		require.NoError(t, s.Create(context.Background(), user))

		assert.Equal(t, id, user.ID)
		assert.Equal(t, token, user.AuthToken)
		assert.Equal(t, testTime, user.CreatedOn)
		require.NotNil(t, user.CurrentWeight)
		assert.Equal(t, 80, *user.CurrentWeight)
		assert.Nil(t, user.IdealWeight)
		require.NotNil(t, user.Birthday)
		assert.Equal(t, "1990-04-12", *user.Birthday)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(pgError(uniqueViolationCode, usersEmailKey))

		user := &domain.User{Username: "testuser1", Email: "a@b.com", HashedPassword: "h"}
		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(pgError(uniqueViolationCode, usersUsernameLowerKey))

		user := &domain.User{Username: "TestUser1", Email: "c@d.com", HashedPassword: "h"}
		assert.ErrorIs(t, s.Create(context.Background(), user), store.ErrUsernameExists)
	})

	t.Run("invalid user never reaches the database", func(t *testing.T) {
		t.Parallel()
		db, _ := newMock(t)
		s := NewPostgresUserStore(db, nil)

		err := s.Create(context.Background(), &domain.User{Username: "x", Email: "bad", HashedPassword: "h"})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestPostgresUserStore_Get(t *testing.T) {
	t.Parallel()

	id, token := uuid.New(), uuid.New()

	t.Run("by id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(userRow(id, token, "testuser1", "a@b.com"))

		user, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "testuser1", user.Username)
	})

	t.Run("by username is case-insensitive", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`WHERE LOWER\(username\) = LOWER\(\$1\)`).
			WithArgs("TESTUSER1").
			WillReturnRows(userRow(id, token, "testuser1", "a@b.com"))

		user, err := s.GetByUsername(context.Background(), "TESTUSER1")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
	})

	t.Run("by email not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("nobody@b.com").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByEmail(context.Background(), "nobody@b.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("database failure is not a not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`FROM users WHERE id = \$1`).WillReturnError(errors.New("conn reset"))

		_, err := s.GetByID(context.Background(), id)
		require.Error(t, err)
		assert.False(t, store.IsNotFoundError(err))

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "user", storeErr.Entity)
		assert.Equal(t, "get_by_id", storeErr.Operation)
	})
}

func TestPostgresUserStore_UpdateDelete(t *testing.T) {
	t.Parallel()

	id, token := uuid.New(), uuid.New()

	t.Run("partial update", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		email := "new@b.com"
		mock.ExpectQuery(`UPDATE users`).
			WithArgs(id, nil, email, nil).
			WillReturnRows(userRow(id, token, "testuser1", email))

		user, err := s.Update(context.Background(), id, domain.UserUpdate{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
	})

	t.Run("update unknown user", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		name := "someone"
		mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)

		_, err := s.Update(context.Background(), id, domain.UserUpdate{Username: &name})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("delete returns the removed user", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`DELETE FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(userRow(id, token, "testuser1", "a@b.com"))

		user, err := s.Delete(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
	})

	t.Run("delete inside a transaction", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(`DELETE FROM users`).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			_, err := s.WithTx(tx).Delete(ctx, id)
			return err
		})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
