package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/calorie-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "duplicate email", err: pgError(uniqueViolationCode, usersEmailKey), want: store.ErrEmailExists},
		{
			name: "duplicate username",
			err:  pgError(uniqueViolationCode, usersUsernameLowerKey),
			want: store.ErrUsernameExists,
		},
		{
			name: "duplicate friendship pair",
			err:  fmt.Errorf("insert: %w", pgError(uniqueViolationCode, friendshipsPairKey)),
			want: store.ErrFriendshipExists,
		},
		{name: "unknown unique constraint", err: pgError(uniqueViolationCode, "other_key"), want: store.ErrDuplicate},
		{
			name: "foreign key",
			err:  pgError(foreignKeyViolationCode, "calorie_logs_user_id_fkey"),
			want: store.ErrUserNotFound,
		},
		{
			name: "check violation",
			err:  pgError(checkViolationCode, "friendships_not_self"),
			want: store.ErrInvalidEntity,
		},
		{name: "not null", err: pgError(notNullViolationCode, ""), want: store.ErrInvalidEntity},
		{name: "integer overflow", err: pgError(numericOutOfRangeCode, ""), want: store.ErrInvalidEntity},
		{name: "unparseable date", err: pgError(invalidDatetimeFormatCode, ""), want: store.ErrInvalidEntity},
		{name: "impossible date", err: pgError(datetimeFieldOverflowCode, ""), want: store.ErrInvalidEntity},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
	})

	t.Run("unmapped errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Same(t, plain, MapError(plain))
	})
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "chicken", escapeLike("chicken"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
