package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint, Message: "violation"}
}

var userColumnNames = []string{
	"id", "username", "email", "password", "auth_token", "created_on",
	"current_weight", "ideal_weight", "daily_calorie_intake", "age", "gender", "birthday",
}

var calorieLogColumnNames = []string{"log_id", "user_id", "food", "calories", "time_of_day", "logged_at"}

var exerciseLogColumnNames = []string{"log_id", "user_id", "activity", "calories_burnt", "logged_at"}

var friendshipColumnNames = []string{
	"id", "user_id", "friend_id", "user_email", "friend_email", "confirmed", "sent_at", "confirmed_at",
}
