package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/calorie-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// numericOutOfRangeCode is raised when a value overflows its column type
	numericOutOfRangeCode = "22003"

	// invalidDatetimeFormatCode is raised for unparseable date input
	invalidDatetimeFormatCode = "22007"

	// datetimeFieldOverflowCode is raised for well-formed but impossible dates
	datetimeFieldOverflowCode = "22008"
)

// Schema constraint names with a dedicated store error.
const (
	usersEmailKey         = "users_email_key"
	usersUsernameLowerKey = "users_username_lower_key"
	friendshipsPairKey    = "friendships_pair_key"
)

var constraintErrors = map[string]error{
	usersEmailKey:         store.ErrEmailExists,
	usersUsernameLowerKey: store.ErrUsernameExists,
	friendshipsPairKey:    store.ErrFriendshipExists,
}

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context for logs; callers decide
// which part is shown to clients.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if specific, ok := constraintErrors[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%w: %v", specific, err)
			}
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			// Every foreign key in the schema references users.
			return fmt.Errorf("%w: foreign key violation (%s): %v",
				store.ErrUserNotFound, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ColumnName, err)
		case numericOutOfRangeCode, invalidDatetimeFormatCode, datetimeFieldOverflowCode:
			return fmt.Errorf("%w: value rejected (%s): %v",
				store.ErrInvalidEntity, pgErr.Code, err)
		}
	}

	return err
}

// notFoundAs converts sql.ErrNoRows into the entity-specific not found error
// and maps everything else with MapError.
func notFoundAs(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return MapError(err)
}
