package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/phrazzld/calorie-api/internal/store"
)

const userColumns = `id, username, email, password, auth_token, created_on,
	current_weight, ideal_weight, daily_calorie_intake, age, gender,
	to_char(birthday, 'YYYY-MM-DD')`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.AuthToken,
		&u.CreatedOn,
		&u.CurrentWeight,
		&u.IdealWeight,
		&u.DailyCalorieIntake,
		&u.Age,
		&u.Gender,
		&u.Birthday,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO users (username, email, password, current_weight, ideal_weight,
			daily_calorie_intake, age, gender, birthday)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::text::date)
		RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.CurrentWeight,
		user.IdealWeight,
		user.DailyCalorieIntake,
		user.Age,
		user.Gender,
		user.Birthday,
	))
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate user rejected", slog.String("error", redact.Error(err)))
		} else {
			log.Error("failed to create user", slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	*user = *created
	log.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.getOne(ctx, "id", query, id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.getOne(ctx, "email", query, email)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	return s.getOne(ctx, "username", query, username)
}

func (s *PostgresUserStore) getOne(ctx context.Context, by string, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		mapped := notFoundAs(err, store.ErrUserNotFound)
		if store.IsNotFoundError(mapped) {
			return nil, mapped
		}
		log.Error("failed to get user",
			slog.String("by", by),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "get_by_"+by, "query failed", mapped)
	}
	return user, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	upd domain.UserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET username = COALESCE($2, username),
			email = COALESCE($3, email),
			password = COALESCE($4, password)
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id, upd.Username, upd.Email, upd.HashedPassword))
	if err != nil {
		mapped := notFoundAs(err, store.ErrUserNotFound)
		if !store.IsNotFoundError(mapped) && !store.IsDuplicateError(mapped) {
			log.Error("failed to update user",
				slog.String("user_id", id.String()),
				slog.String("error", redact.Error(err)))
		}
		return nil, mapped
	}

	log.Info("user updated successfully", slog.String("user_id", id.String()))
	return user, nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		mapped := notFoundAs(err, store.ErrUserNotFound)
		if !store.IsNotFoundError(mapped) {
			log.Error("failed to delete user",
				slog.String("user_id", id.String()),
				slog.String("error", redact.Error(err)))
		}
		return nil, mapped
	}

	log.Info("user deleted successfully", slog.String("user_id", id.String()))
	return user, nil
}
