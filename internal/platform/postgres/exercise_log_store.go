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

const exerciseLogColumns = `log_id, user_id, activity, calories_burnt, logged_at`

// PostgresExerciseLogStore implements store.ExerciseLogStore.
type PostgresExerciseLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExerciseLogStore creates a new PostgreSQL implementation of the ExerciseLogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresExerciseLogStore(db store.DBTX, logger *slog.Logger) *PostgresExerciseLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresExerciseLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "exercise_log_store")),
	}
}

var _ store.ExerciseLogStore = (*PostgresExerciseLogStore)(nil)

// WithTx implements store.ExerciseLogStore.WithTx
func (s *PostgresExerciseLogStore) WithTx(tx *sql.Tx) store.ExerciseLogStore {
	return &PostgresExerciseLogStore{db: tx, logger: s.logger}
}

func scanExerciseLog(row rowScanner) (*domain.ExerciseLog, error) {
	var l domain.ExerciseLog
	if err := row.Scan(&l.LogID, &l.UserID, &l.Activity, &l.CaloriesBurnt, &l.LoggedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create implements store.ExerciseLogStore.Create
func (s *PostgresExerciseLogStore) Create(ctx context.Context, entry *domain.ExerciseLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO exercise_logs (user_id, activity, calories_burnt)
		VALUES ($1, $2, $3)
		RETURNING ` + exerciseLogColumns

	created, err := scanExerciseLog(s.db.QueryRowContext(
		ctx, query, entry.UserID, entry.Activity, entry.CaloriesBurnt,
	))
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("exercise log owner does not exist", slog.String("user_id", entry.UserID.String()))
		} else {
			log.Error("failed to create exercise log",
				slog.String("user_id", entry.UserID.String()),
				slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	*entry = *created
	log.Info("exercise log created",
		slog.String("log_id", entry.LogID.String()),
		slog.String("user_id", entry.UserID.String()))
	return nil
}

// GetByID implements store.ExerciseLogStore.GetByID
func (s *PostgresExerciseLogStore) GetByID(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error) {
	query := `SELECT ` + exerciseLogColumns + ` FROM exercise_logs WHERE log_id = $1`

	entry, err := scanExerciseLog(s.db.QueryRowContext(ctx, query, logID))
	if err != nil {
		return nil, s.fail(ctx, "get", logID, err)
	}
	return entry, nil
}

// ListByUser implements store.ExerciseLogStore.ListByUser
func (s *PostgresExerciseLogStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ExerciseLog, error) {
	query := `SELECT ` + exerciseLogColumns + ` FROM exercise_logs WHERE user_id = $1 ORDER BY logged_at`
	return queryAll(ctx, s.db, scanExerciseLog, query, userID)
}

// ListByDateRange implements store.ExerciseLogStore.ListByDateRange
func (s *PostgresExerciseLogStore) ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.ExerciseLog, error) {
	query := `SELECT ` + exerciseLogColumns + `
		FROM exercise_logs
		WHERE logged_at >= $1 AND logged_at < $2
		ORDER BY logged_at`
	return queryAll(ctx, s.db, scanExerciseLog, query, r.Begin, r.End)
}

// SearchByActivity implements store.ExerciseLogStore.SearchByActivity
func (s *PostgresExerciseLogStore) SearchByActivity(ctx context.Context, name string) ([]domain.ExerciseLog, error) {
	query := `SELECT ` + exerciseLogColumns + `
		FROM exercise_logs
		WHERE activity ILIKE '%' || $1::text || '%'
		ORDER BY logged_at`
	return queryAll(ctx, s.db, scanExerciseLog, query, escapeLike(name))
}

// ListByCalorieRange implements store.ExerciseLogStore.ListByCalorieRange
func (s *PostgresExerciseLogStore) ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.ExerciseLog, error) {
	query := `SELECT ` + exerciseLogColumns + `
		FROM exercise_logs
		WHERE calories_burnt >= $1 AND calories_burnt <= $2
		ORDER BY calories_burnt, logged_at`
	return queryAll(ctx, s.db, scanExerciseLog, query, lo, hi)
}

// Update implements store.ExerciseLogStore.Update
func (s *PostgresExerciseLogStore) Update(
	ctx context.Context,
	logID uuid.UUID,
	upd domain.ExerciseLogUpdate,
) (*domain.ExerciseLog, error) {
	query := `
		UPDATE exercise_logs
		SET activity = COALESCE($2, activity),
			calories_burnt = COALESCE($3, calories_burnt)
		WHERE log_id = $1
		RETURNING ` + exerciseLogColumns

	entry, err := scanExerciseLog(s.db.QueryRowContext(ctx, query, logID, upd.Activity, upd.CaloriesBurnt))
	if err != nil {
		return nil, s.fail(ctx, "update", logID, err)
	}
	return entry, nil
}

// Delete implements store.ExerciseLogStore.Delete
func (s *PostgresExerciseLogStore) Delete(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error) {
	query := `DELETE FROM exercise_logs WHERE log_id = $1 RETURNING ` + exerciseLogColumns

	entry, err := scanExerciseLog(s.db.QueryRowContext(ctx, query, logID))
	if err != nil {
		return nil, s.fail(ctx, "delete", logID, err)
	}
	return entry, nil
}

// fail maps err for a single-row operation and logs unexpected failures.
func (s *PostgresExerciseLogStore) fail(ctx context.Context, op string, logID uuid.UUID, err error) error {
	mapped := notFoundAs(err, store.ErrExerciseLogNotFound)
	if store.IsNotFoundError(mapped) {
		return mapped
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("exercise log operation failed",
		slog.String("operation", op),
		slog.String("log_id", logID.String()),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError("exercise_log", op, "query failed", mapped)
}
