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

const calorieLogColumns = `log_id, user_id, food, calories, time_of_day, logged_at`

// PostgresCalorieLogStore implements store.CalorieLogStore.
type PostgresCalorieLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCalorieLogStore creates a new PostgreSQL implementation of the CalorieLogStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCalorieLogStore(db store.DBTX, logger *slog.Logger) *PostgresCalorieLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCalorieLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "calorie_log_store")),
	}
}

var _ store.CalorieLogStore = (*PostgresCalorieLogStore)(nil)

// WithTx implements store.CalorieLogStore.WithTx
func (s *PostgresCalorieLogStore) WithTx(tx *sql.Tx) store.CalorieLogStore {
	return &PostgresCalorieLogStore{db: tx, logger: s.logger}
}

func scanCalorieLog(row rowScanner) (*domain.CalorieLog, error) {
	var l domain.CalorieLog
	if err := row.Scan(&l.LogID, &l.UserID, &l.Food, &l.Calories, &l.TimeOfDay, &l.LoggedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create implements store.CalorieLogStore.Create
func (s *PostgresCalorieLogStore) Create(ctx context.Context, entry *domain.CalorieLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO calorie_logs (user_id, food, calories, time_of_day)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + calorieLogColumns

	created, err := scanCalorieLog(s.db.QueryRowContext(
		ctx, query, entry.UserID, entry.Food, entry.Calories, entry.TimeOfDay,
	))
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			log.Debug("calorie log owner does not exist", slog.String("user_id", entry.UserID.String()))
		} else {
			log.Error("failed to create calorie log",
				slog.String("user_id", entry.UserID.String()),
				slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	*entry = *created
	log.Info("calorie log created",
		slog.String("log_id", entry.LogID.String()),
		slog.String("user_id", entry.UserID.String()))
	return nil
}

// GetByID implements store.CalorieLogStore.GetByID
func (s *PostgresCalorieLogStore) GetByID(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	query := `SELECT ` + calorieLogColumns + ` FROM calorie_logs WHERE log_id = $1`

	entry, err := scanCalorieLog(s.db.QueryRowContext(ctx, query, logID))
	if err != nil {
		return nil, s.fail(ctx, "get", logID, err)
	}
	return entry, nil
}

// ListByUser implements store.CalorieLogStore.ListByUser
func (s *PostgresCalorieLogStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CalorieLog, error) {
	query := `SELECT ` + calorieLogColumns + ` FROM calorie_logs WHERE user_id = $1 ORDER BY logged_at`
	return queryAll(ctx, s.db, scanCalorieLog, query, userID)
}

// ListByDateRange implements store.CalorieLogStore.ListByDateRange
func (s *PostgresCalorieLogStore) ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.CalorieLog, error) {
	query := `SELECT ` + calorieLogColumns + `
		FROM calorie_logs
		WHERE logged_at >= $1 AND logged_at < $2
		ORDER BY logged_at`
	return queryAll(ctx, s.db, scanCalorieLog, query, r.Begin, r.End)
}

// SearchByFood implements store.CalorieLogStore.SearchByFood
func (s *PostgresCalorieLogStore) SearchByFood(ctx context.Context, name string) ([]domain.CalorieLog, error) {
	query := `SELECT ` + calorieLogColumns + `
		FROM calorie_logs
		WHERE food ILIKE '%' || $1::text || '%'
		ORDER BY logged_at`
	return queryAll(ctx, s.db, scanCalorieLog, query, escapeLike(name))
}

// ListByCalorieRange implements store.CalorieLogStore.ListByCalorieRange
func (s *PostgresCalorieLogStore) ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.CalorieLog, error) {
	query := `SELECT ` + calorieLogColumns + `
		FROM calorie_logs
		WHERE calories >= $1 AND calories <= $2
		ORDER BY calories, logged_at`
	return queryAll(ctx, s.db, scanCalorieLog, query, lo, hi)
}

// Update implements store.CalorieLogStore.Update
func (s *PostgresCalorieLogStore) Update(
	ctx context.Context,
	logID uuid.UUID,
	upd domain.CalorieLogUpdate,
) (*domain.CalorieLog, error) {
	query := `
		UPDATE calorie_logs
		SET food = COALESCE($2, food),
			calories = COALESCE($3, calories)
		WHERE log_id = $1
		RETURNING ` + calorieLogColumns

	entry, err := scanCalorieLog(s.db.QueryRowContext(ctx, query, logID, upd.Food, upd.Calories))
	if err != nil {
		return nil, s.fail(ctx, "update", logID, err)
	}
	return entry, nil
}

// Delete implements store.CalorieLogStore.Delete
func (s *PostgresCalorieLogStore) Delete(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	query := `DELETE FROM calorie_logs WHERE log_id = $1 RETURNING ` + calorieLogColumns

	entry, err := scanCalorieLog(s.db.QueryRowContext(ctx, query, logID))
	if err != nil {
		return nil, s.fail(ctx, "delete", logID, err)
	}
	return entry, nil
}

// fail maps err for a single-row operation and logs unexpected failures.
func (s *PostgresCalorieLogStore) fail(ctx context.Context, op string, logID uuid.UUID, err error) error {
	mapped := notFoundAs(err, store.ErrCalorieLogNotFound)
	if store.IsNotFoundError(mapped) {
		return mapped
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("calorie log operation failed",
		slog.String("operation", op),
		slog.String("log_id", logID.String()),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError("calorie_log", op, "query failed", mapped)
}
