package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
)

// CalorieLogStore defines the interface for calorie log persistence.
// List methods return an empty slice, not an error, when nothing matches.
type CalorieLogStore interface {
	// Create inserts a log; LogID and LoggedAt are assigned by storage.
	// Returns ErrUserNotFound if the owner does not exist.
	Create(ctx context.Context, log *domain.CalorieLog) error

	// GetByID returns ErrCalorieLogNotFound if the log does not exist.
	GetByID(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CalorieLog, error)

	// ListByDateRange returns logs with Begin <= LoggedAt < End.
	ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.CalorieLog, error)

	// SearchByFood matches food names by case-insensitive substring.
	SearchByFood(ctx context.Context, name string) ([]domain.CalorieLog, error)

	// ListByCalorieRange returns logs with lo <= Calories <= hi.
	ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.CalorieLog, error)

	// Update returns ErrCalorieLogNotFound if the log does not exist.
	Update(ctx context.Context, logID uuid.UUID, upd domain.CalorieLogUpdate) (*domain.CalorieLog, error)

	// Delete returns the deleted record, or ErrCalorieLogNotFound.
	Delete(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error)

	WithTx(tx *sql.Tx) CalorieLogStore
}

// ExerciseLogStore defines the interface for exercise log persistence.
// List methods return an empty slice, not an error, when nothing matches.
type ExerciseLogStore interface {
	// Create inserts a log; LogID and LoggedAt are assigned by storage.
	// Returns ErrUserNotFound if the owner does not exist.
	Create(ctx context.Context, log *domain.ExerciseLog) error

	// GetByID returns ErrExerciseLogNotFound if the log does not exist.
	GetByID(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ExerciseLog, error)

	// ListByDateRange returns logs with Begin <= LoggedAt < End.
	ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.ExerciseLog, error)

	// SearchByActivity matches activity names by case-insensitive substring.
	SearchByActivity(ctx context.Context, name string) ([]domain.ExerciseLog, error)

	// ListByCalorieRange returns logs with lo <= CaloriesBurnt <= hi.
	ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.ExerciseLog, error)

	// Update returns ErrExerciseLogNotFound if the log does not exist.
	Update(ctx context.Context, logID uuid.UUID, upd domain.ExerciseLogUpdate) (*domain.ExerciseLog, error)

	// Delete returns the deleted record, or ErrExerciseLogNotFound.
	Delete(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error)

	WithTx(tx *sql.Tx) ExerciseLogStore
}
