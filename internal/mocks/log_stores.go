package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// CalorieLogStore is a mock of store.CalorieLogStore for use with testify/mock
type CalorieLogStore struct {
	mock.Mock
}

var _ store.CalorieLogStore = (*CalorieLogStore)(nil)

func (m *CalorieLogStore) Create(ctx context.Context, entry *domain.CalorieLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *CalorieLogStore) GetByID(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	args := m.Called(ctx, logID)
	return calorieLogResult(args)
}

func (m *CalorieLogStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CalorieLog, error) {
	args := m.Called(ctx, userID)
	return calorieLogsResult(args)
}

func (m *CalorieLogStore) ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.CalorieLog, error) {
	args := m.Called(ctx, r)
	return calorieLogsResult(args)
}

func (m *CalorieLogStore) SearchByFood(ctx context.Context, name string) ([]domain.CalorieLog, error) {
	args := m.Called(ctx, name)
	return calorieLogsResult(args)
}

func (m *CalorieLogStore) ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.CalorieLog, error) {
	args := m.Called(ctx, lo, hi)
	return calorieLogsResult(args)
}

func (m *CalorieLogStore) Update(
	ctx context.Context,
	logID uuid.UUID,
	upd domain.CalorieLogUpdate,
) (*domain.CalorieLog, error) {
	args := m.Called(ctx, logID, upd)
	return calorieLogResult(args)
}

func (m *CalorieLogStore) Delete(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	args := m.Called(ctx, logID)
	return calorieLogResult(args)
}

// WithTx returns the mock itself.
func (m *CalorieLogStore) WithTx(*sql.Tx) store.CalorieLogStore {
	return m
}

func calorieLogResult(args mock.Arguments) (*domain.CalorieLog, error) {
	if entry, ok := args.Get(0).(*domain.CalorieLog); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func calorieLogsResult(args mock.Arguments) ([]domain.CalorieLog, error) {
	if entries, ok := args.Get(0).([]domain.CalorieLog); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExerciseLogStore is a mock of store.ExerciseLogStore for use with testify/mock
type ExerciseLogStore struct {
	mock.Mock
}

var _ store.ExerciseLogStore = (*ExerciseLogStore)(nil)

func (m *ExerciseLogStore) Create(ctx context.Context, entry *domain.ExerciseLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ExerciseLogStore) GetByID(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error) {
	args := m.Called(ctx, logID)
	return exerciseLogResult(args)
}

func (m *ExerciseLogStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ExerciseLog, error) {
	args := m.Called(ctx, userID)
	return exerciseLogsResult(args)
}

func (m *ExerciseLogStore) ListByDateRange(ctx context.Context, r domain.DateRange) ([]domain.ExerciseLog, error) {
	args := m.Called(ctx, r)
	return exerciseLogsResult(args)
}

func (m *ExerciseLogStore) SearchByActivity(ctx context.Context, name string) ([]domain.ExerciseLog, error) {
	args := m.Called(ctx, name)
	return exerciseLogsResult(args)
}

func (m *ExerciseLogStore) ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.ExerciseLog, error) {
	args := m.Called(ctx, lo, hi)
	return exerciseLogsResult(args)
}

func (m *ExerciseLogStore) Update(
	ctx context.Context,
	logID uuid.UUID,
	upd domain.ExerciseLogUpdate,
) (*domain.ExerciseLog, error) {
	args := m.Called(ctx, logID, upd)
	return exerciseLogResult(args)
}

func (m *ExerciseLogStore) Delete(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error) {
	args := m.Called(ctx, logID)
	return exerciseLogResult(args)
}

// WithTx returns the mock itself.
func (m *ExerciseLogStore) WithTx(*sql.Tx) store.ExerciseLogStore {
	return m
}

func exerciseLogResult(args mock.Arguments) (*domain.ExerciseLog, error) {
	if entry, ok := args.Get(0).(*domain.ExerciseLog); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func exerciseLogsResult(args mock.Arguments) ([]domain.ExerciseLog, error) {
	if entries, ok := args.Get(0).([]domain.ExerciseLog); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
