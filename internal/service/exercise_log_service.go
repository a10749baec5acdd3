package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/phrazzld/calorie-api/internal/store"
)

const exerciseLogServiceName = "exercise_log"

// CreateExerciseLogParams is the input to ExerciseLogService.Create.
type CreateExerciseLogParams struct {
	UserID        uuid.UUID
	Activity      string
	CaloriesBurnt int
}

// ExerciseLogService manages activity entries. Every list operation reports
// an empty result as not found.
type ExerciseLogService interface {
	Create(ctx context.Context, params CreateExerciseLogParams) (*domain.ExerciseLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ExerciseLog, error)
	Get(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error)
	Update(ctx context.Context, logID uuid.UUID, upd domain.ExerciseLogUpdate) (*domain.ExerciseLog, error)
	Delete(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error)
	ListByDateRange(ctx context.Context, begin, end string) ([]domain.ExerciseLog, error)
	SearchByName(ctx context.Context, name string) ([]domain.ExerciseLog, error)
	ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.ExerciseLog, error)
}

type exerciseLogService struct {
	users store.UserStore
	logs  store.ExerciseLogStore
	log   *slog.Logger
}

// NewExerciseLogService creates a new ExerciseLogService.
func NewExerciseLogService(users store.UserStore, logs store.ExerciseLogStore, logger *slog.Logger) ExerciseLogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &exerciseLogService{
		users: users,
		logs:  logs,
		log:   logger.With(slog.String("component", "exercise_log_service")),
	}
}

func (s *exerciseLogService) Create(ctx context.Context, params CreateExerciseLogParams) (*domain.ExerciseLog, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	if err := ensureUserExists(ctx, log, s.users, exerciseLogServiceName, params.UserID); err != nil {
		return nil, err
	}

	entry := &domain.ExerciseLog{
		UserID:        params.UserID,
		Activity:      params.Activity,
		CaloriesBurnt: params.CaloriesBurnt,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Errorf(domain.KindNotFound, "User %s not found", params.UserID).Wrap(err)
		}
		if rejected := rejectedValue(err); rejected != nil {
			return nil, rejected
		}
		log.Error("failed to create exercise log", slog.String("error", redact.Error(err)))
		return nil, internalError(exerciseLogServiceName, "create", err)
	}

	log.Debug("exercise log created",
		slog.String("log_id", entry.LogID.String()),
		slog.String("user_id", entry.UserID.String()))
	return entry, nil
}

func (s *exerciseLogService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ExerciseLog, error) {
	items, err := s.logs.ListByUser(ctx, userID)
	return listResult(logger.FromContextOrDefault(ctx, s.log), exerciseLogServiceName, "list_by_user",
		items, err, "No exerciseLogs found for userId %s", userID)
}

func (s *exerciseLogService) Get(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error) {
	entry, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		return nil, s.entryError(ctx, "get", "No exerciseLog found for logId %s", logID, err)
	}
	return entry, nil
}

func (s *exerciseLogService) Update(
	ctx context.Context,
	logID uuid.UUID,
	upd domain.ExerciseLogUpdate,
) (*domain.ExerciseLog, error) {
	if upd.Empty() {
		return nil, domain.NewValidationError("need to pass in at least calories_burnt or activity")
	}
	entry, err := s.logs.Update(ctx, logID, upd)
	if err != nil {
		return nil, s.entryError(ctx, "update", "No exerciseLog found for logId %s", logID, err)
	}
	return entry, nil
}

func (s *exerciseLogService) Delete(ctx context.Context, logID uuid.UUID) (*domain.ExerciseLog, error) {
	entry, err := s.logs.Delete(ctx, logID)
	if err != nil {
		return nil, s.entryError(ctx, "delete", "No exerciseLogs found for logId %s", logID, err)
	}
	return entry, nil
}

func (s *exerciseLogService) ListByDateRange(ctx context.Context, begin, end string) ([]domain.ExerciseLog, error) {
	r, err := domain.ParseDateRange(begin, end)
	if err != nil {
		return nil, err
	}
	items, err := s.logs.ListByDateRange(ctx, r)
	return listResult(logger.FromContextOrDefault(ctx, s.log), exerciseLogServiceName, "list_by_date_range",
		items, err, "No exerciseLogs found in range %s to %s", begin, end)
}

func (s *exerciseLogService) SearchByName(ctx context.Context, name string) ([]domain.ExerciseLog, error) {
	items, err := s.logs.SearchByActivity(ctx, name)
	return listResult(logger.FromContextOrDefault(ctx, s.log), exerciseLogServiceName, "search",
		items, err, "No exerciseLogs found for activity %s", name)
}

func (s *exerciseLogService) ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.ExerciseLog, error) {
	items, err := s.logs.ListByCalorieRange(ctx, lo, hi)
	return listResult(logger.FromContextOrDefault(ctx, s.log), exerciseLogServiceName, "list_by_calorie_range",
		items, err, "No exerciseLogs found for range %d to %d", lo, hi)
}

func (s *exerciseLogService) entryError(ctx context.Context, op, format string, logID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrExerciseLogNotFound) {
		return domain.Errorf(domain.KindNotFound, format, logID).Wrap(err)
	}
	if rejected := rejectedValue(err); rejected != nil {
		return rejected
	}
	logger.FromContextOrDefault(ctx, s.log).Error("exercise log operation failed",
		slog.String("operation", op),
		slog.String("log_id", logID.String()),
		slog.String("error", redact.Error(err)))
	return internalError(exerciseLogServiceName, op, err)
}
