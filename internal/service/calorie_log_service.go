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

const calorieLogServiceName = "calorie_log"

// CreateCalorieLogParams is the input to CalorieLogService.Create.
type CreateCalorieLogParams struct {
	UserID    uuid.UUID
	Food      string
	Calories  int
	TimeOfDay string
}

// CalorieLogService manages food entries. Every list operation reports an
// empty result as not found.
type CalorieLogService interface {
	Create(ctx context.Context, params CreateCalorieLogParams) (*domain.CalorieLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CalorieLog, error)
	Get(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error)
	Update(ctx context.Context, logID uuid.UUID, upd domain.CalorieLogUpdate) (*domain.CalorieLog, error)
	Delete(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error)

	// ListByDateRange takes YYYY-MM-DD bounds; the end day is included.
	ListByDateRange(ctx context.Context, begin, end string) ([]domain.CalorieLog, error)

	// SearchByName matches food names by case-insensitive substring.
	SearchByName(ctx context.Context, name string) ([]domain.CalorieLog, error)

	// ListByCalorieRange includes both bounds.
	ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.CalorieLog, error)
}

type calorieLogService struct {
	users store.UserStore
	logs  store.CalorieLogStore
	log   *slog.Logger
}

// NewCalorieLogService creates a new CalorieLogService.
func NewCalorieLogService(users store.UserStore, logs store.CalorieLogStore, logger *slog.Logger) CalorieLogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &calorieLogService{
		users: users,
		logs:  logs,
		log:   logger.With(slog.String("component", "calorie_log_service")),
	}
}

func (s *calorieLogService) Create(ctx context.Context, params CreateCalorieLogParams) (*domain.CalorieLog, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	if err := ensureUserExists(ctx, log, s.users, calorieLogServiceName, params.UserID); err != nil {
		return nil, err
	}

	entry := &domain.CalorieLog{
		UserID:    params.UserID,
		Food:      params.Food,
		Calories:  params.Calories,
		TimeOfDay: params.TimeOfDay,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.Errorf(domain.KindNotFound, "User %s not found", params.UserID).Wrap(err)
		}
		if rejected := rejectedValue(err); rejected != nil {
			return nil, rejected
		}
		log.Error("failed to create calorie log", slog.String("error", redact.Error(err)))
		return nil, internalError(calorieLogServiceName, "create", err)
	}

	log.Debug("calorie log created",
		slog.String("log_id", entry.LogID.String()),
		slog.String("user_id", entry.UserID.String()))
	return entry, nil
}

func (s *calorieLogService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CalorieLog, error) {
	items, err := s.logs.ListByUser(ctx, userID)
	return listResult(logger.FromContextOrDefault(ctx, s.log), calorieLogServiceName, "list_by_user",
		items, err, "No calorieLogs found for userId %s", userID)
}

func (s *calorieLogService) Get(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	entry, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		return nil, s.entryError(ctx, "get", "No calorieLog found for logId %s", logID, err)
	}
	return entry, nil
}

func (s *calorieLogService) Update(
	ctx context.Context,
	logID uuid.UUID,
	upd domain.CalorieLogUpdate,
) (*domain.CalorieLog, error) {
	if upd.Empty() {
		return nil, domain.NewValidationError("need to pass in at least food or calories")
	}
	entry, err := s.logs.Update(ctx, logID, upd)
	if err != nil {
		return nil, s.entryError(ctx, "update", "No calorieLog found for logId %s", logID, err)
	}
	return entry, nil
}

func (s *calorieLogService) Delete(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	entry, err := s.logs.Delete(ctx, logID)
	if err != nil {
		return nil, s.entryError(ctx, "delete", "No calorieLogs found for logId %s", logID, err)
	}
	return entry, nil
}

func (s *calorieLogService) ListByDateRange(ctx context.Context, begin, end string) ([]domain.CalorieLog, error) {
	r, err := domain.ParseDateRange(begin, end)
	if err != nil {
		return nil, err
	}
	items, err := s.logs.ListByDateRange(ctx, r)
	return listResult(logger.FromContextOrDefault(ctx, s.log), calorieLogServiceName, "list_by_date_range",
		items, err, "No calorieLogs found in range %s to %s", begin, end)
}

func (s *calorieLogService) SearchByName(ctx context.Context, name string) ([]domain.CalorieLog, error) {
	items, err := s.logs.SearchByFood(ctx, name)
	return listResult(logger.FromContextOrDefault(ctx, s.log), calorieLogServiceName, "search",
		items, err, "No calorieLogs found for food %s", name)
}

func (s *calorieLogService) ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.CalorieLog, error) {
	items, err := s.logs.ListByCalorieRange(ctx, lo, hi)
	return listResult(logger.FromContextOrDefault(ctx, s.log), calorieLogServiceName, "list_by_calorie_range",
		items, err, "No calorieLogs found for range %d to %d", lo, hi)
}

func (s *calorieLogService) entryError(ctx context.Context, op, format string, logID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrCalorieLogNotFound) {
		return domain.Errorf(domain.KindNotFound, format, logID).Wrap(err)
	}
	if rejected := rejectedValue(err); rejected != nil {
		return rejected
	}
	logger.FromContextOrDefault(ctx, s.log).Error("calorie log operation failed",
		slog.String("operation", op),
		slog.String("log_id", logID.String()),
		slog.String("error", redact.Error(err)))
	return internalError(calorieLogServiceName, op, err)
}

// ensureUserExists fails with a not-found error naming id when no such user exists.
func ensureUserExists(
	ctx context.Context,
	log *slog.Logger,
	users store.UserStore,
	service string,
	id uuid.UUID,
) error {
	_, err := users.GetByID(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrUserNotFound):
		return domain.Errorf(domain.KindNotFound, "User %s not found", id).Wrap(err)
	default:
		log.Error("failed to look up log owner", slog.String("error", redact.Error(err)))
		return internalError(service, "check_owner", err)
	}
}
