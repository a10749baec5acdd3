package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/service"
)

// MockUserService implements service.UserService for handler tests. Unset
// functions return nil values.
type MockUserService struct {
	CreateFn        func(ctx context.Context, params service.CreateUserParams) (*domain.User, error)
	AuthenticateFn  func(ctx context.Context, email, password string) (*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	AllDataFn       func(ctx context.Context, id uuid.UUID) (*domain.UserData, error)
	UpdateFn        func(ctx context.Context, id uuid.UUID, params service.UpdateUserParams) (*domain.User, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Create(ctx context.Context, params service.CreateUserParams) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, params)
	}
	return nil, nil
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return nil, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *MockUserService) AllData(ctx context.Context, id uuid.UUID) (*domain.UserData, error) {
	if m.AllDataFn != nil {
		return m.AllDataFn(ctx, id)
	}
	return nil, nil
}

func (m *MockUserService) Update(
	ctx context.Context,
	id uuid.UUID,
	params service.UpdateUserParams,
) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, params)
	}
	return nil, nil
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil, nil
}

// MockCalorieLogService implements service.CalorieLogService for handler tests.
type MockCalorieLogService struct {
	CreateFn             func(ctx context.Context, params service.CreateCalorieLogParams) (*domain.CalorieLog, error)
	ListByUserFn         func(ctx context.Context, userID uuid.UUID) ([]domain.CalorieLog, error)
	GetFn                func(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error)
	UpdateFn             func(ctx context.Context, logID uuid.UUID, upd domain.CalorieLogUpdate) (*domain.CalorieLog, error)
	DeleteFn             func(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error)
	ListByDateRangeFn    func(ctx context.Context, begin, end string) ([]domain.CalorieLog, error)
	SearchByNameFn       func(ctx context.Context, name string) ([]domain.CalorieLog, error)
	ListByCalorieRangeFn func(ctx context.Context, lo, hi int) ([]domain.CalorieLog, error)

	// CreateCalls records every Create invocation.
	CreateCalls []service.CreateCalorieLogParams
}

var _ service.CalorieLogService = (*MockCalorieLogService)(nil)

func (m *MockCalorieLogService) Create(
	ctx context.Context,
	params service.CreateCalorieLogParams,
) (*domain.CalorieLog, error) {
	m.CreateCalls = append(m.CreateCalls, params)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, params)
	}
	return nil, nil
}

func (m *MockCalorieLogService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CalorieLog, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockCalorieLogService) Get(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, logID)
	}
	return nil, nil
}

func (m *MockCalorieLogService) Update(
	ctx context.Context,
	logID uuid.UUID,
	upd domain.CalorieLogUpdate,
) (*domain.CalorieLog, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, logID, upd)
	}
	return nil, nil
}

func (m *MockCalorieLogService) Delete(ctx context.Context, logID uuid.UUID) (*domain.CalorieLog, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, logID)
	}
	return nil, nil
}

func (m *MockCalorieLogService) ListByDateRange(ctx context.Context, begin, end string) ([]domain.CalorieLog, error) {
	if m.ListByDateRangeFn != nil {
		return m.ListByDateRangeFn(ctx, begin, end)
	}
	return nil, nil
}

func (m *MockCalorieLogService) SearchByName(ctx context.Context, name string) ([]domain.CalorieLog, error) {
	if m.SearchByNameFn != nil {
		return m.SearchByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *MockCalorieLogService) ListByCalorieRange(ctx context.Context, lo, hi int) ([]domain.CalorieLog, error) {
	if m.ListByCalorieRangeFn != nil {
		return m.ListByCalorieRangeFn(ctx, lo, hi)
	}
	return nil, nil
}

// MockFriendService implements service.FriendService for handler tests.
type MockFriendService struct {
	RequestFn func(ctx context.Context, principalID uuid.UUID, targetEmail string) (*domain.Friendship, error)
	ConfirmFn func(ctx context.Context, principalID uuid.UUID, email string) (*domain.Friendship, error)
	DeleteFn  func(ctx context.Context, principalID uuid.UUID, email string) (*domain.Friendship, error)
	ListFn    func(ctx context.Context, principalID uuid.UUID) ([]domain.Friendship, error)
}

var _ service.FriendService = (*MockFriendService)(nil)

func (m *MockFriendService) Request(
	ctx context.Context,
	principalID uuid.UUID,
	targetEmail string,
) (*domain.Friendship, error) {
	if m.RequestFn != nil {
		return m.RequestFn(ctx, principalID, targetEmail)
	}
	return nil, nil
}

func (m *MockFriendService) Confirm(ctx context.Context, principalID uuid.UUID, email string) (*domain.Friendship, error) {
	if m.ConfirmFn != nil {
		return m.ConfirmFn(ctx, principalID, email)
	}
	return nil, nil
}

func (m *MockFriendService) Delete(ctx context.Context, principalID uuid.UUID, email string) (*domain.Friendship, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, principalID, email)
	}
	return nil, nil
}

func (m *MockFriendService) List(ctx context.Context, principalID uuid.UUID) ([]domain.Friendship, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, principalID)
	}
	return nil, nil
}
