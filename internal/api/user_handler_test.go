package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/mocks"
	"github.com/phrazzld/calorie-api/internal/service"
	"github.com/phrazzld/calorie-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_CreateTwice(t *testing.T) {
	users := new(mocks.UserStore)
	svc := service.NewUserService(nil, users, nil, nil, nil,
		&mocks.MockPasswordHasher{}, &mocks.MockPasswordVerifier{}, testLogger)
	h := NewUserHandler(svc, &mocks.MockJWTService{Token: "signed.jwt.token"}, testLogger)

	var created *domain.User
	users.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, store.ErrUserNotFound).Once()
	users.On("GetByUsername", mock.Anything, "testuser1").Return(nil, store.ErrUserNotFound).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
			created.ID = uuid.New()
		}).Return(nil).Once()

	rt := route{
		method:  http.MethodPost,
		pattern: "/users/create",
		target:  "/users/create",
		body: map[string]string{
			"username":  "testuser1",
			"email":     "a@b.com",
			"password":  "secret1",
			"password2": "secret1",
		},
	}

	rec := serve(t, rt, h.Create)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		NewUser map[string]interface{} `json:"newUser"`
		JWT     string                 `json:"jwt"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ID.String(), resp.NewUser["id"])
	assert.Equal(t, "signed.jwt.token", resp.JWT)
	assert.NotContains(t, resp.NewUser, "password")
	assert.NotContains(t, rec.Body.String(), "hashed:secret1")

	users.On("GetByEmail", mock.Anything, "a@b.com").Return(created, nil).Once()

	rec = serve(t, rt, h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email a@b.com already in use", decodeError(t, rec).Error)
	users.AssertExpectations(t)
}

func TestUserHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	called := false
	h := NewUserHandler(&mocks.MockUserService{
		CreateFn: func(context.Context, service.CreateUserParams) (*domain.User, error) {
			called = true
			return nil, nil
		},
	}, &mocks.MockJWTService{}, testLogger)

	rec := serve(t, route{
		method:  http.MethodPost,
		pattern: "/users/create",
		target:  "/users/create",
		body:    map[string]string{"username": "abc", "email": "not-an-email", "password": "secret1"},
	}, h.Create)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Validation failed", body.Error)

	fields := make(map[string]string)
	for _, fe := range body.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "username must be at least 6 characters", fields["username"])
	assert.Equal(t, "email must be a valid email", fields["email"])
	assert.Equal(t, "password2 is required", fields["password2"])
	assert.False(t, called, "service must not run on invalid input")
}

func TestUserHandler_CreateMalformedBody(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(&mocks.MockUserService{}, &mocks.MockJWTService{}, testLogger)
	rec := serve(t, route{
		method:  http.MethodPost,
		pattern: "/users/create",
		target:  "/users/create",
		body:    "{not json",
	}, h.Create)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request format", decodeError(t, rec).Error)
}

func TestUserHandler_Lookups(t *testing.T) {
	t.Parallel()

	alice := testUser("alice@example.com", "alice01")
	svc := &mocks.MockUserService{
		GetByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if id == alice.ID {
				public := alice.Public()
				return &public, nil
			}
			return nil, domain.Errorf(domain.KindNotFound, "User %s not found", id)
		},
		GetByUsernameFn: func(_ context.Context, name string) (*domain.User, error) {
			return nil, domain.Errorf(domain.KindNotFound, "User %s not found", name)
		},
		AllDataFn: func(_ context.Context, id uuid.UUID) (*domain.UserData, error) {
			return &domain.UserData{
				User:     alice.Public(),
				Calories: []domain.CalorieLog{{Calories: 500}},
				Totals:   domain.ComputeTotals([]domain.CalorieLog{{Calories: 500}}, nil),
			}, nil
		},
	}
	h := NewUserHandler(svc, &mocks.MockJWTService{}, testLogger)

	t.Run("by id", func(t *testing.T) {
		rec := serve(t, route{method: http.MethodGet, pattern: "/users/id/{userId}",
			target: "/users/id/" + alice.ID.String()}, h.GetByID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"alice01"`)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serve(t, route{method: http.MethodGet, pattern: "/users/id/{userId}",
			target: "/users/id/123"}, h.GetByID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "userId 123 is not a valid UUID", decodeError(t, rec).Error)
	})

	t.Run("unknown id", func(t *testing.T) {
		id := uuid.New()
		rec := serve(t, route{method: http.MethodGet, pattern: "/users/id/{userId}",
			target: "/users/id/" + id.String()}, h.GetByID)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User "+id.String()+" not found", decodeError(t, rec).Error)
	})

	t.Run("unknown username", func(t *testing.T) {
		rec := serve(t, route{method: http.MethodGet, pattern: "/users/userName/{userName}",
			target: "/users/userName/nobody1"}, h.GetByUsername)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("all data carries totals", func(t *testing.T) {
		rec := serve(t, route{method: http.MethodGet, pattern: "/users/allData/{userId}",
			target: "/users/allData/" + alice.ID.String()}, h.AllData)
		require.Equal(t, http.StatusOK, rec.Code)

		var data domain.UserData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
		assert.Equal(t, 500, data.Totals.CaloriesGained)
		assert.Equal(t, 500, data.Totals.NetCalories)
		assert.Equal(t, 1, data.Totals.CalorieLogs)
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Parallel()

	alice := testUser("alice@example.com", "alice01")
	var got service.UpdateUserParams
	h := NewUserHandler(&mocks.MockUserService{
		UpdateFn: func(_ context.Context, id uuid.UUID, params service.UpdateUserParams) (*domain.User, error) {
			got = params
			if params.Password != nil && params.Password2 == nil {
				return nil, domain.NewValidationError("Need to pass in password2 as well")
			}
			updated := alice.Public()
			if params.Email != nil {
				updated.Email = *params.Email
			}
			return &updated, nil
		},
	}, &mocks.MockJWTService{}, testLogger)

	t.Run("email change", func(t *testing.T) {
		rec := serve(t, route{
			method:    http.MethodPut,
			pattern:   "/users/update/{userId}",
			target:    "/users/update/" + alice.ID.String(),
			body:      map[string]string{"email": "alice@new.example.com"},
			principal: alice,
		}, h.Update)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "alice@new.example.com")
		require.NotNil(t, got.Email)
		assert.Nil(t, got.Username)
	})

	t.Run("password without confirmation", func(t *testing.T) {
		rec := serve(t, route{
			method:    http.MethodPut,
			pattern:   "/users/update/{userId}",
			target:    "/users/update/" + alice.ID.String(),
			body:      map[string]string{"password": "secret2"},
			principal: alice,
		}, h.Update)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Need to pass in password2 as well", decodeError(t, rec).Error)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Parallel()

	alice := testUser("alice@example.com", "alice01")
	h := NewUserHandler(&mocks.MockUserService{
		DeleteFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, domain.Errorf(domain.KindNotFound, "User %s not found", id)
		},
	}, &mocks.MockJWTService{}, testLogger)

	rec := serve(t, route{
		method:    http.MethodDelete,
		pattern:   "/users/delete/{userId}",
		target:    "/users/delete/" + alice.ID.String(),
		principal: alice,
	}, h.Delete)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUserRequestRejectsImpossibleProfileValues(t *testing.T) {
	t.Parallel()

	birthday := "2021-02-30"
	weight := 3000000000
	err := shared.ValidateRequest(CreateUserRequest{
		Username:      "runner42",
		Email:         "runner@example.com",
		Password:      "secret1",
		Password2:     "secret1",
		Birthday:      &birthday,
		CurrentWeight: &weight,
	})

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []shared.FieldError{
		{Field: "currentWeight", Message: "currentWeight must be at most 2147483647"},
		{Field: "birthday", Message: "birthday must be a YYYY-MM-DD date"},
	}, ve.Fields)
}
