package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/phrazzld/calorie-api/internal/service/auth"
	"github.com/phrazzld/calorie-api/internal/store"
)

const userServiceName = "user"

// CreateUserParams is the input to UserService.Create.
type CreateUserParams struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Profile   domain.Profile
}

// UpdateUserParams is the input to UserService.Update. Nil fields are left
// unchanged.
type UpdateUserParams struct {
	Username  *string
	Email     *string
	Password  *string
	Password2 *string
}

// UserService provides account operations.
type UserService interface {
	// Create registers a new user and returns its public projection.
	Create(ctx context.Context, params CreateUserParams) (*domain.User, error)

	// Authenticate checks an email/password pair and returns the matching user.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username, ignoring case.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// AllData returns the user together with every log they own and the totals.
	AllData(ctx context.Context, id uuid.UUID) (*domain.UserData, error)

	// Update applies a partial change of email, username or password.
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error)

	// Delete removes the user and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	db          *sql.DB
	users       store.UserStore
	calories    store.CalorieLogStore
	exercise    store.ExerciseLogStore
	friendships store.FriendshipStore
	hasher      auth.PasswordHasher
	verifier    auth.PasswordVerifier
	logger      *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	calories store.CalorieLogStore,
	exercise store.ExerciseLogStore,
	friendships store.FriendshipStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		db:          db,
		users:       users,
		calories:    calories,
		exercise:    exercise,
		friendships: friendships,
		hasher:      hasher,
		verifier:    verifier,
		logger:      logger.With(slog.String("component", "user_service")),
	}
}

// Create registers a new user. Uniqueness is checked up front for a precise
// message and enforced again by the store's constraints.
func (s *UserServiceImpl) Create(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.ensureEmailFree(ctx, s.users, params.Email, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, s.users, params.Username, uuid.Nil); err != nil {
		return nil, err
	}
	if params.Password != params.Password2 {
		return nil, domain.NewValidationError("passwords must match")
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", redact.Error(err)))
		return nil, internalError(userServiceName, "create", err)
	}

	user, err := domain.NewUser(params.Username, params.Email, hash, params.Profile)
	if err != nil {
		return nil, domain.NewValidationError(err.Error()).Wrap(err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if conflict := userConflict(err, params.Email, params.Username); conflict != nil {
			log.Debug("user creation lost a uniqueness race", slog.String("error", err.Error()))
			return nil, conflict
		}
		if rejected := rejectedValue(err); rejected != nil {
			log.Debug("user creation rejected by storage", slog.String("error", redact.Error(err)))
			return nil, rejected
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return nil, internalError(userServiceName, "create", err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	public := user.Public()
	return &public, nil
}

// Authenticate checks credentials. A wrong password is an expected outcome
// and is reported without revealing which half was wrong.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidEmail(email) {
		return nil, domain.NewValidationError("Email must be valid")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NewNotFoundError("Email not found")
		}
		log.Error("failed to look up user by email", slog.String("error", redact.Error(err)))
		return nil, internalError(userServiceName, "authenticate", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("password mismatch", slog.String("user_id", user.ID.String()))
			return nil, domain.NewValidationError("Email/password are not correct")
		}
		log.Error("failed to verify password", slog.String("error", redact.Error(err)))
		return nil, internalError(userServiceName, "authenticate", err)
	}

	public := user.Public()
	return &public, nil
}

// GetByID retrieves a user by their ID
func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.userLookupError(ctx, "get", id.String(), err)
	}
	public := user.Public()
	return &public, nil
}

// GetByUsername retrieves a user by username, ignoring case.
func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, s.userLookupError(ctx, "get_by_username", username, err)
	}
	public := user.Public()
	return &public, nil
}

// AllData fetches the user and both log sets, then totals them in memory.
func (s *UserServiceImpl) AllData(ctx context.Context, id uuid.UUID) (*domain.UserData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.userLookupError(ctx, "all_data", id.String(), err)
	}

	calories, err := s.calories.ListByUser(ctx, id)
	if err != nil {
		log.Error("failed to list calorie logs", slog.String("error", redact.Error(err)))
		return nil, internalError(userServiceName, "all_data", err)
	}
	exercise, err := s.exercise.ListByUser(ctx, id)
	if err != nil {
		log.Error("failed to list exercise logs", slog.String("error", redact.Error(err)))
		return nil, internalError(userServiceName, "all_data", err)
	}

	return &domain.UserData{
		User:     user.Public(),
		Calories: calories,
		Exercise: exercise,
		Totals:   domain.ComputeTotals(calories, exercise),
	}, nil
}

// Update applies a partial change in one transaction. A new email is also
// written to the user's friendship edges so symmetric lookups keep working.
func (s *UserServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	params UpdateUserParams,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Email == nil && params.Username == nil && params.Password == nil {
		return nil, domain.NewValidationError("Need to pass in at least one email, password, or username")
	}
	if params.Password != nil && params.Password2 == nil {
		return nil, domain.NewValidationError("Need to pass in password2 as well")
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)

		if _, err := users.GetByID(ctx, id); err != nil {
			return s.userLookupError(ctx, "update", id.String(), err)
		}
		if params.Email != nil {
			if err := s.ensureEmailFree(ctx, users, *params.Email, id); err != nil {
				return err
			}
		}
		if params.Username != nil {
			if err := s.ensureUsernameFree(ctx, users, *params.Username, id); err != nil {
				return err
			}
		}

		upd := domain.UserUpdate{Username: params.Username, Email: params.Email}
		if params.Password != nil {
			if *params.Password != *params.Password2 {
				return domain.NewValidationError("Passwords need to match")
			}
			hash, err := s.hasher.Hash(*params.Password)
			if err != nil {
				return internalError(userServiceName, "update", err)
			}
			upd.HashedPassword = &hash
		}

		user, err := users.Update(ctx, id, upd)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return domain.Errorf(domain.KindNotFound, "User %s not found", id).Wrap(err)
			}
			if conflict := userConflict(err, deref(params.Email), deref(params.Username)); conflict != nil {
				return conflict
			}
			if rejected := rejectedValue(err); rejected != nil {
				return rejected
			}
			return internalError(userServiceName, "update", err)
		}

		if params.Email != nil {
			if err := s.friendships.WithTx(tx).UpdateEmail(ctx, id, *params.Email); err != nil {
				return internalError(userServiceName, "update", err)
			}
		}

		updated = user
		return nil
	})
	if err != nil {
		de, ok := domain.AsError(err)
		if ok && de.Kind != domain.KindInternal {
			return nil, err
		}
		log.Error("failed to update user",
			slog.String("user_id", id.String()),
			slog.String("error", redact.Error(err)))
		if !ok {
			return nil, internalError(userServiceName, "update", err)
		}
		return nil, err
	}

	log.Info("user updated", slog.String("user_id", id.String()))
	public := updated.Public()
	return &public, nil
}

// Delete removes the user; their logs and friendship edges go with them.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, s.userLookupError(ctx, "delete", id.String(), err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted", slog.String("user_id", id.String()))
	public := user.Public()
	return &public, nil
}

// ensureEmailFree fails with a conflict when email belongs to a user other than self.
func (s *UserServiceImpl) ensureEmailFree(
	ctx context.Context,
	users store.UserStore,
	email string,
	self uuid.UUID,
) error {
	existing, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	case err != nil:
		return internalError(userServiceName, "check_email", err)
	case existing.ID == self:
		return nil
	default:
		return domain.Errorf(domain.KindConflict, "Email %s already in use", email)
	}
}

// ensureUsernameFree fails with a conflict when username belongs to a user other than self.
func (s *UserServiceImpl) ensureUsernameFree(
	ctx context.Context,
	users store.UserStore,
	username string,
	self uuid.UUID,
) error {
	existing, err := users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	case err != nil:
		return internalError(userServiceName, "check_username", err)
	case existing.ID == self:
		return nil
	default:
		return domain.Errorf(domain.KindConflict, "Username %s already in use", username)
	}
}

// userLookupError maps a store error for the user identified by key.
func (s *UserServiceImpl) userLookupError(ctx context.Context, op, key string, err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return domain.Errorf(domain.KindNotFound, "User %s not found", key).Wrap(err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("user lookup failed",
		slog.String("operation", op),
		slog.String("error", redact.Error(err)))
	return internalError(userServiceName, op, err)
}

// userConflict maps storage uniqueness violations to the same conflicts the
// up-front checks report. It returns nil for any other error.
func userConflict(err error, email, username string) error {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return domain.Errorf(domain.KindConflict, "Email %s already in use", email).Wrap(err)
	case errors.Is(err, store.ErrUsernameExists):
		return domain.Errorf(domain.KindConflict, "Username %s already in use", username).Wrap(err)
	default:
		return nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
