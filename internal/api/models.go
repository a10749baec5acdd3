package api

import (
	"github.com/phrazzld/calorie-api/internal/domain"
)

// Authentication

// LoginRequest defines the payload for POST /auth.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=40"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User domain.User `json:"user"`
	JWT  string      `json:"jwt"`
}

// Users

// CreateUserRequest defines the payload for POST /users/create. Profile
// fields are optional.
type CreateUserRequest struct {
	Username  string `json:"username"  validate:"required,min=6,max=40,safe_text"`
	Email     string `json:"email"     validate:"required,app_email"`
	Password  string `json:"password"  validate:"required,min=6,max=40"`
	Password2 string `json:"password2" validate:"required,min=6,max=40"`

	CurrentWeight      *int    `json:"currentWeight"      validate:"omitempty,min=0,max=2147483647"`
	IdealWeight        *int    `json:"idealWeight"        validate:"omitempty,min=0,max=2147483647"`
	DailyCalorieIntake *int    `json:"dailyCalorieIntake" validate:"omitempty,min=0,max=2147483647"`
	Age                *int    `json:"age"                validate:"omitempty,min=0,max=2147483647"`
	Gender             *string `json:"gender"             validate:"omitempty,min=2,max=10"`
	Birthday           *string `json:"birthday"           validate:"omitempty,iso_date"`
}

func (r CreateUserRequest) profile() domain.Profile {
	return domain.Profile{
		CurrentWeight:      r.CurrentWeight,
		IdealWeight:        r.IdealWeight,
		DailyCalorieIntake: r.DailyCalorieIntake,
		Age:                r.Age,
		Gender:             r.Gender,
		Birthday:           r.Birthday,
	}
}

// CreateUserResponse is returned by a successful registration.
type CreateUserResponse struct {
	NewUser domain.User `json:"newUser"`
	JWT     string      `json:"jwt"`
}

// UpdateUserRequest defines the payload for PUT /users/update/{userId}.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string `json:"username"  validate:"omitempty,min=6,max=40,safe_text"`
	Email     *string `json:"email"     validate:"omitempty,app_email"`
	Password  *string `json:"password"  validate:"omitempty,min=6,max=40"`
	Password2 *string `json:"password2" validate:"omitempty,min=6,max=40"`
}

// Calorie logs

// CreateCalorieLogRequest defines the payload for POST /calories/createLog.
type CreateCalorieLogRequest struct {
	UserID    string `json:"userId"    validate:"required,canonical_uuid"`
	Food      string `json:"food"      validate:"required,max=100,safe_text"`
	Calories  *int   `json:"calories"  validate:"required,min=0,max=2147483647"`
	TimeOfDay string `json:"timeOfDay" validate:"omitempty,max=40,safe_text"`
}

// UpdateCalorieLogRequest defines the payload for PUT /calories/log/{logId}.
type UpdateCalorieLogRequest struct {
	Food     *string `json:"food"     validate:"omitempty,max=100,safe_text"`
	Calories *int    `json:"calories" validate:"omitempty,min=0,max=2147483647"`
}

// Exercise logs

// CreateExerciseLogRequest defines the payload for POST /exercise/createLog.
type CreateExerciseLogRequest struct {
	UserID        string `json:"userId"         validate:"required,canonical_uuid"`
	Activity      string `json:"activity"       validate:"required,max=100,safe_text"`
	CaloriesBurnt *int   `json:"calories_burnt" validate:"required,min=0,max=2147483647"`
}

// UpdateExerciseLogRequest defines the payload for PUT /exercise/log/{logId}.
type UpdateExerciseLogRequest struct {
	Activity      *string `json:"activity"       validate:"omitempty,max=100,safe_text"`
	CaloriesBurnt *int    `json:"calories_burnt" validate:"omitempty,min=0,max=2147483647"`
}

// Friends

// AddFriendRequest defines the payload for POST /friends/addFriend.
type AddFriendRequest struct {
	NewFriendEmail string `json:"newFriendEmail" validate:"required,app_email"`
}

// ConfirmFriendRequest defines the payload for PUT /friends/confirmFriend.
type ConfirmFriendRequest struct {
	ConfirmedFriendEmail string `json:"confirmedFriendEmail" validate:"required,app_email"`
}

// DeleteFriendRequest defines the payload for DELETE /friends/deleteFriend.
type DeleteFriendRequest struct {
	DeletedFriendEmail string `json:"deletedFriendEmail" validate:"required,app_email"`
}

// AddFriendResponse is returned when a friend request is sent.
type AddFriendResponse struct {
	Msg          string             `json:"msg"`
	NewFriendLog *domain.Friendship `json:"newFriendLog"`
}

// FriendResponse is returned when a friendship is confirmed or deleted.
type FriendResponse struct {
	Msg       string             `json:"msg"`
	FriendLog *domain.Friendship `json:"friendLog"`
}
