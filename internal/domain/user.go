package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered principal. The password hash is never
// serialized; the JSON form of a User is its public projection.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	AuthToken      uuid.UUID `json:"authToken"`
	CreatedOn      time.Time `json:"createdOn"`

	CurrentWeight      *int    `json:"currentWeight"`
	IdealWeight        *int    `json:"idealWeight"`
	DailyCalorieIntake *int    `json:"dailyCalorieIntake"`
	Age                *int    `json:"age"`
	Gender             *string `json:"gender"`
	Birthday           *string `json:"birthday"`
}

// Profile holds the optional descriptive fields of a User.
type Profile struct {
	CurrentWeight      *int
	IdealWeight        *int
	DailyCalorieIntake *int
	Age                *int
	Gender             *string
	Birthday           *string
}

// NewUser builds a User ready for insertion. ID, AuthToken and CreatedOn are
// assigned by storage.
func NewUser(username, email, hashedPassword string, profile Profile) (*User, error) {
	user := &User{
		Username:           username,
		Email:              email,
		HashedPassword:     hashedPassword,
		CurrentWeight:      profile.CurrentWeight,
		IdealWeight:        profile.IdealWeight,
		DailyCalorieIntake: profile.DailyCalorieIntake,
		Age:                profile.Age,
		Gender:             profile.Gender,
		Birthday:           profile.Birthday,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the fields every stored user must have.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if !IsValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// Public returns a copy of u with the password hash cleared.
func (u User) Public() User {
	u.HashedPassword = ""
	return u
}

// UserUpdate is a partial update of a User. Nil fields are left unchanged.
type UserUpdate struct {
	Username       *string
	Email          *string
	HashedPassword *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.HashedPassword == nil
}
