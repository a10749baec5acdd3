package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalorieLog is a food entry owned by a user.
type CalorieLog struct {
	LogID     uuid.UUID `json:"logId"`
	UserID    uuid.UUID `json:"userId"`
	Food      string    `json:"food"`
	Calories  int       `json:"calories"`
	TimeOfDay string    `json:"timeOfDay"`
	LoggedAt  time.Time `json:"loggedAt"`
}

// CalorieLogUpdate changes the descriptor and/or quantity of a CalorieLog.
type CalorieLogUpdate struct {
	Food     *string
	Calories *int
}

// Empty reports whether the update changes nothing.
func (u CalorieLogUpdate) Empty() bool {
	return u.Food == nil && u.Calories == nil
}

// ExerciseLog is an activity entry owned by a user.
type ExerciseLog struct {
	LogID         uuid.UUID `json:"logId"`
	UserID        uuid.UUID `json:"userId"`
	Activity      string    `json:"activity"`
	CaloriesBurnt int       `json:"calories_burnt"`
	LoggedAt      time.Time `json:"loggedAt"`
}

// ExerciseLogUpdate changes the descriptor and/or quantity of an ExerciseLog.
type ExerciseLogUpdate struct {
	Activity      *string
	CaloriesBurnt *int
}

// Empty reports whether the update changes nothing.
func (u ExerciseLogUpdate) Empty() bool {
	return u.Activity == nil && u.CaloriesBurnt == nil
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Begin time.Time
	End   time.Time
}

// ParseDateRange parses two YYYY-MM-DD strings. The returned End is the first
// instant after the end day, so the whole end day is covered by a half-open
// [Begin, End) comparison.
func ParseDateRange(begin, end string) (DateRange, error) {
	b, err := time.Parse(time.DateOnly, begin)
	if err != nil {
		return DateRange{}, Errorf(KindValidation, "%s is not a valid date", begin)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return DateRange{}, Errorf(KindValidation, "%s is not a valid date", end)
	}
	return DateRange{Begin: b, End: e.AddDate(0, 0, 1)}, nil
}
