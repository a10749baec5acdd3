package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FriendshipState is the state of the relationship between two users.
type FriendshipState string

// Friendship states. NONE is represented by the absence of an edge.
const (
	FriendshipNone      FriendshipState = "NONE"
	FriendshipRequested FriendshipState = "REQUESTED"
	FriendshipConfirmed FriendshipState = "CONFIRMED"
)

// Friendship is a directed request from UserID to FriendID that becomes a
// symmetric relationship once confirmed. Emails are denormalized so either
// side can be found by email.
type Friendship struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	FriendID    uuid.UUID  `json:"friendId"`
	UserEmail   string     `json:"userEmail"`
	FriendEmail string     `json:"friendEmail"`
	Confirmed   bool       `json:"confirmed"`
	SentAt      time.Time  `json:"sentAt"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
}

// NewFriendship creates a pending request from requester to target.
func NewFriendship(requester, target User) (*Friendship, error) {
	if requester.ID == target.ID || strings.EqualFold(requester.Email, target.Email) {
		return nil, NewValidationError("cannot send a friend request to yourself")
	}
	return &Friendship{
		UserID:      requester.ID,
		FriendID:    target.ID,
		UserEmail:   requester.Email,
		FriendEmail: target.Email,
	}, nil
}

// State returns the edge's state. A nil edge is NONE.
func (f *Friendship) State() FriendshipState {
	switch {
	case f == nil:
		return FriendshipNone
	case f.Confirmed:
		return FriendshipConfirmed
	default:
		return FriendshipRequested
	}
}

// Confirm moves a REQUESTED edge to CONFIRMED and stamps ConfirmedAt.
// Any other state yields ErrAlreadyConfirmed and leaves the edge untouched.
func (f *Friendship) Confirm(now time.Time) error {
	if f.State() != FriendshipRequested {
		return ErrAlreadyConfirmed
	}
	f.Confirmed = true
	t := now.UTC()
	f.ConfirmedAt = &t
	return nil
}

// Matches reports whether the edge connects emails x and y in either direction.
func (f *Friendship) Matches(x, y string) bool {
	return (f.UserEmail == x && f.FriendEmail == y) ||
		(f.UserEmail == y && f.FriendEmail == x)
}

// Involves reports whether id is either side of the edge.
func (f *Friendship) Involves(id uuid.UUID) bool {
	return f.UserID == id || f.FriendID == id
}
