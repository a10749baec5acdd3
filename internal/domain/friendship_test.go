package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestPair() (User, User) {
	a := User{ID: uuid.New(), Username: "alice_a", Email: "alice@example.com"}
	b := User{ID: uuid.New(), Username: "bobby_b", Email: "bob@example.com"}
	return a, b
}

func TestNewFriendship(t *testing.T) {
	t.Parallel()
	a, b := newTestPair()

	f, err := NewFriendship(a, b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if f.UserID != a.ID || f.FriendID != b.ID {
		t.Errorf("Expected edge %s -> %s, got %s -> %s", a.ID, b.ID, f.UserID, f.FriendID)
	}
	if f.UserEmail != a.Email || f.FriendEmail != b.Email {
		t.Errorf("Expected denormalized emails, got %q and %q", f.UserEmail, f.FriendEmail)
	}
	if f.State() != FriendshipRequested {
		t.Errorf("Expected state %s, got %s", FriendshipRequested, f.State())
	}
	if f.ConfirmedAt != nil {
		t.Error("Expected nil ConfirmedAt on a new request")
	}

	_, err = NewFriendship(a, a)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for self request, got %v", err)
	}
}

func TestFriendshipState(t *testing.T) {
	t.Parallel()

	var none *Friendship
	if none.State() != FriendshipNone {
		t.Errorf("Expected nil edge to be %s, got %s", FriendshipNone, none.State())
	}
	if (&Friendship{}).State() != FriendshipRequested {
		t.Error("Expected unconfirmed edge to be REQUESTED")
	}
	if (&Friendship{Confirmed: true}).State() != FriendshipConfirmed {
		t.Error("Expected confirmed edge to be CONFIRMED")
	}
}

func TestFriendshipConfirm(t *testing.T) {
	t.Parallel()
	a, b := newTestPair()
	f, _ := NewFriendship(a, b)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := f.Confirm(now); err != nil {
		t.Fatalf("Expected first confirm to succeed, got %v", err)
	}
	if f.State() != FriendshipConfirmed {
		t.Errorf("Expected CONFIRMED, got %s", f.State())
	}
	if f.ConfirmedAt == nil || !f.ConfirmedAt.Equal(now) {
		t.Errorf("Expected ConfirmedAt %v, got %v", now, f.ConfirmedAt)
	}

	// Confirming again must always fail and must not move the timestamp.
	for i := 0; i < 3; i++ {
		later := now.Add(time.Duration(i+1) * time.Hour)
		if err := f.Confirm(later); !errors.Is(err, ErrAlreadyConfirmed) {
			t.Errorf("Expected ErrAlreadyConfirmed, got %v", err)
		}
		if !f.ConfirmedAt.Equal(now) {
			t.Errorf("Expected ConfirmedAt to stay %v, got %v", now, f.ConfirmedAt)
		}
	}

	var none *Friendship
	if err := none.Confirm(now); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Errorf("Expected confirming a missing edge to fail, got %v", err)
	}
}

func TestFriendshipMatchesIsSymmetric(t *testing.T) {
	t.Parallel()
	a, b := newTestPair()
	f, _ := NewFriendship(a, b)

	if !f.Matches(a.Email, b.Email) {
		t.Error("Expected edge to match (A, B)")
	}
	if !f.Matches(b.Email, a.Email) {
		t.Error("Expected edge to match (B, A)")
	}
	if f.Matches(a.Email, "carol@example.com") {
		t.Error("Expected edge not to match an unrelated email")
	}
	if f.Matches(a.Email, a.Email) {
		t.Error("Expected edge not to match the same email twice")
	}
	if !f.Involves(a.ID) || !f.Involves(b.ID) || f.Involves(uuid.New()) {
		t.Error("Involves reported the wrong participants")
	}
}
