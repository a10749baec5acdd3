package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairService is an in-memory friend service holding at most one edge.
func pairService(alice, bob *domain.User) *mocks.MockFriendService {
	var edge *domain.Friendship
	return &mocks.MockFriendService{
		RequestFn: func(_ context.Context, principalID uuid.UUID, target string) (*domain.Friendship, error) {
			if edge != nil {
				return nil, domain.Errorf(domain.KindConflict, "%s and %s are already friends", alice.Email, target)
			}
			e, err := domain.NewFriendship(*alice, *bob)
			if err != nil {
				return nil, err
			}
			e.ID = uuid.New()
			e.SentAt = time.Now()
			edge = e
			return edge, nil
		},
		ConfirmFn: func(_ context.Context, principalID uuid.UUID, email string) (*domain.Friendship, error) {
			if edge == nil {
				return nil, domain.Errorf(domain.KindNotFound, "No friend request found between %s and %s", bob.Email, email)
			}
			if err := edge.Confirm(time.Now()); err != nil {
				return nil, domain.Errorf(domain.KindConflict, "%s and %s are already confirmed friends",
					bob.Email, email).Wrap(err)
			}
			return edge, nil
		},
	}
}

func TestFriendHandler_AddFriendTwice(t *testing.T) {
	t.Parallel()

	alice := testUser("alice@example.com", "alice01")
	bob := testUser("bob@example.com", "bob001")
	h := NewFriendHandler(pairService(alice, bob))

	rt := route{
		method:    http.MethodPost,
		pattern:   "/friends/addFriend",
		target:    "/friends/addFriend",
		body:      map[string]string{"newFriendEmail": bob.Email},
		principal: alice,
	}

	rec := serve(t, rt, h.AddFriend)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AddFriendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Friend request has been sent to bob@example.com", resp.Msg)
	require.NotNil(t, resp.NewFriendLog)
	assert.Equal(t, domain.FriendshipRequested, resp.NewFriendLog.State())

	rec = serve(t, rt, h.AddFriend)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "alice@example.com and bob@example.com are already friends", decodeError(t, rec).Error)
}

func TestFriendHandler_Confirm(t *testing.T) {
	t.Parallel()

	alice := testUser("alice@example.com", "alice01")
	bob := testUser("bob@example.com", "bob001")
	h := NewFriendHandler(pairService(alice, bob))

	confirm := route{
		method:    http.MethodPut,
		pattern:   "/friends/confirmFriend",
		target:    "/friends/confirmFriend",
		body:      map[string]string{"confirmedFriendEmail": alice.Email},
		principal: bob,
	}

	rec := serve(t, confirm, h.ConfirmFriend)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	serve(t, route{
		method: http.MethodPost, pattern: "/friends/addFriend", target: "/friends/addFriend",
		body: map[string]string{"newFriendEmail": bob.Email}, principal: alice,
	}, h.AddFriend)

	rec = serve(t, confirm, h.ConfirmFriend)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp FriendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.FriendLog.Confirmed)
	assert.NotNil(t, resp.FriendLog.ConfirmedAt)

	rec = serve(t, confirm, h.ConfirmFriend)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bob@example.com and alice@example.com are already confirmed friends", decodeError(t, rec).Error)
}

func TestFriendHandler_RequiresPrincipal(t *testing.T) {
	t.Parallel()

	called := false
	h := NewFriendHandler(&mocks.MockFriendService{
		DeleteFn: func(context.Context, uuid.UUID, string) (*domain.Friendship, error) {
			called = true
			return nil, nil
		},
	})

	rec := serve(t, route{
		method:  http.MethodDelete,
		pattern: "/friends/deleteFriend",
		target:  "/friends/deleteFriend",
		body:    map[string]string{"deletedFriendEmail": "bob@example.com"},
	}, h.DeleteFriend)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No Token, auth denied", decodeError(t, rec).Error)
	assert.False(t, called)
}

func TestFriendHandler_DeleteValidation(t *testing.T) {
	t.Parallel()

	h := NewFriendHandler(&mocks.MockFriendService{})
	rec := serve(t, route{
		method:    http.MethodDelete,
		pattern:   "/friends/deleteFriend",
		target:    "/friends/deleteFriend",
		body:      map[string]string{"deletedFriendEmail": "nope"},
		principal: testUser("alice@example.com", "alice01"),
	}, h.DeleteFriend)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "deletedFriendEmail", body.Errors[0].Field)
}

func TestFriendHandler_ListEmpty(t *testing.T) {
	t.Parallel()

	h := NewFriendHandler(&mocks.MockFriendService{})
	rec := serve(t, route{
		method:    http.MethodGet,
		pattern:   "/friends",
		target:    "/friends",
		principal: testUser("alice@example.com", "alice01"),
	}, h.List)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
