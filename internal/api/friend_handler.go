package api

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/service"
)

// FriendHandler serves the /friends routes. Every route acts on behalf of the
// authenticated principal.
type FriendHandler struct {
	friends service.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friends service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// AddFriend handles POST /friends/addFriend.
func (h *FriendHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalID(w, r)
	if !ok {
		return
	}

	var req AddFriendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	edge, err := h.friends.Request(r.Context(), principal, req.NewFriendEmail)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AddFriendResponse{
		Msg:          fmt.Sprintf("Friend request has been sent to %s", req.NewFriendEmail),
		NewFriendLog: edge,
	})
}

// ConfirmFriend handles PUT /friends/confirmFriend.
func (h *FriendHandler) ConfirmFriend(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalID(w, r)
	if !ok {
		return
	}

	var req ConfirmFriendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	edge, err := h.friends.Confirm(r.Context(), principal, req.ConfirmedFriendEmail)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FriendResponse{
		Msg:       fmt.Sprintf("You are now friends with %s", req.ConfirmedFriendEmail),
		FriendLog: edge,
	})
}

// DeleteFriend handles DELETE /friends/deleteFriend.
func (h *FriendHandler) DeleteFriend(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalID(w, r)
	if !ok {
		return
	}

	var req DeleteFriendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	edge, err := h.friends.Delete(r.Context(), principal, req.DeletedFriendEmail)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FriendResponse{
		Msg:       fmt.Sprintf("%s has been removed from your friends", req.DeletedFriendEmail),
		FriendLog: edge,
	})
}

// List handles GET /friends.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalID(w, r)
	if !ok {
		return
	}

	edges, err := h.friends.List(r.Context(), principal)
	if edges == nil {
		edges = []domain.Friendship{}
	}
	respondWithResult(w, r, edges, err)
}
