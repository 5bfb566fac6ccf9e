package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/filmorate/internal/service"
)

// UserHandler serves /users and the friendship routes beneath it.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleCreate serves POST /users.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	req.ID = 0

	user, err := req.toModel()
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	created, err := h.users.Create(r.Context(), user)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate serves PUT /users. The body carries the ID.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if err := requireID(req.ID); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	user, err := req.toModel()
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	updated, err := h.users.Update(r.Context(), user)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleAddFriend serves PUT /users/{id}/friends/{friendId}.
func (h *UserHandler) HandleAddFriend(w http.ResponseWriter, r *http.Request) {
	h.friendEdge(w, r, h.users.AddFriend)
}

// HandleRemoveFriend serves DELETE /users/{id}/friends/{friendId}.
func (h *UserHandler) HandleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	h.friendEdge(w, r, h.users.RemoveFriend)
}

func (h *UserHandler) friendEdge(w http.ResponseWriter, r *http.Request, op edgeOp) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	if err := op(r.Context(), id, friendID); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleFriends serves GET /users/{id}/friends.
func (h *UserHandler) HandleFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	friends, err := h.users.Friends(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

// HandleCommonFriends serves GET /users/{id}/friends/common/{otherId}.
func (h *UserHandler) HandleCommonFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	otherID, err := pathID(r, "otherId")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	common, err := h.users.CommonFriends(r.Context(), id, otherID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, common)
}
