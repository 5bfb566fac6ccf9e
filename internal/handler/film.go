package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/graph"
	"github.com/sakif/filmorate/internal/service"
)

// edgeOp is the shape of every edge mutation: two endpoint IDs, no result.
type edgeOp func(ctx context.Context, a, b int64) error

// FilmHandler serves /films, likes and the popularity query.
type FilmHandler struct {
	films  *service.FilmService
	logger *slog.Logger
}

func NewFilmHandler(films *service.FilmService, logger *slog.Logger) *FilmHandler {
	return &FilmHandler{films: films, logger: logger}
}

// HandleCreate serves POST /films.
func (h *FilmHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req filmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	req.ID = 0

	film, err := req.toModel()
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	created, err := h.films.Create(r.Context(), film)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate serves PUT /films. The body carries the ID.
func (h *FilmHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req filmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if err := requireID(req.ID); err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	film, err := req.toModel()
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	updated, err := h.films.Update(r.Context(), film)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FilmHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.List(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}

func (h *FilmHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	film, err := h.films.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, film)
}

// HandleAddLike serves PUT /films/{id}/like/{userId}.
func (h *FilmHandler) HandleAddLike(w http.ResponseWriter, r *http.Request) {
	h.likeEdge(w, r, h.films.AddLike)
}

// HandleRemoveLike serves DELETE /films/{id}/like/{userId}.
func (h *FilmHandler) HandleRemoveLike(w http.ResponseWriter, r *http.Request) {
	h.likeEdge(w, r, h.films.RemoveLike)
}

func (h *FilmHandler) likeEdge(w http.ResponseWriter, r *http.Request, op edgeOp) {
	filmID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	if err := op(r.Context(), filmID, userID); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePopular serves GET /films/popular?count=N. Without count the
// default of graph.DefaultPopularCount applies; count <= 0 yields [].
func (h *FilmHandler) HandlePopular(w http.ResponseWriter, r *http.Request) {
	count := graph.DefaultPopularCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, h.logger, r, apperror.ValidationFailed("count", "count must be an integer"))
			return
		}
		count = n
	}

	films, err := h.films.Popular(r.Context(), count)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, films)
}
