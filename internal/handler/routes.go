package handler

import "github.com/go-chi/chi/v5"

// Routes returns the /users subrouter.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Put("/", h.HandleUpdate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGetByID)
	r.Get("/{id}/friends", h.HandleFriends)
	r.Get("/{id}/friends/common/{otherId}", h.HandleCommonFriends)
	r.Put("/{id}/friends/{friendId}", h.HandleAddFriend)
	r.Delete("/{id}/friends/{friendId}", h.HandleRemoveFriend)
	return r
}

// Routes returns the /films subrouter.
func (h *FilmHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Put("/", h.HandleUpdate)
	r.Get("/", h.HandleList)
	r.Get("/popular", h.HandlePopular)
	r.Get("/{id}", h.HandleGetByID)
	r.Put("/{id}/like/{userId}", h.HandleAddLike)
	r.Delete("/{id}/like/{userId}", h.HandleRemoveLike)
	return r
}

// MPARoutes returns the /mpa subrouter.
func (h *CatalogHandler) MPARoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleListMPA)
	r.Get("/{id}", h.HandleGetMPA)
	return r
}

// GenreRoutes returns the /genres subrouter.
func (h *CatalogHandler) GenreRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleListGenres)
	r.Get("/{id}", h.HandleGetGenre)
	return r
}
