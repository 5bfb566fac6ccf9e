package handler

import (
	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/validation"
)

// userRequest is the body of POST and PUT /users.
type userRequest struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,nowhitespace"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"omitempty,datetime=2006-01-02,notfuture"`
}

func (req *userRequest) toModel() (*model.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	u := &model.User{ID: req.ID, Email: req.Email, Login: req.Login, Name: req.Name}
	if req.Birthday != "" {
		b, err := model.ParseDate(req.Birthday)
		if err != nil {
			return nil, apperror.ValidationFailed("birthday", err.Error())
		}
		u.Birthday = &b
	}
	return u, nil
}

type idRef struct {
	ID int64 `json:"id"`
}

// filmRequest is the body of POST and PUT /films. Catalog references carry
// only IDs; names are filled in from the catalog.
type filmRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"notblank"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate string  `json:"releaseDate" validate:"required,datetime=2006-01-02,releasedate"`
	Duration    int     `json:"duration" validate:"gt=0"`
	MPA         *idRef  `json:"mpa" validate:"required"`
	Genres      []idRef `json:"genres"`
}

func (req *filmRequest) toModel() (*model.Film, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	release, err := model.ParseDate(req.ReleaseDate)
	if err != nil {
		return nil, apperror.ValidationFailed("releaseDate", err.Error())
	}

	f := &model.Film{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: release,
		Duration:    req.Duration,
		MPA:         model.MPARating{ID: req.MPA.ID},
		Genres:      make([]model.Genre, 0, len(req.Genres)),
	}
	for _, g := range req.Genres {
		f.Genres = append(f.Genres, model.Genre{ID: g.ID})
	}
	return f, nil
}

// requireID rejects updates that do not name the record to replace.
func requireID(id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "id is required")
	}
	return nil
}
