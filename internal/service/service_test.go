package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sakif/filmorate/internal/apperror"
	"github.com/sakif/filmorate/internal/graph"
	"github.com/sakif/filmorate/internal/model"
	"github.com/sakif/filmorate/internal/repository/memory"
)

type services struct {
	store   *memory.Store
	users   *UserService
	films   *FilmService
	catalog *CatalogService
}

func newTestServices(t *testing.T) *services {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := memory.New()

	rel := graph.NewRelations(store.Users(), store.Films(), store.Friends(), store.Likes())
	rank := graph.NewRanking(rel, store.Films(), store.Likes())
	catalog := NewCatalogService(store.Catalog(), 16, time.Minute, logger)

	return &services{
		store:   store,
		users:   NewUserService(store.Users(), rel, rank, logger),
		films:   NewFilmService(store.Films(), store.Users(), catalog, rel, rank, logger),
		catalog: catalog,
	}
}

func newFilm(name string) *model.Film {
	return &model.Film{
		Name:        name,
		Description: "desc",
		ReleaseDate: model.NewDate(2001, 9, 1),
		Duration:    120,
		MPA:         model.MPARating{ID: 1},
	}
}

func TestUserCreate_NameDefaulting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
	}{
		{name: "blank name takes login", input: "", wantName: "joe"},
		{name: "whitespace name takes login", input: "   ", wantName: "joe"},
		{name: "explicit name preserved", input: "Joe Smith", wantName: "Joe Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)
			ctx := context.Background()

			created, err := s.users.Create(ctx, &model.User{Login: "joe", Email: "joe@example.com", Name: tt.input})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			stored, err := s.users.GetByID(ctx, created.ID)
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if stored.Name != tt.wantName {
				t.Errorf("stored name = %q, want %q", stored.Name, tt.wantName)
			}
		})
	}
}

func TestUserUpdate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	u, _ := s.users.Create(ctx, &model.User{Login: "joe", Email: "joe@example.com", Name: "Joe"})

	updated, err := s.users.Update(ctx, &model.User{ID: u.ID, Login: "joseph", Email: "j@example.com"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "joseph" {
		t.Errorf("Name = %q, want login as default", updated.Name)
	}

	_, err = s.users.Update(ctx, &model.User{ID: 9999, Login: "ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrNotFound", err)
	}

	users, _ := s.users.List(ctx)
	if len(users) != 1 {
		t.Errorf("List() = %d users, want 1", len(users))
	}
}

func TestUserFriends(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a, _ := s.users.Create(ctx, &model.User{Login: "a", Email: "a@example.com"})
	b, _ := s.users.Create(ctx, &model.User{Login: "b", Email: "b@example.com"})
	c, _ := s.users.Create(ctx, &model.User{Login: "c", Email: "c@example.com"})

	for _, pair := range [][2]int64{{a.ID, c.ID}, {b.ID, c.ID}, {a.ID, b.ID}} {
		if err := s.users.AddFriend(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("AddFriend(%d, %d) error = %v", pair[0], pair[1], err)
		}
	}

	common, err := s.users.CommonFriends(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("CommonFriends() error = %v", err)
	}
	if len(common) != 1 || common[0].ID != c.ID {
		t.Errorf("CommonFriends() = %+v, want [%d]", common, c.ID)
	}

	if err := s.users.RemoveFriend(ctx, a.ID, c.ID); err != nil {
		t.Fatalf("RemoveFriend() error = %v", err)
	}
	friends, _ := s.users.Friends(ctx, c.ID)
	if len(friends) != 1 || friends[0].ID != b.ID {
		t.Errorf("Friends(c) = %+v, want [%d]", friends, b.ID)
	}

	if err := s.users.AddFriend(ctx, a.ID, 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("AddFriend(unknown) error = %v, want ErrNotFound", err)
	}
	if err := s.users.AddFriend(ctx, a.ID, a.ID); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("AddFriend(self) error = %v, want ErrValidation", err)
	}
}

func TestFilmCreate_ResolvesCatalog(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	f := newFilm("Alien")
	f.MPA = model.MPARating{ID: 4}
	f.Genres = []model.Genre{{ID: 4}, {ID: 1}, {ID: 4}}

	created, err := s.films.Create(ctx, f)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.MPA.Name != "R" {
		t.Errorf("MPA.Name = %q, want R", created.MPA.Name)
	}
	if len(created.Genres) != 2 || created.Genres[0].Name != "Comedy" || created.Genres[1].Name != "Thriller" {
		t.Errorf("Genres = %+v, want [Comedy Thriller]", created.Genres)
	}
}

func TestFilmCreate_UnknownCatalogIDs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Film)
	}{
		{name: "unknown mpa", mutate: func(f *model.Film) { f.MPA.ID = 99 }},
		{name: "unknown genre", mutate: func(f *model.Film) { f.Genres = []model.Genre{{ID: 1}, {ID: 99}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServices(t)
			ctx := context.Background()

			f := newFilm("x")
			tt.mutate(f)
			if _, err := s.films.Create(ctx, f); !errors.Is(err, apperror.ErrNotFound) {
				t.Fatalf("Create() error = %v, want ErrNotFound", err)
			}

			films, _ := s.films.List(ctx)
			if len(films) != 0 {
				t.Errorf("List() = %d films, want 0", len(films))
			}
		})
	}
}

func TestFilmCreate_MonotonicIDs(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	var last int64
	for _, name := range []string{"one", "two", "three"} {
		f, err := s.films.Create(ctx, newFilm(name))
		if err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
		if f.ID <= last {
			t.Errorf("ID = %d, want > %d", f.ID, last)
		}
		last = f.ID
	}
}

func TestFilmUpdate_UnknownID(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	f := newFilm("ghost")
	f.ID = 9999
	if _, err := s.films.Update(ctx, f); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}

	films, _ := s.films.List(ctx)
	if len(films) != 0 {
		t.Errorf("Update() inserted a record: %+v", films)
	}
}

func TestFilmUpdate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	f, _ := s.films.Create(ctx, newFilm("before"))
	upd := newFilm("after")
	upd.ID = f.ID
	upd.Genres = []model.Genre{{ID: 2}}

	if _, err := s.films.Update(ctx, upd); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := s.films.GetByID(ctx, f.ID)
	if got.Name != "after" || len(got.Genres) != 1 || got.Genres[0].Name != "Drama" {
		t.Errorf("GetByID() = %+v", got)
	}
}

func TestFilmLikesAndPopular(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	f1, _ := s.films.Create(ctx, newFilm("f1"))
	f2, _ := s.films.Create(ctx, newFilm("f2"))
	u, _ := s.users.Create(ctx, &model.User{Login: "u", Email: "u@example.com"})

	if err := s.films.AddLike(ctx, f2.ID, u.ID); err != nil {
		t.Fatalf("AddLike() error = %v", err)
	}

	popular, err := s.films.Popular(ctx, graph.DefaultPopularCount)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if len(popular) != 2 || popular[0].ID != f2.ID || popular[1].ID != f1.ID {
		t.Errorf("Popular() = %+v, want [%d %d]", popular, f2.ID, f1.ID)
	}

	if err := s.films.RemoveLike(ctx, f2.ID, u.ID); err != nil {
		t.Fatalf("RemoveLike() error = %v", err)
	}
	popular, _ = s.films.Popular(ctx, 1)
	if len(popular) != 1 || popular[0].ID != f1.ID {
		t.Errorf("Popular(1) after unlike = %+v, want [%d]", popular, f1.ID)
	}

	if err := s.films.AddLike(ctx, f1.ID, 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("AddLike(unknown user) error = %v, want ErrNotFound", err)
	}
}

// countingCatalog counts repository hits so cache behaviour is observable.
type countingCatalog struct {
	*memory.CatalogStore
	genreCalls int
}

func (c *countingCatalog) Genre(ctx context.Context, id int64) (*model.Genre, error) {
	c.genreCalls++
	return c.CatalogStore.Genre(ctx, id)
}

func TestCatalogService_CachesLookups(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := &countingCatalog{CatalogStore: memory.NewCatalogStore(model.DefaultMPARatings(), model.DefaultGenres())}
	svc := NewCatalogService(repo, 8, time.Minute, logger)
	ctx := context.Background()

	for range 3 {
		g, err := svc.Genre(ctx, 2)
		if err != nil {
			t.Fatalf("Genre() error = %v", err)
		}
		if g.Name != "Drama" {
			t.Errorf("Genre(2).Name = %q, want Drama", g.Name)
		}
	}
	if repo.genreCalls != 1 {
		t.Errorf("repository hit %d times, want 1", repo.genreCalls)
	}

	if _, err := svc.Genre(ctx, 99); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Genre(99) error = %v, want ErrNotFound", err)
	}

	ratings, err := svc.MPARatings(ctx)
	if err != nil || len(ratings) != 5 {
		t.Errorf("MPARatings() = %d items, %v", len(ratings), err)
	}
	genres, err := svc.Genres(ctx)
	if err != nil || len(genres) != 6 {
		t.Errorf("Genres() = %d items, %v", len(genres), err)
	}
}

// failingFilms fails every storage call with a non-domain error.
type failingFilms struct{ *memory.FilmStore }

var errDiskFull = errors.New("disk full")

func (failingFilms) Create(context.Context, *model.Film) error { return errDiskFull }

func TestFilmCreate_StorageFailureWrapped(t *testing.T) {
	s := newTestServices(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	films := NewFilmService(failingFilms{s.store.Films()}, s.store.Users(), s.catalog, nil, nil, logger)

	_, err := films.Create(context.Background(), newFilm("x"))
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Create() error = %v, want wrapped errDiskFull", err)
	}
	if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrValidation) {
		t.Errorf("storage failure classified as domain error: %v", err)
	}
}

// Edge mutations with an unknown endpoint must fail in the service itself;
// the nil graph engine would panic if it were reached.
func TestEdgeMutations_CheckEndpointsBeforeDelegating(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	users := NewUserService(s.store.Users(), nil, nil, logger)
	films := NewFilmService(s.store.Films(), s.store.Users(), s.catalog, nil, nil, logger)

	u, err := s.users.Create(ctx, &model.User{Email: "a@example.com", Login: "a"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f, err := s.films.Create(ctx, newFilm("known"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"add friend unknown friend", func() error { return users.AddFriend(ctx, u.ID, 9999) }},
		{"add friend unknown user", func() error { return users.AddFriend(ctx, 9999, u.ID) }},
		{"remove friend unknown friend", func() error { return users.RemoveFriend(ctx, u.ID, 9999) }},
		{"add like unknown film", func() error { return films.AddLike(ctx, 9999, u.ID) }},
		{"add like unknown user", func() error { return films.AddLike(ctx, f.ID, 9999) }},
		{"remove like unknown user", func() error { return films.RemoveLike(ctx, f.ID, 9999) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, apperror.ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}
