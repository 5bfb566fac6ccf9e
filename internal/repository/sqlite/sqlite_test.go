package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sakif/filmorate/internal/model"
)

// newTestDB opens a fresh migrated in-memory database, closed on cleanup.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, login string) *model.User {
	t.Helper()
	u := &model.User{Login: login, Name: login, Email: login + "@example.com"}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

func createTestFilm(t *testing.T, db *DB, name string) *model.Film {
	t.Helper()
	f := &model.Film{
		Name:        name,
		Description: "a film",
		ReleaseDate: model.NewDate(2000, 1, 1),
		Duration:    100,
		MPA:         model.MPARating{ID: 1},
	}
	if err := db.Films().Create(context.Background(), f); err != nil {
		t.Fatalf("failed to create test film: %v", err)
	}
	return f
}

func TestNew_MigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filmorate.db")

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	createTestUser(t, first, "persisted")
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening applies no migrations and keeps the data.
	second, err := New(path)
	if err != nil {
		t.Fatalf("New() on migrated file error = %v", err)
	}
	defer second.Close()

	users, err := second.Users().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 1 || users[0].Login != "persisted" {
		t.Errorf("List() = %+v, want the persisted user", users)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestCatalogSeed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ratings, err := db.Catalog().MPARatings(ctx)
	if err != nil {
		t.Fatalf("MPARatings() error = %v", err)
	}
	want := model.DefaultMPARatings()
	if len(ratings) != len(want) {
		t.Fatalf("len(MPARatings()) = %d, want %d", len(ratings), len(want))
	}
	for i := range want {
		if ratings[i] != want[i] {
			t.Errorf("MPARatings()[%d] = %+v, want %+v", i, ratings[i], want[i])
		}
	}

	genres, err := db.Catalog().Genres(ctx)
	if err != nil {
		t.Fatalf("Genres() error = %v", err)
	}
	wantGenres := model.DefaultGenres()
	if len(genres) != len(wantGenres) {
		t.Fatalf("len(Genres()) = %d, want %d", len(genres), len(wantGenres))
	}
	for i := range wantGenres {
		if genres[i] != wantGenres[i] {
			t.Errorf("Genres()[%d] = %+v, want %+v", i, genres[i], wantGenres[i])
		}
	}
}
