package sqlite

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/sakif/filmorate/internal/apperror"
)

func TestFriendAdd_Symmetric(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")

	if err := db.Friends().Add(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// Repeating in either direction changes nothing.
	if err := db.Friends().Add(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("repeated Add() error = %v", err)
	}

	for _, tc := range []struct{ user, want int64 }{{a.ID, b.ID}, {b.ID, a.ID}} {
		ids, err := db.Friends().FriendIDs(ctx, tc.user)
		if err != nil {
			t.Fatalf("FriendIDs(%d) error = %v", tc.user, err)
		}
		if !slices.Equal(ids, []int64{tc.want}) {
			t.Errorf("FriendIDs(%d) = %v, want [%d]", tc.user, ids, tc.want)
		}
	}
}

func TestFriendRemove_Symmetric(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")

	_ = db.Friends().Add(ctx, a.ID, b.ID)
	if err := db.Friends().Remove(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := db.Friends().Remove(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("Remove() of absent edge error = %v", err)
	}

	for _, id := range []int64{a.ID, b.ID} {
		ids, _ := db.Friends().FriendIDs(ctx, id)
		if len(ids) != 0 {
			t.Errorf("FriendIDs(%d) = %v, want empty", id, ids)
		}
	}
}

func TestFriendIDs_Ordered(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	hub := createTestUser(t, db, "hub")
	c := createTestUser(t, db, "c")
	b := createTestUser(t, db, "b")

	_ = db.Friends().Add(ctx, hub.ID, b.ID)
	_ = db.Friends().Add(ctx, hub.ID, c.ID)

	ids, _ := db.Friends().FriendIDs(ctx, hub.ID)
	if !slices.Equal(ids, []int64{c.ID, b.ID}) {
		t.Errorf("FriendIDs() = %v, want ascending [%d %d]", ids, c.ID, b.ID)
	}
}

func TestFriendAdd_SelfRejectedBySchema(t *testing.T) {
	db := newTestDB(t)
	a := createTestUser(t, db, "a")

	ctx := context.Background()

	if err := db.Friends().Add(ctx, a.ID, a.ID); err == nil {
		t.Error("Add(self) succeeded, want CHECK constraint error")
	}
	ids, err := db.Friends().FriendIDs(ctx, a.ID)
	if err != nil {
		t.Fatalf("FriendIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("FriendIDs() = %v after rejected self Add, want empty", ids)
	}
}

func TestLikes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f1 := createTestFilm(t, db, "one")
	f2 := createTestFilm(t, db, "two")
	u1 := createTestUser(t, db, "u1")
	u2 := createTestUser(t, db, "u2")

	for _, l := range []struct{ film, user int64 }{
		{f1.ID, u1.ID}, {f1.ID, u1.ID}, {f2.ID, u1.ID}, {f2.ID, u2.ID},
	} {
		if err := db.Likes().Add(ctx, l.film, l.user); err != nil {
			t.Fatalf("Add(%d, %d) error = %v", l.film, l.user, err)
		}
	}

	counts, err := db.Likes().Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts[f1.ID] != 1 || counts[f2.ID] != 2 {
		t.Errorf("Counts() = %v, want {%d:1 %d:2}", counts, f1.ID, f2.ID)
	}

	ok, _ := db.Likes().Exists(ctx, f2.ID, u2.ID)
	if !ok {
		t.Error("Exists() = false, want true")
	}

	if err := db.Likes().Remove(ctx, f2.ID, u2.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := db.Likes().Remove(ctx, f2.ID, u2.ID); err != nil {
		t.Fatalf("Remove() of absent like error = %v", err)
	}
	ok, _ = db.Likes().Exists(ctx, f2.ID, u2.ID)
	if ok {
		t.Error("Exists() after Remove = true, want false")
	}
}

func TestCatalogLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	g, err := db.Catalog().Genre(ctx, 3)
	if err != nil || g.Name != "Animation" {
		t.Errorf("Genre(3) = %+v, %v", g, err)
	}
	m, err := db.Catalog().MPARating(ctx, 5)
	if err != nil || m.Name != "NC-17" {
		t.Errorf("MPARating(5) = %+v, %v", m, err)
	}

	if _, err := db.Catalog().Genre(ctx, 99); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Genre(99) error = %v, want ErrNotFound", err)
	}
	if _, err := db.Catalog().MPARating(ctx, 99); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("MPARating(99) error = %v, want ErrNotFound", err)
	}
}
