package model

import (
	"cmp"
	"slices"
)

// Film is a catalogue entry users can like.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate Date      `json:"releaseDate"`
	Duration    int       `json:"duration"` // minutes
	MPA         MPARating `json:"mpa"`
	Genres      []Genre   `json:"genres"`
}

// Clone returns a copy that shares no slices with f.
func (f Film) Clone() Film {
	f.Genres = slices.Clone(f.Genres)
	if f.Genres == nil {
		f.Genres = []Genre{}
	}
	return f
}

// NormalizeGenres collapses duplicate genre IDs and orders the set by ID.
// The first occurrence of each ID wins.
func (f *Film) NormalizeGenres() {
	seen := make(map[int64]struct{}, len(f.Genres))
	out := make([]Genre, 0, len(f.Genres))
	for _, g := range f.Genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b Genre) int { return cmp.Compare(a.ID, b.ID) })
	f.Genres = out
}
