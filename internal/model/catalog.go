package model

// MPARating is a Motion Picture Association content rating. Every film
// carries exactly one.
type MPARating struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Genre is a film genre. A film has a set of them.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// DefaultMPARatings is the reference rating table seeded into every store.
// The SQLite migrations insert the same rows.
func DefaultMPARatings() []MPARating {
	return []MPARating{
		{ID: 1, Name: "G", Description: "General audiences, all ages admitted"},
		{ID: 2, Name: "PG", Description: "Parental guidance suggested"},
		{ID: 3, Name: "PG-13", Description: "Parents strongly cautioned, under 13"},
		{ID: 4, Name: "R", Description: "Restricted, under 17 requires an accompanying adult"},
		{ID: 5, Name: "NC-17", Description: "Adults only"},
	}
}

// DefaultGenres is the reference genre table seeded into every store.
func DefaultGenres() []Genre {
	return []Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Animation"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
}
