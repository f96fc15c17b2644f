package domain

import (
	"context"
	"strings"
)

// Genre is a film genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Rating is an age rating (MPA).
type Rating struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ValidateName checks the only rule reference catalog entries have.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameBlank
	}
	return nil
}

// GenreRepository is the port for genre persistence. Deleting a genre also
// removes its film associations.
type GenreRepository interface {
	CreateGenre(ctx context.Context, g Genre) (Genre, error)
	UpdateGenre(ctx context.Context, g Genre) (Genre, error)
	GenreByID(ctx context.Context, id int64) (Genre, error)
	ListGenres(ctx context.Context) ([]Genre, error)
	DeleteGenre(ctx context.Context, id int64) error
	DeleteAllGenres(ctx context.Context) error
}

// RatingRepository is the port for rating persistence. Deleting a rating that
// a film still references fails with ErrConflict.
type RatingRepository interface {
	CreateRating(ctx context.Context, r Rating) (Rating, error)
	UpdateRating(ctx context.Context, r Rating) (Rating, error)
	RatingByID(ctx context.Context, id int64) (Rating, error)
	ListRatings(ctx context.Context) ([]Rating, error)
	DeleteRating(ctx context.Context, id int64) error
	DeleteAllRatings(ctx context.Context) error
}

// Store is a complete storage backend. Every backend implements all ports on
// one value so that cascades can run in one critical section or transaction.
type Store interface {
	UserRepository
	FilmRepository
	GenreRepository
	RatingRepository
	Ping(ctx context.Context) error
	Close() error
}
