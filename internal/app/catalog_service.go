// Package app holds the application services and business logic.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"filmorate/internal/domain"
	"filmorate/internal/logger"
)

// GenreService manages the genre catalog.
type GenreService struct {
	repo domain.GenreRepository
	log  zerolog.Logger
}

// NewGenreService creates a GenreService backed by the given repository.
func NewGenreService(repo domain.GenreRepository, log zerolog.Logger) *GenreService {
	return &GenreService{repo: repo, log: log}
}

// Create validates and stores a new genre.
func (s *GenreService) Create(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	if err := domain.ValidateName(g.Name); err != nil {
		return domain.Genre{}, rejected(s.log, "create genre", err)
	}
	return s.repo.CreateGenre(ctx, domain.Genre{Name: g.Name})
}

// Update renames an existing genre.
func (s *GenreService) Update(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	if g.ID == 0 {
		return domain.Genre{}, rejected(s.log, "update genre", domain.ErrIDMissing)
	}
	if err := domain.ValidateName(g.Name); err != nil {
		return domain.Genre{}, rejected(s.log, "update genre", err)
	}
	return s.repo.UpdateGenre(ctx, g)
}

// GetByID returns a genre.
func (s *GenreService) GetByID(ctx context.Context, id int64) (domain.Genre, error) {
	return s.repo.GenreByID(ctx, id)
}

// List returns all genres ordered by id.
func (s *GenreService) List(ctx context.Context) ([]domain.Genre, error) {
	return s.repo.ListGenres(ctx)
}

// Delete removes a genre; films lose the association.
func (s *GenreService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteGenre(ctx, id); err != nil {
		return err
	}
	s.log.Debug().Int64("genre_id", id).Msg("genre deleted with film associations")
	return nil
}

// DeleteAll removes every genre.
func (s *GenreService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAllGenres(ctx)
}

// RatingService manages the age rating catalog.
type RatingService struct {
	repo domain.RatingRepository
	log  zerolog.Logger
}

// NewRatingService creates a RatingService backed by the given repository.
func NewRatingService(repo domain.RatingRepository, log zerolog.Logger) *RatingService {
	return &RatingService{repo: repo, log: log}
}

// Create validates and stores a new rating.
func (s *RatingService) Create(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	if err := domain.ValidateName(r.Name); err != nil {
		return domain.Rating{}, rejected(s.log, "create rating", err)
	}
	return s.repo.CreateRating(ctx, domain.Rating{Name: r.Name})
}

// Update renames an existing rating.
func (s *RatingService) Update(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	if r.ID == 0 {
		return domain.Rating{}, rejected(s.log, "update rating", domain.ErrIDMissing)
	}
	if err := domain.ValidateName(r.Name); err != nil {
		return domain.Rating{}, rejected(s.log, "update rating", err)
	}
	return s.repo.UpdateRating(ctx, r)
}

// GetByID returns a rating.
func (s *RatingService) GetByID(ctx context.Context, id int64) (domain.Rating, error) {
	return s.repo.RatingByID(ctx, id)
}

// List returns all ratings ordered by id.
func (s *RatingService) List(ctx context.Context) ([]domain.Rating, error) {
	return s.repo.ListRatings(ctx)
}

// Delete removes a rating. It fails with domain.ErrConflict while a film uses it.
func (s *RatingService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteRating(ctx, id)
}

// DeleteAll removes every rating. It fails with domain.ErrConflict while any film exists.
func (s *RatingService) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAllRatings(ctx)
}

// rejected logs a write refused by validation and returns err unchanged.
func rejected(log zerolog.Logger, op string, err error) error {
	log.Warn().Str(logger.FieldOp, op).Err(err).Msg("write rejected")
	return err
}
