package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"filmorate/internal/domain"
)

// Default reference catalogs installed by Seed.
var (
	DefaultRatings = []string{"G", "PG", "PG-13", "R", "NC-17"}
	DefaultGenres  = []string{"Comedy", "Drama", "Animation", "Thriller", "Documentary", "Action"}
)

// Seed installs the default ratings and genres into each catalog that is
// still empty. Catalogs that already hold entries are left alone.
func Seed(ctx context.Context, genres domain.GenreRepository, ratings domain.RatingRepository, log zerolog.Logger) error {
	existingRatings, err := ratings.ListRatings(ctx)
	if err != nil {
		return fmt.Errorf("seed ratings: %w", err)
	}
	if len(existingRatings) == 0 {
		for _, name := range DefaultRatings {
			if _, err := ratings.CreateRating(ctx, domain.Rating{Name: name}); err != nil {
				return fmt.Errorf("seed rating %q: %w", name, err)
			}
		}
		log.Info().Int("count", len(DefaultRatings)).Msg("seeded ratings")
	}

	existingGenres, err := genres.ListGenres(ctx)
	if err != nil {
		return fmt.Errorf("seed genres: %w", err)
	}
	if len(existingGenres) == 0 {
		for _, name := range DefaultGenres {
			if _, err := genres.CreateGenre(ctx, domain.Genre{Name: name}); err != nil {
				return fmt.Errorf("seed genre %q: %w", name, err)
			}
		}
		log.Info().Int("count", len(DefaultGenres)).Msg("seeded genres")
	}
	return nil
}
