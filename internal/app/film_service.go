package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"filmorate/internal/domain"
)

// FilmService manages the film catalog, likes and the popularity ranking.
type FilmService struct {
	films   domain.FilmRepository
	users   domain.UserRepository
	genres  domain.GenreRepository
	ratings domain.RatingRepository
	cache   domain.RankingCache
	log     zerolog.Logger
}

// NewFilmService creates a FilmService. cache may be nil.
func NewFilmService(
	films domain.FilmRepository,
	users domain.UserRepository,
	genres domain.GenreRepository,
	ratings domain.RatingRepository,
	cache domain.RankingCache,
	log zerolog.Logger,
) *FilmService {
	return &FilmService{films: films, users: users, genres: genres, ratings: ratings, cache: cache, log: log}
}

// Create validates a film, checks its rating and genres exist and stores it.
func (s *FilmService) Create(ctx context.Context, f domain.Film) (domain.Film, error) {
	if err := f.Validate(); err != nil {
		return domain.Film{}, rejected(s.log, "create film", err)
	}
	f = f.Normalize()
	f.ID = 0
	if err := s.requireRefs(ctx, f); err != nil {
		return domain.Film{}, err
	}
	created, err := s.films.CreateFilm(ctx, f)
	if err != nil {
		return domain.Film{}, err
	}
	invalidate(ctx, s.cache, s.log)
	return created, nil
}

// Update validates and replaces an existing film, including its genre set.
func (s *FilmService) Update(ctx context.Context, f domain.Film) (domain.Film, error) {
	if f.ID == 0 {
		return domain.Film{}, rejected(s.log, "update film", domain.ErrIDMissing)
	}
	if err := f.Validate(); err != nil {
		return domain.Film{}, rejected(s.log, "update film", err)
	}
	f = f.Normalize()
	if _, err := s.films.FilmByID(ctx, f.ID); err != nil {
		return domain.Film{}, err
	}
	if err := s.requireRefs(ctx, f); err != nil {
		return domain.Film{}, err
	}
	return s.films.UpdateFilm(ctx, f)
}

// GetByID returns a film with names and like count resolved.
func (s *FilmService) GetByID(ctx context.Context, id int64) (domain.Film, error) {
	return s.films.FilmByID(ctx, id)
}

// List returns all films ordered by id.
func (s *FilmService) List(ctx context.Context) ([]domain.Film, error) {
	return s.films.ListFilms(ctx)
}

// Delete removes a film with its likes and genre associations.
func (s *FilmService) Delete(ctx context.Context, id int64) error {
	if err := s.films.DeleteFilm(ctx, id); err != nil {
		return err
	}
	s.log.Debug().Int64("film_id", id).Msg("film deleted with likes and genres")
	invalidate(ctx, s.cache, s.log)
	return nil
}

// DeleteAll removes every film.
func (s *FilmService) DeleteAll(ctx context.Context) error {
	if err := s.films.DeleteAllFilms(ctx); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// AddLike records that userID likes filmID. Repeating it is a no-op.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// RemoveLike drops userID's like of filmID if present.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// Likers returns the users who liked filmID, ordered by id.
func (s *FilmService) Likers(ctx context.Context, filmID int64) ([]domain.User, error) {
	return s.films.Likers(ctx, filmID)
}

// Popular returns the count most liked films, ties broken by ascending id.
//
// With a cache, the generation is read before storage so that a ranking
// invalidated while it was being computed is stored under a generation no
// later call reads.
func (s *FilmService) Popular(ctx context.Context, count int) ([]domain.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d: %w", count, domain.ErrBadArgument)
	}
	gen, cached := s.cacheGeneration(ctx)
	if cached {
		if films, ok := s.popularFromCache(ctx, gen, count); ok {
			return films, nil
		}
	}
	films, err := s.films.PopularFilms(ctx, count)
	if err != nil {
		return nil, err
	}
	if cached {
		ids := make([]int64, 0, len(films))
		for _, f := range films {
			ids = append(ids, f.ID)
		}
		if err := s.cache.SetPopularIDs(ctx, gen, count, ids); err != nil {
			s.log.Warn().Err(err).Int("count", count).Msg("store popular ranking in cache")
		}
	}
	return films, nil
}

// cacheGeneration reports the current cache generation; ok is false without a
// usable cache.
func (s *FilmService) cacheGeneration(ctx context.Context) (gen uint64, ok bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("read popular ranking generation")
		return 0, false
	}
	return gen, true
}

// popularFromCache resolves a cached ranking in one read. A cache error, a
// film that vanished since caching or like counts that no longer match the
// cached order send the caller back to storage.
func (s *FilmService) popularFromCache(ctx context.Context, gen uint64, count int) ([]domain.Film, bool) {
	ids, ok, err := s.cache.PopularIDs(ctx, gen, count)
	if err != nil {
		s.log.Warn().Err(err).Int("count", count).Msg("read popular ranking from cache")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	films, err := s.films.FilmsByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("resolve cached films")
		return nil, false
	}
	if len(films) != len(ids) || !domain.RankedByPopularity(films) {
		s.log.Debug().Int("count", count).Msg("cached ranking is stale")
		return nil, false
	}
	return films, true
}

func (s *FilmService) requireRefs(ctx context.Context, f domain.Film) error {
	if _, err := s.ratings.RatingByID(ctx, f.Rating.ID); err != nil {
		return err
	}
	for _, id := range f.GenreIDs() {
		if _, err := s.genres.GenreByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *FilmService) requireFilmAndUser(ctx context.Context, filmID, userID int64) error {
	if _, err := s.films.FilmByID(ctx, filmID); err != nil {
		return err
	}
	_, err := s.users.UserByID(ctx, userID)
	return err
}
