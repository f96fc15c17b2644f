package memory

import (
	"context"
	"fmt"

	"filmorate/internal/domain"
)

// CreateGenre stores a new genre.
func (db *DB) CreateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.genreIDCounter++
	g.ID = db.genreIDCounter
	db.genres[g.ID] = g
	return g, nil
}

// UpdateGenre renames an existing genre.
func (db *DB) UpdateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.genres[g.ID]; !ok {
		return domain.Genre{}, notFound("genre", g.ID)
	}
	db.genres[g.ID] = g
	return g, nil
}

// GenreByID retrieves a genre by ID.
func (db *DB) GenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	g, ok := db.genres[id]
	if !ok {
		return domain.Genre{}, notFound("genre", id)
	}
	return g, nil
}

// ListGenres returns every genre ordered by id.
func (db *DB) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids := sortedKeys(db.genres)
	out := make([]domain.Genre, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.genres[id])
	}
	return out, nil
}

// DeleteGenre removes a genre and detaches it from every film.
func (db *DB) DeleteGenre(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.genres[id]; !ok {
		return notFound("genre", id)
	}
	delete(db.genres, id)
	db.detachGenres(func(genreID int64) bool { return genreID == id })
	return nil
}

// DeleteAllGenres removes every genre and every film association.
func (db *DB) DeleteAllGenres(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.genres = make(map[int64]domain.Genre)
	db.detachGenres(func(int64) bool { return true })
	return nil
}

func (db *DB) detachGenres(drop func(genreID int64) bool) {
	for id, f := range db.films {
		kept := make([]domain.Genre, 0, len(f.Genres))
		for _, g := range f.Genres {
			if !drop(g.ID) {
				kept = append(kept, g)
			}
		}
		f.Genres = kept
		db.films[id] = f
	}
}

// CreateRating stores a new rating.
func (db *DB) CreateRating(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.ratingIDCounter++
	r.ID = db.ratingIDCounter
	db.ratings[r.ID] = r
	return r, nil
}

// UpdateRating renames an existing rating.
func (db *DB) UpdateRating(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.ratings[r.ID]; !ok {
		return domain.Rating{}, notFound("rating", r.ID)
	}
	db.ratings[r.ID] = r
	return r, nil
}

// RatingByID retrieves a rating by ID.
func (db *DB) RatingByID(ctx context.Context, id int64) (domain.Rating, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	r, ok := db.ratings[id]
	if !ok {
		return domain.Rating{}, notFound("rating", id)
	}
	return r, nil
}

// ListRatings returns every rating ordered by id.
func (db *DB) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids := sortedKeys(db.ratings)
	out := make([]domain.Rating, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.ratings[id])
	}
	return out, nil
}

// DeleteRating removes a rating no film refers to.
func (db *DB) DeleteRating(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.ratings[id]; !ok {
		return notFound("rating", id)
	}
	for _, f := range db.films {
		if f.Rating.ID == id {
			return fmt.Errorf("rating %d used by film %d: %w", id, f.ID, domain.ErrConflict)
		}
	}
	delete(db.ratings, id)
	return nil
}

// DeleteAllRatings removes every rating, provided no film exists.
func (db *DB) DeleteAllRatings(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.films) > 0 {
		return fmt.Errorf("ratings used by %d films: %w", len(db.films), domain.ErrConflict)
	}
	db.ratings = make(map[int64]domain.Rating)
	return nil
}
