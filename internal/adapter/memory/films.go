package memory

import (
	"context"

	"filmorate/internal/domain"
)

// CreateFilm stores a new film with its genre associations.
func (db *DB) CreateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, err := db.filmRow(f)
	if err != nil {
		return domain.Film{}, err
	}
	db.filmIDCounter++
	row.ID = db.filmIDCounter
	db.films[row.ID] = row
	return db.resolveFilm(row), nil
}

// UpdateFilm replaces the film row and its full genre set.
func (db *DB) UpdateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.films[f.ID]; !ok {
		return domain.Film{}, notFound("film", f.ID)
	}
	row, err := db.filmRow(f)
	if err != nil {
		return domain.Film{}, err
	}
	db.films[row.ID] = row
	return db.resolveFilm(row), nil
}

// FilmByID retrieves a film by ID.
func (db *DB) FilmByID(ctx context.Context, id int64) (domain.Film, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.films[id]
	if !ok {
		return domain.Film{}, notFound("film", id)
	}
	return db.resolveFilm(row), nil
}

// FilmsByIDs returns the known films among ids, in the order of ids.
func (db *DB) FilmsByIDs(ctx context.Context, ids []int64) ([]domain.Film, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	films := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		if row, ok := db.films[id]; ok {
			films = append(films, db.resolveFilm(row))
		}
	}
	return films, nil
}

// ListFilms returns every film ordered by id.
func (db *DB) ListFilms(ctx context.Context) ([]domain.Film, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids := sortedKeys(db.films)
	out := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.resolveFilm(db.films[id]))
	}
	return out, nil
}

// DeleteFilm removes a film and its likes.
func (db *DB) DeleteFilm(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.films[id]; !ok {
		return notFound("film", id)
	}
	delete(db.films, id)
	delete(db.likes, id)
	return nil
}

// DeleteAllFilms removes every film and like.
func (db *DB) DeleteAllFilms(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.films = make(map[int64]domain.Film)
	db.likes = make(map[int64]map[int64]struct{})
	return nil
}

// AddLike records that userID likes filmID.
func (db *DB) AddLike(ctx context.Context, filmID, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.requireFilmAndUser(filmID, userID); err != nil {
		return err
	}
	addEdge(db.likes, filmID, userID)
	return nil
}

// RemoveLike drops the like edge if present.
func (db *DB) RemoveLike(ctx context.Context, filmID, userID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.requireFilmAndUser(filmID, userID); err != nil {
		return err
	}
	delete(db.likes[filmID], userID)
	return nil
}

// Likers returns the users who liked filmID, ordered by id.
func (db *DB) Likers(ctx context.Context, filmID int64) ([]domain.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, ok := db.films[filmID]; !ok {
		return nil, notFound("film", filmID)
	}
	return db.usersByIDs(sortedIDs(db.likes[filmID])), nil
}

// PopularFilms returns the count most liked films.
func (db *DB) PopularFilms(ctx context.Context, count int) ([]domain.Film, error) {
	if count <= 0 {
		return nil, domain.ErrBadArgument
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	films := make([]domain.Film, 0, len(db.films))
	for _, row := range db.films {
		films = append(films, db.resolveFilm(row))
	}
	domain.SortByPopularity(films)
	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}

// filmRow checks references and reduces f to the stored shape: rating and
// genres by id only, genres sorted and distinct.
func (db *DB) filmRow(f domain.Film) (domain.Film, error) {
	f = f.Normalize()
	if _, ok := db.ratings[f.Rating.ID]; !ok {
		return domain.Film{}, notFound("rating", f.Rating.ID)
	}
	for _, g := range f.Genres {
		if _, ok := db.genres[g.ID]; !ok {
			return domain.Film{}, notFound("genre", g.ID)
		}
	}
	f.Rating = domain.Rating{ID: f.Rating.ID}
	return f, nil
}

// resolveFilm returns a copy of row with names and the like count filled in.
func (db *DB) resolveFilm(row domain.Film) domain.Film {
	f := row
	f.Rating = db.ratings[row.Rating.ID]
	f.Genres = make([]domain.Genre, 0, len(row.Genres))
	for _, g := range row.Genres {
		f.Genres = append(f.Genres, db.genres[g.ID])
	}
	f.LikeCount = len(db.likes[row.ID])
	return f
}

func (db *DB) requireFilmAndUser(filmID, userID int64) error {
	if _, ok := db.films[filmID]; !ok {
		return notFound("film", filmID)
	}
	return db.requireUsers(userID)
}
