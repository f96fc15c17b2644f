package sqlstore

import (
	"context"
	"strings"

	"filmorate/internal/domain"
)

const filmSelect = `SELECT f.id, f.name, f.description, f.release_date, f.duration, r.id, r.name,
	(SELECT COUNT(*) FROM likes l WHERE l.film_id = f.id) AS like_count
	FROM films f JOIN ratings r ON r.id = f.rating_id`

func scanFilm(row interface{ Scan(...any) error }) (domain.Film, error) {
	var f domain.Film
	err := row.Scan(&f.ID, &f.Name, &f.Description, sqlDate{&f.ReleaseDate}, &f.Duration,
		&f.Rating.ID, &f.Rating.Name, &f.LikeCount)
	f.Genres = []domain.Genre{}
	return f, err
}

// queryFilms runs a film select and then attaches genres. The film rows are
// fully read before the genre query so a single connection is enough.
func queryFilms(ctx context.Context, c conn, query string, args ...any) ([]domain.Film, error) {
	rows, err := c.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Film, 0)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := attachGenres(ctx, c, out); err != nil {
		return nil, err
	}
	return out, nil
}

func attachGenres(ctx context.Context, c conn, films []domain.Film) error {
	if len(films) == 0 {
		return nil
	}
	index := make(map[int64]int, len(films))
	args := make([]any, 0, len(films))
	for i, f := range films {
		index[f.ID] = i
		args = append(args, f.ID)
	}
	rows, err := c.query(ctx,
		"SELECT fg.film_id, g.id, g.name FROM film_genres fg JOIN genres g ON g.id = fg.genre_id"+
			" WHERE fg.film_id IN ("+placeholders(len(films))+") ORDER BY fg.film_id, g.id",
		args...,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int64
		var g domain.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return err
		}
		i := index[filmID]
		films[i].Genres = append(films[i].Genres, g)
	}
	return rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func filmByID(ctx context.Context, c conn, id int64) (domain.Film, error) {
	films, err := queryFilms(ctx, c, filmSelect+" WHERE f.id = ?", id)
	if err != nil {
		return domain.Film{}, err
	}
	if len(films) == 0 {
		return domain.Film{}, notFound("film", id)
	}
	return films[0], nil
}

// requireRefs checks that the rating and every genre of f exist.
func requireRefs(ctx context.Context, c conn, f domain.Film) error {
	if err := c.require(ctx, "rating", "ratings", f.Rating.ID); err != nil {
		return err
	}
	for _, id := range f.GenreIDs() {
		if err := c.require(ctx, "genre", "genres", id); err != nil {
			return err
		}
	}
	return nil
}

func insertFilmGenres(ctx context.Context, c conn, f domain.Film) error {
	for _, id := range f.GenreIDs() {
		if _, err := c.exec(ctx, "INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?)", f.ID, id); err != nil {
			return err
		}
	}
	return nil
}

// CreateFilm inserts a film with its genre associations.
func (d *DB) CreateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	var out domain.Film
	err := d.withTx(ctx, func(c conn) error {
		if err := requireRefs(ctx, c, f); err != nil {
			return err
		}
		err := c.queryRow(ctx,
			"INSERT INTO films (name, description, release_date, duration, rating_id) VALUES (?, ?, ?, ?, ?) RETURNING id",
			f.Name, f.Description, dateArg(f.ReleaseDate), f.Duration, f.Rating.ID,
		).Scan(&f.ID)
		if err != nil {
			return err
		}
		if err := insertFilmGenres(ctx, c, f); err != nil {
			return err
		}
		out, err = filmByID(ctx, c, f.ID)
		return err
	})
	return out, d.wrap("create film", err)
}

// UpdateFilm rewrites the film row and replaces its genre set.
func (d *DB) UpdateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	var out domain.Film
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claim(ctx, "film", "films", f.ID); err != nil {
			return err
		}
		if err := requireRefs(ctx, c, f); err != nil {
			return err
		}
		if _, err := c.exec(ctx,
			"UPDATE films SET name = ?, description = ?, release_date = ?, duration = ?, rating_id = ? WHERE id = ?",
			f.Name, f.Description, dateArg(f.ReleaseDate), f.Duration, f.Rating.ID, f.ID,
		); err != nil {
			return err
		}
		if _, err := c.exec(ctx, "DELETE FROM film_genres WHERE film_id = ?", f.ID); err != nil {
			return err
		}
		if err := insertFilmGenres(ctx, c, f); err != nil {
			return err
		}
		var err error
		out, err = filmByID(ctx, c, f.ID)
		return err
	})
	return out, d.wrap("update film", err)
}

// FilmByID retrieves a film by ID.
func (d *DB) FilmByID(ctx context.Context, id int64) (domain.Film, error) {
	f, err := filmByID(ctx, d.reader(), id)
	return f, d.wrap("film by id", err)
}

// FilmsByIDs returns the known films among ids, in the order of ids. The
// films and their genres are read in one transaction.
func (d *DB) FilmsByIDs(ctx context.Context, ids []int64) ([]domain.Film, error) {
	out := make([]domain.Film, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	err := d.withTx(ctx, func(c conn) error {
		films, err := queryFilms(ctx, c, filmSelect+" WHERE f.id IN ("+placeholders(len(ids))+")", args...)
		if err != nil {
			return err
		}
		byID := make(map[int64]domain.Film, len(films))
		for _, f := range films {
			byID[f.ID] = f
		}
		for _, id := range ids {
			if f, ok := byID[id]; ok {
				out = append(out, f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, d.wrap("films by ids", err)
	}
	return out, nil
}

// ListFilms returns every film ordered by id.
func (d *DB) ListFilms(ctx context.Context) ([]domain.Film, error) {
	films, err := queryFilms(ctx, d.reader(), filmSelect+" ORDER BY f.id")
	return films, d.wrap("list films", err)
}

// DeleteFilm removes a film with its likes and genre associations.
func (d *DB) DeleteFilm(ctx context.Context, id int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claim(ctx, "film", "films", id); err != nil {
			return err
		}
		for _, stmt := range []string{
			"DELETE FROM likes WHERE film_id = ?",
			"DELETE FROM film_genres WHERE film_id = ?",
			"DELETE FROM films WHERE id = ?",
		} {
			if _, err := c.exec(ctx, stmt, id); err != nil {
				return err
			}
		}
		return nil
	})
	return d.wrap("delete film", err)
}

// DeleteAllFilms removes every film, like and genre association.
func (d *DB) DeleteAllFilms(ctx context.Context) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claimAll(ctx, "films"); err != nil {
			return err
		}
		for _, stmt := range []string{
			"DELETE FROM likes",
			"DELETE FROM film_genres",
			"DELETE FROM films",
		} {
			if _, err := c.exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return d.wrap("delete all films", err)
}

// AddLike records that userID likes filmID.
func (d *DB) AddLike(ctx context.Context, filmID, userID int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := requireFilmAndUser(ctx, c, filmID, userID); err != nil {
			return err
		}
		_, err := c.exec(ctx,
			"INSERT INTO likes (film_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			filmID, userID,
		)
		return err
	})
	return d.wrap("add like", err)
}

// RemoveLike drops the like edge if present.
func (d *DB) RemoveLike(ctx context.Context, filmID, userID int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := requireFilmAndUser(ctx, c, filmID, userID); err != nil {
			return err
		}
		_, err := c.exec(ctx, "DELETE FROM likes WHERE film_id = ? AND user_id = ?", filmID, userID)
		return err
	})
	return d.wrap("remove like", err)
}

// Likers returns the users who liked filmID, ordered by id.
func (d *DB) Likers(ctx context.Context, filmID int64) ([]domain.User, error) {
	var out []domain.User
	err := d.withTx(ctx, func(c conn) error {
		if err := c.require(ctx, "film", "films", filmID); err != nil {
			return err
		}
		var err error
		out, err = queryUsers(ctx, c,
			"SELECT "+userColumns+" FROM likes l JOIN users u ON u.id = l.user_id WHERE l.film_id = ? ORDER BY u.id",
			filmID,
		)
		return err
	})
	return out, d.wrap("likers", err)
}

// PopularFilms returns the count most liked films, ties broken by id.
func (d *DB) PopularFilms(ctx context.Context, count int) ([]domain.Film, error) {
	if count <= 0 {
		return nil, domain.ErrBadArgument
	}
	films, err := queryFilms(ctx, d.reader(), filmSelect+" ORDER BY like_count DESC, f.id ASC LIMIT ?", count)
	return films, d.wrap("popular films", err)
}

func requireFilmAndUser(ctx context.Context, c conn, filmID, userID int64) error {
	if err := c.require(ctx, "film", "films", filmID); err != nil {
		return err
	}
	return c.require(ctx, "user", "users", userID)
}
