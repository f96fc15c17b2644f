package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filmorate/internal/domain"
)

// catalog is a flat id/name table shared by genres and ratings.
type catalog struct {
	entity string
	table  string
}

var (
	genres  = catalog{entity: "genre", table: "genres"}
	ratings = catalog{entity: "rating", table: "ratings"}
)

func (cat catalog) create(ctx context.Context, c conn, name string) (int64, error) {
	var id int64
	err := c.queryRow(ctx, "INSERT INTO "+cat.table+" (name) VALUES (?) RETURNING id", name).Scan(&id)
	return id, err
}

func (cat catalog) update(ctx context.Context, c conn, id int64, name string) error {
	res, err := c.exec(ctx, "UPDATE "+cat.table+" SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(cat.entity, id)
	}
	return nil
}

func (cat catalog) byID(ctx context.Context, c conn, id int64) (int64, string, error) {
	var name string
	err := c.queryRow(ctx, "SELECT name FROM "+cat.table+" WHERE id = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", notFound(cat.entity, id)
	}
	return id, name, err
}

func (cat catalog) list(ctx context.Context, c conn, fn func(id int64, name string)) error {
	rows, err := c.query(ctx, "SELECT id, name FROM "+cat.table+" ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		fn(id, name)
	}
	return rows.Err()
}

// CreateGenre inserts a genre.
func (d *DB) CreateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	id, err := genres.create(ctx, d.reader(), g.Name)
	if err != nil {
		return domain.Genre{}, d.wrap("create genre", err)
	}
	return domain.Genre{ID: id, Name: g.Name}, nil
}

// UpdateGenre renames a genre.
func (d *DB) UpdateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	if err := genres.update(ctx, d.reader(), g.ID, g.Name); err != nil {
		return domain.Genre{}, d.wrap("update genre", err)
	}
	return g, nil
}

// GenreByID retrieves a genre by ID.
func (d *DB) GenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	id, name, err := genres.byID(ctx, d.reader(), id)
	if err != nil {
		return domain.Genre{}, d.wrap("genre by id", err)
	}
	return domain.Genre{ID: id, Name: name}, nil
}

// ListGenres returns every genre ordered by id.
func (d *DB) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	out := make([]domain.Genre, 0)
	err := genres.list(ctx, d.reader(), func(id int64, name string) {
		out = append(out, domain.Genre{ID: id, Name: name})
	})
	if err != nil {
		return nil, d.wrap("list genres", err)
	}
	return out, nil
}

// DeleteGenre removes a genre and its film associations.
func (d *DB) DeleteGenre(ctx context.Context, id int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claim(ctx, "genre", "genres", id); err != nil {
			return err
		}
		if _, err := c.exec(ctx, "DELETE FROM film_genres WHERE genre_id = ?", id); err != nil {
			return err
		}
		_, err := c.exec(ctx, "DELETE FROM genres WHERE id = ?", id)
		return err
	})
	return d.wrap("delete genre", err)
}

// DeleteAllGenres removes every genre and every film association.
func (d *DB) DeleteAllGenres(ctx context.Context) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claimAll(ctx, "genres"); err != nil {
			return err
		}
		if _, err := c.exec(ctx, "DELETE FROM film_genres"); err != nil {
			return err
		}
		_, err := c.exec(ctx, "DELETE FROM genres")
		return err
	})
	return d.wrap("delete all genres", err)
}

// CreateRating inserts a rating.
func (d *DB) CreateRating(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	id, err := ratings.create(ctx, d.reader(), r.Name)
	if err != nil {
		return domain.Rating{}, d.wrap("create rating", err)
	}
	return domain.Rating{ID: id, Name: r.Name}, nil
}

// UpdateRating renames a rating.
func (d *DB) UpdateRating(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	if err := ratings.update(ctx, d.reader(), r.ID, r.Name); err != nil {
		return domain.Rating{}, d.wrap("update rating", err)
	}
	return r, nil
}

// RatingByID retrieves a rating by ID.
func (d *DB) RatingByID(ctx context.Context, id int64) (domain.Rating, error) {
	id, name, err := ratings.byID(ctx, d.reader(), id)
	if err != nil {
		return domain.Rating{}, d.wrap("rating by id", err)
	}
	return domain.Rating{ID: id, Name: name}, nil
}

// ListRatings returns every rating ordered by id.
func (d *DB) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	out := make([]domain.Rating, 0)
	err := ratings.list(ctx, d.reader(), func(id int64, name string) {
		out = append(out, domain.Rating{ID: id, Name: name})
	})
	if err != nil {
		return nil, d.wrap("list ratings", err)
	}
	return out, nil
}

// DeleteRating removes a rating no film refers to.
func (d *DB) DeleteRating(ctx context.Context, id int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claim(ctx, "rating", "ratings", id); err != nil {
			return err
		}
		var filmID int64
		err := c.queryRow(ctx, "SELECT id FROM films WHERE rating_id = ? ORDER BY id LIMIT 1", id).Scan(&filmID)
		switch {
		case err == nil:
			return fmt.Errorf("rating %d used by film %d: %w", id, filmID, domain.ErrConflict)
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}
		_, err = c.exec(ctx, "DELETE FROM ratings WHERE id = ?", id)
		return err
	})
	return d.wrap("delete rating", err)
}

// DeleteAllRatings removes every rating, provided no film exists.
func (d *DB) DeleteAllRatings(ctx context.Context) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claimAll(ctx, "ratings"); err != nil {
			return err
		}
		var n int
		if err := c.queryRow(ctx, "SELECT COUNT(*) FROM films").Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("ratings used by %d films: %w", n, domain.ErrConflict)
		}
		_, err := c.exec(ctx, "DELETE FROM ratings")
		return err
	})
	return d.wrap("delete all ratings", err)
}
