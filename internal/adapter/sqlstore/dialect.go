package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

type dialect struct {
	name string
	// numbered placeholders ($1, $2, ...) instead of ?.
	numbered bool
	// rowLocks enables SELECT ... FOR SHARE/UPDATE on existence checks.
	rowLocks bool
	schema   []string
}

// rowLock is the locking clause of an existence check. A reference check takes
// a share lock so that a concurrent delete of the referenced row waits for the
// checking transaction; a row about to be changed or deleted is locked for update.
type rowLock string

const (
	lockShare  rowLock = " FOR SHARE"
	lockUpdate rowLock = " FOR UPDATE"
)

// locking appends l to query where the dialect supports row locks. SQLite
// serialises writers on its single connection and needs none.
func (d dialect) locking(query string, l rowLock) string {
	if !d.rowLocks {
		return query
	}
	return query + string(l)
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return dialect{name: "postgres", numbered: true, rowLocks: true, schema: postgresSchema}, nil
	case "sqlite":
		return dialect{name: "sqlite", schema: sqliteSchema}, nil
	default:
		return dialect{}, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

// rebind rewrites ? placeholders for dialects that number them. Queries in
// this package never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.numbered || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		login TEXT NOT NULL,
		name TEXT NOT NULL,
		birthday DATE NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS genres (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS films (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		release_date DATE NOT NULL,
		duration INTEGER NOT NULL CHECK (duration > 0),
		rating_id BIGINT NOT NULL REFERENCES ratings(id)
	);`,
	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id BIGINT NOT NULL REFERENCES films(id),
		genre_id BIGINT NOT NULL REFERENCES genres(id),
		PRIMARY KEY (film_id, genre_id)
	);`,
	`CREATE TABLE IF NOT EXISTS likes (
		film_id BIGINT NOT NULL REFERENCES films(id),
		user_id BIGINT NOT NULL REFERENCES users(id),
		PRIMARY KEY (film_id, user_id)
	);`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id BIGINT NOT NULL REFERENCES users(id),
		friend_id BIGINT NOT NULL REFERENCES users(id),
		PRIMARY KEY (user_id, friend_id)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_films_rating_id ON films(rating_id);`,
	`CREATE INDEX IF NOT EXISTS idx_film_genres_genre_id ON film_genres(genre_id);`,
	`CREATE INDEX IF NOT EXISTS idx_likes_user_id ON likes(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_friendships_friend_id ON friendships(friend_id);`,
}

// SQLite keeps dates as YYYY-MM-DD text.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL,
		login TEXT NOT NULL,
		name TEXT NOT NULL,
		birthday TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS genres (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS films (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		release_date TEXT NOT NULL,
		duration INTEGER NOT NULL CHECK (duration > 0),
		rating_id INTEGER NOT NULL REFERENCES ratings(id)
	);`,
	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id INTEGER NOT NULL REFERENCES films(id),
		genre_id INTEGER NOT NULL REFERENCES genres(id),
		PRIMARY KEY (film_id, genre_id)
	);`,
	`CREATE TABLE IF NOT EXISTS likes (
		film_id INTEGER NOT NULL REFERENCES films(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		PRIMARY KEY (film_id, user_id)
	);`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id INTEGER NOT NULL REFERENCES users(id),
		friend_id INTEGER NOT NULL REFERENCES users(id),
		PRIMARY KEY (user_id, friend_id)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_films_rating_id ON films(rating_id);`,
	`CREATE INDEX IF NOT EXISTS idx_film_genres_genre_id ON film_genres(genre_id);`,
	`CREATE INDEX IF NOT EXISTS idx_likes_user_id ON likes(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_friendships_friend_id ON friendships(friend_id);`,
}
