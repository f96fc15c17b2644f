package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"filmorate/internal/domain"
)

const userColumns = "u.id, u.email, u.login, u.name, u.birthday"

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Login, &u.Name, sqlDate{&u.Birthday})
	return u, err
}

func queryUsers(ctx context.Context, c conn, query string, args ...any) ([]domain.User, error) {
	rows, err := c.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func userByID(ctx context.Context, c conn, id int64) (domain.User, error) {
	u, err := scanUser(c.queryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, notFound("user", id)
	}
	return u, err
}

// CreateUser inserts a user and returns the stored row.
func (d *DB) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	var out domain.User
	err := d.withTx(ctx, func(c conn) error {
		var id int64
		err := c.queryRow(ctx,
			"INSERT INTO users (email, login, name, birthday) VALUES (?, ?, ?, ?) RETURNING id",
			u.Email, u.Login, u.Name, dateArg(u.Birthday),
		).Scan(&id)
		if err != nil {
			return err
		}
		out, err = userByID(ctx, c, id)
		return err
	})
	return out, d.wrap("create user", err)
}

// UpdateUser overwrites every column of an existing user.
func (d *DB) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	var out domain.User
	err := d.withTx(ctx, func(c conn) error {
		res, err := c.exec(ctx,
			"UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE id = ?",
			u.Email, u.Login, u.Name, dateArg(u.Birthday), u.ID,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("user", u.ID)
		}
		out, err = userByID(ctx, c, u.ID)
		return err
	})
	return out, d.wrap("update user", err)
}

// UserByID retrieves a user by ID.
func (d *DB) UserByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := userByID(ctx, d.reader(), id)
	return u, d.wrap("user by id", err)
}

// ListUsers returns every user ordered by id.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := queryUsers(ctx, d.reader(), "SELECT "+userColumns+" FROM users u ORDER BY u.id")
	return users, d.wrap("list users", err)
}

// DeleteUser removes a user and every edge that mentions it.
func (d *DB) DeleteUser(ctx context.Context, id int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claim(ctx, "user", "users", id); err != nil {
			return err
		}
		if _, err := c.exec(ctx, "DELETE FROM friendships WHERE user_id = ? OR friend_id = ?", id, id); err != nil {
			return err
		}
		if _, err := c.exec(ctx, "DELETE FROM likes WHERE user_id = ?", id); err != nil {
			return err
		}
		_, err := c.exec(ctx, "DELETE FROM users WHERE id = ?", id)
		return err
	})
	return d.wrap("delete user", err)
}

// DeleteAllUsers removes every user, friendship and like.
func (d *DB) DeleteAllUsers(ctx context.Context) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := c.claimAll(ctx, "users"); err != nil {
			return err
		}
		for _, stmt := range []string{
			"DELETE FROM friendships",
			"DELETE FROM likes",
			"DELETE FROM users",
		} {
			if _, err := c.exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return d.wrap("delete all users", err)
}

// AddFriend inserts the directed edge userID -> friendID.
func (d *DB) AddFriend(ctx context.Context, userID, friendID int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := requireUsers(ctx, c, userID, friendID); err != nil {
			return err
		}
		_, err := c.exec(ctx,
			"INSERT INTO friendships (user_id, friend_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			userID, friendID,
		)
		return err
	})
	return d.wrap("add friend", err)
}

// DeleteFriend removes the directed edge userID -> friendID if present.
func (d *DB) DeleteFriend(ctx context.Context, userID, friendID int64) error {
	err := d.withTx(ctx, func(c conn) error {
		if err := requireUsers(ctx, c, userID, friendID); err != nil {
			return err
		}
		_, err := c.exec(ctx,
			"DELETE FROM friendships WHERE user_id = ? AND friend_id = ?",
			userID, friendID,
		)
		return err
	})
	return d.wrap("delete friend", err)
}

// Friends returns the users userID points at, ordered by id.
func (d *DB) Friends(ctx context.Context, userID int64) ([]domain.User, error) {
	var out []domain.User
	err := d.withTx(ctx, func(c conn) error {
		if err := c.require(ctx, "user", "users", userID); err != nil {
			return err
		}
		var err error
		out, err = queryUsers(ctx, c,
			"SELECT "+userColumns+" FROM friendships f JOIN users u ON u.id = f.friend_id WHERE f.user_id = ? ORDER BY u.id",
			userID,
		)
		return err
	})
	return out, d.wrap("friends", err)
}

// CommonFriends returns the users both userID and otherID point at.
func (d *DB) CommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	var out []domain.User
	err := d.withTx(ctx, func(c conn) error {
		if err := requireUsers(ctx, c, userID, otherID); err != nil {
			return err
		}
		var err error
		out, err = queryUsers(ctx, c,
			"SELECT "+userColumns+" FROM friendships a"+
				" JOIN friendships b ON b.friend_id = a.friend_id AND b.user_id = ?"+
				" JOIN users u ON u.id = a.friend_id"+
				" WHERE a.user_id = ? ORDER BY u.id",
			otherID, userID,
		)
		return err
	})
	return out, d.wrap("common friends", err)
}

func requireUsers(ctx context.Context, c conn, ids ...int64) error {
	for _, id := range ids {
		if err := c.require(ctx, "user", "users", id); err != nil {
			return err
		}
	}
	return nil
}
