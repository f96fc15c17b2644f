// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// User is a member of the social graph.
type User struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
}

// Validate checks the user rules against today's date. The first violated
// rule is returned.
func (u User) Validate(today time.Time) error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmailBlank
	}
	if !strings.Contains(u.Email, "@") {
		return ErrEmailNoAt
	}
	if strings.TrimSpace(u.Login) == "" {
		return ErrLoginBlank
	}
	if strings.ContainsFunc(u.Login, unicode.IsSpace) {
		return ErrLoginWhitespace
	}
	if u.Birthday.IsZero() {
		return ErrBirthdayMissing
	}
	if DateOf(u.Birthday).After(DateOf(today)) {
		return ErrBirthdayInFuture
	}
	return nil
}

// Normalize applies the display-name default and truncates the birthday to a day.
func (u User) Normalize() User {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	u.Birthday = DateOf(u.Birthday)
	return u
}

// UserRepository defines the port for user and friendship persistence.
//
// Friendship edges are directed: AddFriend(a, b) makes b visible in a's
// friend list only. AddFriend and DeleteFriend are idempotent. Deleting a
// user removes every friendship and like edge mentioning it.
type UserRepository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	UserByID(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteAllUsers(ctx context.Context) error

	AddFriend(ctx context.Context, userID, friendID int64) error
	DeleteFriend(ctx context.Context, userID, friendID int64) error
	Friends(ctx context.Context, userID int64) ([]User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]User, error)
}
