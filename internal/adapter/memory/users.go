package memory

import (
	"context"

	"filmorate/internal/domain"
)

// CreateUser stores a new user under the next id.
func (db *DB) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.userIDCounter++
	u.ID = db.userIDCounter
	u.Birthday = domain.DateOf(u.Birthday)
	db.users[u.ID] = u
	return u, nil
}

// UpdateUser replaces an existing user.
func (db *DB) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[u.ID]; !ok {
		return domain.User{}, notFound("user", u.ID)
	}
	u.Birthday = domain.DateOf(u.Birthday)
	db.users[u.ID] = u
	return u, nil
}

// UserByID retrieves a user by ID.
func (db *DB) UserByID(ctx context.Context, id int64) (domain.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	u, ok := db.users[id]
	if !ok {
		return domain.User{}, notFound("user", id)
	}
	return u, nil
}

// ListUsers returns every user ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.usersByIDs(sortedKeys(db.users)), nil
}

// DeleteUser removes a user together with its friendship and like edges.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[id]; !ok {
		return notFound("user", id)
	}
	delete(db.users, id)
	delete(db.friends, id)
	removeEndpoint(db.friends, id)
	removeEndpoint(db.likes, id)
	return nil
}

// DeleteAllUsers removes every user, friendship and like.
func (db *DB) DeleteAllUsers(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.users = make(map[int64]domain.User)
	db.friends = make(map[int64]map[int64]struct{})
	db.likes = make(map[int64]map[int64]struct{})
	return nil
}

// AddFriend inserts the directed edge userID -> friendID.
func (db *DB) AddFriend(ctx context.Context, userID, friendID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.requireUsers(userID, friendID); err != nil {
		return err
	}
	addEdge(db.friends, userID, friendID)
	return nil
}

// DeleteFriend removes the directed edge userID -> friendID if present.
func (db *DB) DeleteFriend(ctx context.Context, userID, friendID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.requireUsers(userID, friendID); err != nil {
		return err
	}
	delete(db.friends[userID], friendID)
	return nil
}

// Friends returns the users userID points at, ordered by id.
func (db *DB) Friends(ctx context.Context, userID int64) ([]domain.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.requireUsers(userID); err != nil {
		return nil, err
	}
	return db.usersByIDs(sortedIDs(db.friends[userID])), nil
}

// CommonFriends returns the intersection of both outgoing friend sets.
func (db *DB) CommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if err := db.requireUsers(userID, otherID); err != nil {
		return nil, err
	}
	other := db.friends[otherID]
	common := make(map[int64]struct{})
	for id := range db.friends[userID] {
		if _, ok := other[id]; ok {
			common[id] = struct{}{}
		}
	}
	return db.usersByIDs(sortedIDs(common)), nil
}

func (db *DB) requireUsers(ids ...int64) error {
	for _, id := range ids {
		if _, ok := db.users[id]; !ok {
			return notFound("user", id)
		}
	}
	return nil
}

func (db *DB) usersByIDs(ids []int64) []domain.User {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.users[id])
	}
	return out
}
