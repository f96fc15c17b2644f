package app

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"filmorate/internal/domain"
)

// UserService manages users and the friendship graph.
type UserService struct {
	repo  domain.UserRepository
	cache domain.RankingCache
	clock clock.Clock
	log   zerolog.Logger
}

// NewUserService creates a UserService. cache may be nil; deleting users
// changes like counts, so a configured cache is invalidated on delete.
func NewUserService(repo domain.UserRepository, cache domain.RankingCache, clk clock.Clock, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, clock: clk, log: log}
}

// Create validates and stores a new user. A blank name defaults to the login.
func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if err := u.Validate(s.clock.Now()); err != nil {
		return domain.User{}, rejected(s.log, "create user", err)
	}
	u = u.Normalize()
	u.ID = 0
	return s.repo.CreateUser(ctx, u)
}

// Update validates and replaces an existing user.
func (s *UserService) Update(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == 0 {
		return domain.User{}, rejected(s.log, "update user", domain.ErrIDMissing)
	}
	if err := u.Validate(s.clock.Now()); err != nil {
		return domain.User{}, rejected(s.log, "update user", err)
	}
	return s.repo.UpdateUser(ctx, u.Normalize())
}

// GetByID returns a user.
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.UserByID(ctx, id)
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// Delete removes a user together with its friendships and likes.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Debug().Int64("user_id", id).Msg("user deleted with friendships and likes")
	invalidate(ctx, s.cache, s.log)
	return nil
}

// DeleteAll removes every user, friendship and like.
func (s *UserService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAllUsers(ctx); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log)
	return nil
}

// AddFriend makes friendID appear in id's friend list. The edge is directed
// and adding it twice is a no-op.
func (s *UserService) AddFriend(ctx context.Context, id, friendID int64) error {
	if err := s.requireUsers(ctx, id, friendID); err != nil {
		return err
	}
	return s.repo.AddFriend(ctx, id, friendID)
}

// DeleteFriend removes friendID from id's friend list if present.
func (s *UserService) DeleteFriend(ctx context.Context, id, friendID int64) error {
	if err := s.requireUsers(ctx, id, friendID); err != nil {
		return err
	}
	return s.repo.DeleteFriend(ctx, id, friendID)
}

// Friends returns the users id has added, ordered by id.
func (s *UserService) Friends(ctx context.Context, id int64) ([]domain.User, error) {
	if err := s.requireUsers(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Friends(ctx, id)
}

// CommonFriends returns the users both id and otherID have added.
func (s *UserService) CommonFriends(ctx context.Context, id, otherID int64) ([]domain.User, error) {
	if err := s.requireUsers(ctx, id, otherID); err != nil {
		return nil, err
	}
	return s.repo.CommonFriends(ctx, id, otherID)
}

func (s *UserService) requireUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := s.repo.UserByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// invalidate drops cached rankings. Failures are only logged; the cache TTL
// bounds how long a stale ranking can be served.
func invalidate(ctx context.Context, cache domain.RankingCache, log zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidatePopular(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidate popular cache")
	}
}
