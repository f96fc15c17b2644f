package app_test

import (
	"context"
	"sync"

	"filmorate/internal/domain"
)

// Each mock embeds its port so that an unexpected call panics with a nil
// dereference; tests set only the functions they expect to be used.

type mockUserRepo struct {
	domain.UserRepository
	createFn        func(ctx context.Context, u domain.User) (domain.User, error)
	updateFn        func(ctx context.Context, u domain.User) (domain.User, error)
	byIDFn          func(ctx context.Context, id int64) (domain.User, error)
	deleteFn        func(ctx context.Context, id int64) error
	deleteAllFn     func(ctx context.Context) error
	addFriendFn     func(ctx context.Context, id, friendID int64) error
	deleteFriendFn  func(ctx context.Context, id, friendID int64) error
	friendsFn       func(ctx context.Context, id int64) ([]domain.User, error)
	commonFriendsFn func(ctx context.Context, id, otherID int64) ([]domain.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	return m.createFn(ctx, u)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	return m.updateFn(ctx, u)
}

func (m *mockUserRepo) UserByID(ctx context.Context, id int64) (domain.User, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return domain.User{ID: id}, nil
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserRepo) DeleteAllUsers(ctx context.Context) error {
	return m.deleteAllFn(ctx)
}

func (m *mockUserRepo) AddFriend(ctx context.Context, id, friendID int64) error {
	return m.addFriendFn(ctx, id, friendID)
}

func (m *mockUserRepo) DeleteFriend(ctx context.Context, id, friendID int64) error {
	return m.deleteFriendFn(ctx, id, friendID)
}

func (m *mockUserRepo) Friends(ctx context.Context, id int64) ([]domain.User, error) {
	return m.friendsFn(ctx, id)
}

func (m *mockUserRepo) CommonFriends(ctx context.Context, id, otherID int64) ([]domain.User, error) {
	return m.commonFriendsFn(ctx, id, otherID)
}

type mockFilmRepo struct {
	domain.FilmRepository
	createFn     func(ctx context.Context, f domain.Film) (domain.Film, error)
	updateFn     func(ctx context.Context, f domain.Film) (domain.Film, error)
	byIDFn       func(ctx context.Context, id int64) (domain.Film, error)
	byIDsFn      func(ctx context.Context, ids []int64) ([]domain.Film, error)
	deleteFn     func(ctx context.Context, id int64) error
	addLikeFn    func(ctx context.Context, filmID, userID int64) error
	removeLikeFn func(ctx context.Context, filmID, userID int64) error
	popularFn    func(ctx context.Context, count int) ([]domain.Film, error)
}

func (m *mockFilmRepo) CreateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	return m.createFn(ctx, f)
}

func (m *mockFilmRepo) UpdateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	return m.updateFn(ctx, f)
}

func (m *mockFilmRepo) FilmByID(ctx context.Context, id int64) (domain.Film, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return domain.Film{ID: id}, nil
}

func (m *mockFilmRepo) FilmsByIDs(ctx context.Context, ids []int64) ([]domain.Film, error) {
	if m.byIDsFn != nil {
		return m.byIDsFn(ctx, ids)
	}
	films := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, domain.Film{ID: id})
	}
	return films, nil
}

func (m *mockFilmRepo) DeleteFilm(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func (m *mockFilmRepo) AddLike(ctx context.Context, filmID, userID int64) error {
	return m.addLikeFn(ctx, filmID, userID)
}

func (m *mockFilmRepo) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return m.removeLikeFn(ctx, filmID, userID)
}

func (m *mockFilmRepo) PopularFilms(ctx context.Context, count int) ([]domain.Film, error) {
	return m.popularFn(ctx, count)
}

type mockGenreRepo struct {
	domain.GenreRepository
	createFn func(ctx context.Context, g domain.Genre) (domain.Genre, error)
	updateFn func(ctx context.Context, g domain.Genre) (domain.Genre, error)
	byIDFn   func(ctx context.Context, id int64) (domain.Genre, error)
}

func (m *mockGenreRepo) CreateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	return m.createFn(ctx, g)
}

func (m *mockGenreRepo) UpdateGenre(ctx context.Context, g domain.Genre) (domain.Genre, error) {
	return m.updateFn(ctx, g)
}

func (m *mockGenreRepo) GenreByID(ctx context.Context, id int64) (domain.Genre, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return domain.Genre{ID: id}, nil
}

type mockRatingRepo struct {
	domain.RatingRepository
	createFn func(ctx context.Context, r domain.Rating) (domain.Rating, error)
	byIDFn   func(ctx context.Context, id int64) (domain.Rating, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockRatingRepo) CreateRating(ctx context.Context, r domain.Rating) (domain.Rating, error) {
	return m.createFn(ctx, r)
}

func (m *mockRatingRepo) RatingByID(ctx context.Context, id int64) (domain.Rating, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return domain.Rating{ID: id}, nil
}

func (m *mockRatingRepo) DeleteRating(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockCache struct {
	genFn        func(ctx context.Context) (uint64, error)
	getFn        func(ctx context.Context, gen uint64, count int) ([]int64, bool, error)
	setFn        func(ctx context.Context, gen uint64, count int, ids []int64) error
	invalidateFn func(ctx context.Context) error

	invalidations int
}

func (m *mockCache) Generation(ctx context.Context) (uint64, error) {
	if m.genFn != nil {
		return m.genFn(ctx)
	}
	return 0, nil
}

func (m *mockCache) PopularIDs(ctx context.Context, gen uint64, count int) ([]int64, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, gen, count)
	}
	return nil, false, nil
}

func (m *mockCache) SetPopularIDs(ctx context.Context, gen uint64, count int, ids []int64) error {
	if m.setFn != nil {
		return m.setFn(ctx, gen, count, ids)
	}
	return nil
}

func (m *mockCache) InvalidatePopular(ctx context.Context) error {
	m.invalidations++
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx)
	}
	return nil
}

// rankingCache is an in-process domain.RankingCache with the same
// generation semantics as the Redis one.
type rankingCache struct {
	mu       sync.Mutex
	gen      uint64
	rankings map[[2]uint64][]int64
}

func newRankingCache() *rankingCache {
	return &rankingCache{rankings: make(map[[2]uint64][]int64)}
}

func (c *rankingCache) Generation(context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *rankingCache) PopularIDs(_ context.Context, gen uint64, count int) ([]int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids, ok := c.rankings[[2]uint64{gen, uint64(count)}]
	return append([]int64(nil), ids...), ok, nil
}

func (c *rankingCache) SetPopularIDs(_ context.Context, gen uint64, count int, ids []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rankings[[2]uint64{gen, uint64(count)}] = append([]int64(nil), ids...)
	return nil
}

func (c *rankingCache) InvalidatePopular(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return nil
}
