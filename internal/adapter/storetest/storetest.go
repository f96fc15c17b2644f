// Package storetest is the behavioural contract every domain.Store backend
// must satisfy. Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

// Factory returns a fresh, empty store. Implementations register their own
// cleanup on t.
type Factory func(t *testing.T) domain.Store

// Run executes the whole contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s domain.Store)
	}{
		{"UserRoundTrip", testUserRoundTrip},
		{"UserNotFound", testUserNotFound},
		{"UserListOrder", testUserListOrder},
		{"FriendsDirected", testFriendsDirected},
		{"FriendsIdempotent", testFriendsIdempotent},
		{"FriendsMissingUser", testFriendsMissingUser},
		{"CommonFriends", testCommonFriends},
		{"DeleteUserCascades", testDeleteUserCascades},
		{"DeleteAllUsers", testDeleteAllUsers},
		{"FilmRoundTrip", testFilmRoundTrip},
		{"FilmUpdateReplacesGenres", testFilmUpdateReplacesGenres},
		{"FilmReferences", testFilmReferences},
		{"FilmNotFound", testFilmNotFound},
		{"FilmsByIDs", testFilmsByIDs},
		{"LikesIdempotent", testLikesIdempotent},
		{"LikesMissingEntity", testLikesMissingEntity},
		{"DeleteFilmCascades", testDeleteFilmCascades},
		{"PopularRanking", testPopularRanking},
		{"PopularBadCount", testPopularBadCount},
		{"GenreCRUD", testGenreCRUD},
		{"DeleteGenreCascades", testDeleteGenreCascades},
		{"RatingCRUD", testRatingCRUD},
		{"RatingInUse", testRatingInUse},
		{"IDsNotReused", testIDsNotReused},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStore(t))
		})
	}
}

var ctx = context.Background()

func mustUser(t *testing.T, s domain.Store, login string) domain.User {
	t.Helper()
	u, err := s.CreateUser(ctx, domain.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: domain.Date(1990, time.January, 2),
	})
	require.NoError(t, err)
	return u
}

func mustRating(t *testing.T, s domain.Store, name string) domain.Rating {
	t.Helper()
	r, err := s.CreateRating(ctx, domain.Rating{Name: name})
	require.NoError(t, err)
	return r
}

func mustGenre(t *testing.T, s domain.Store, name string) domain.Genre {
	t.Helper()
	g, err := s.CreateGenre(ctx, domain.Genre{Name: name})
	require.NoError(t, err)
	return g
}

func newFilm(name string, ratingID int64, genreIDs ...int64) domain.Film {
	f := domain.Film{
		Name:        name,
		Description: "about " + name,
		ReleaseDate: domain.Date(2001, time.March, 14),
		Duration:    100,
		Rating:      domain.Rating{ID: ratingID},
	}
	for _, id := range genreIDs {
		f.Genres = append(f.Genres, domain.Genre{ID: id})
	}
	return f
}

func mustFilm(t *testing.T, s domain.Store, name string, ratingID int64, genreIDs ...int64) domain.Film {
	t.Helper()
	f, err := s.CreateFilm(ctx, newFilm(name, ratingID, genreIDs...))
	require.NoError(t, err)
	return f
}

func userIDs(users []domain.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func filmIDs(films []domain.Film) []int64 {
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	return ids
}

func genreIDs(genres []domain.Genre) []int64 {
	ids := make([]int64, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	return ids
}

func testUserRoundTrip(t *testing.T, s domain.Store) {
	created, err := s.CreateUser(ctx, domain.User{
		Email:    "ann@example.com",
		Login:    "ann",
		Name:     "Ann",
		Birthday: domain.Date(1985, time.July, 9),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.UserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.True(t, got.Birthday.Equal(domain.Date(1985, time.July, 9)))

	got.Email = "ann@example.org"
	got.Name = "Anne"
	updated, err := s.UpdateUser(ctx, got)
	require.NoError(t, err)
	require.Equal(t, got, updated)

	reread, err := s.UserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "ann@example.org", reread.Email)
	require.Equal(t, "Anne", reread.Name)
}

func testUserNotFound(t *testing.T, s domain.Store) {
	_, err := s.UserByID(ctx, 42)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.UpdateUser(ctx, domain.User{ID: 42, Email: "x@y", Login: "x", Birthday: domain.Date(2000, 1, 1)})
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, s.DeleteUser(ctx, 42), domain.ErrNotFound)
}

func testUserListOrder(t *testing.T, s domain.Store) {
	empty, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")
	c := mustUser(t, s, "c")

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID, b.ID, c.ID}, userIDs(users))
}

func testFriendsDirected(t *testing.T, s domain.Store) {
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")

	require.NoError(t, s.AddFriend(ctx, a.ID, b.ID))

	friends, err := s.Friends(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.User{b}, friends)

	back, err := s.Friends(ctx, b.ID)
	require.NoError(t, err)
	require.Empty(t, back)
	require.NotNil(t, back)
}

func testFriendsIdempotent(t *testing.T, s domain.Store) {
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")

	require.NoError(t, s.AddFriend(ctx, a.ID, b.ID))
	require.NoError(t, s.AddFriend(ctx, a.ID, b.ID))
	friends, err := s.Friends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)

	require.NoError(t, s.DeleteFriend(ctx, a.ID, b.ID))
	require.NoError(t, s.DeleteFriend(ctx, a.ID, b.ID))
	friends, err = s.Friends(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, friends)
}

func testFriendsMissingUser(t *testing.T, s domain.Store) {
	a := mustUser(t, s, "a")

	require.ErrorIs(t, s.AddFriend(ctx, a.ID, 99), domain.ErrNotFound)
	require.ErrorIs(t, s.AddFriend(ctx, 99, a.ID), domain.ErrNotFound)
	require.ErrorIs(t, s.DeleteFriend(ctx, a.ID, 99), domain.ErrNotFound)

	_, err := s.Friends(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.CommonFriends(ctx, a.ID, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func testCommonFriends(t *testing.T, s domain.Store) {
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")
	c := mustUser(t, s, "c")
	d := mustUser(t, s, "d")
	e := mustUser(t, s, "e")

	common, err := s.CommonFriends(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Empty(t, common)

	for _, id := range []int64{e.ID, c.ID, d.ID} {
		require.NoError(t, s.AddFriend(ctx, a.ID, id))
	}
	for _, id := range []int64{d.ID, e.ID} {
		require.NoError(t, s.AddFriend(ctx, b.ID, id))
	}
	// Incoming edges do not count.
	require.NoError(t, s.AddFriend(ctx, c.ID, b.ID))

	common, err = s.CommonFriends(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{d.ID, e.ID}, userIDs(common))

	reverse, err := s.CommonFriends(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Equal(t, userIDs(common), userIDs(reverse))
}

func testDeleteUserCascades(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	f := mustFilm(t, s, "Alien", r.ID)
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")
	c := mustUser(t, s, "c")

	require.NoError(t, s.AddFriend(ctx, a.ID, b.ID))
	require.NoError(t, s.AddFriend(ctx, b.ID, a.ID))
	require.NoError(t, s.AddFriend(ctx, c.ID, b.ID))
	require.NoError(t, s.AddLike(ctx, f.ID, b.ID))
	require.NoError(t, s.AddLike(ctx, f.ID, c.ID))

	require.NoError(t, s.DeleteUser(ctx, b.ID))

	_, err := s.UserByID(ctx, b.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	for _, id := range []int64{a.ID, c.ID} {
		friends, err := s.Friends(ctx, id)
		require.NoError(t, err)
		require.Empty(t, friends)
	}

	film, err := s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, 1, film.LikeCount)

	likers, err := s.Likers(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{c.ID}, userIDs(likers))
}

func testDeleteAllUsers(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	f := mustFilm(t, s, "Alien", r.ID)
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")
	require.NoError(t, s.AddFriend(ctx, a.ID, b.ID))
	require.NoError(t, s.AddLike(ctx, f.ID, a.ID))

	require.NoError(t, s.DeleteAllUsers(ctx))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	film, err := s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Zero(t, film.LikeCount)

	// Fresh users never inherit stale edges.
	c := mustUser(t, s, "c")
	friends, err := s.Friends(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, friends)
}

func testFilmRoundTrip(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "PG-13")
	drama := mustGenre(t, s, "Drama")
	comedy := mustGenre(t, s, "Comedy")

	in := newFilm("Amélie", r.ID, comedy.ID, drama.ID, comedy.ID)
	in.Description = "Приключения Амели"
	in.ReleaseDate = domain.Date(2001, time.April, 25)

	created, err := s.CreateFilm(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Amélie", created.Name)
	require.Equal(t, "Приключения Амели", created.Description)
	require.True(t, created.ReleaseDate.Equal(domain.Date(2001, time.April, 25)))
	require.Equal(t, 100, created.Duration)
	require.Equal(t, r, created.Rating)
	require.Equal(t, []domain.Genre{drama, comedy}, created.Genres)
	require.Zero(t, created.LikeCount)

	got, err := s.FilmByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	films, err := s.ListFilms(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Film{created}, films)
}

func testFilmUpdateReplacesGenres(t *testing.T, s domain.Store) {
	g := mustRating(t, s, "G")
	pg := mustRating(t, s, "PG")
	drama := mustGenre(t, s, "Drama")
	comedy := mustGenre(t, s, "Comedy")
	thriller := mustGenre(t, s, "Thriller")

	f := mustFilm(t, s, "Heat", g.ID, drama.ID, comedy.ID)

	f.Name = "Heat (1995)"
	f.Rating = domain.Rating{ID: pg.ID}
	f.Genres = []domain.Genre{{ID: thriller.ID}}
	updated, err := s.UpdateFilm(ctx, f)
	require.NoError(t, err)
	require.Equal(t, "Heat (1995)", updated.Name)
	require.Equal(t, pg, updated.Rating)
	require.Equal(t, []domain.Genre{thriller}, updated.Genres)

	f.Genres = nil
	updated, err = s.UpdateFilm(ctx, f)
	require.NoError(t, err)
	require.Empty(t, updated.Genres)

	got, err := s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Empty(t, got.Genres)
}

func testFilmReferences(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	drama := mustGenre(t, s, "Drama")

	_, err := s.CreateFilm(ctx, newFilm("Ghost", r.ID+100))
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.CreateFilm(ctx, newFilm("Ghost", r.ID, drama.ID, drama.ID+100))
	require.ErrorIs(t, err, domain.ErrNotFound)

	films, err := s.ListFilms(ctx)
	require.NoError(t, err)
	require.Empty(t, films)

	f := mustFilm(t, s, "Ghost", r.ID, drama.ID)
	f.Genres = []domain.Genre{{ID: drama.ID + 100}}
	_, err = s.UpdateFilm(ctx, f)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// A failed update leaves the stored film untouched.
	got, err := s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.Genre{drama}, got.Genres)
}

func testFilmNotFound(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")

	_, err := s.FilmByID(ctx, 7)
	require.ErrorIs(t, err, domain.ErrNotFound)

	f := newFilm("Nope", r.ID)
	f.ID = 7
	_, err = s.UpdateFilm(ctx, f)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, s.DeleteFilm(ctx, 7), domain.ErrNotFound)

	_, err = s.Likers(ctx, 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func testLikesIdempotent(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	f := mustFilm(t, s, "Up", r.ID)
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")

	require.NoError(t, s.AddLike(ctx, f.ID, b.ID))
	require.NoError(t, s.AddLike(ctx, f.ID, a.ID))
	require.NoError(t, s.AddLike(ctx, f.ID, a.ID))

	got, err := s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.LikeCount)

	likers, err := s.Likers(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID, b.ID}, userIDs(likers))

	require.NoError(t, s.RemoveLike(ctx, f.ID, a.ID))
	require.NoError(t, s.RemoveLike(ctx, f.ID, a.ID))

	got, err = s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.LikeCount)
}

func testLikesMissingEntity(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	f := mustFilm(t, s, "Up", r.ID)
	a := mustUser(t, s, "a")

	require.ErrorIs(t, s.AddLike(ctx, f.ID+1, a.ID), domain.ErrNotFound)
	require.ErrorIs(t, s.AddLike(ctx, f.ID, a.ID+1), domain.ErrNotFound)
	require.ErrorIs(t, s.RemoveLike(ctx, f.ID+1, a.ID), domain.ErrNotFound)
	require.ErrorIs(t, s.RemoveLike(ctx, f.ID, a.ID+1), domain.ErrNotFound)
}

func testDeleteFilmCascades(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	drama := mustGenre(t, s, "Drama")
	f1 := mustFilm(t, s, "One", r.ID, drama.ID)
	f2 := mustFilm(t, s, "Two", r.ID, drama.ID)
	a := mustUser(t, s, "a")
	require.NoError(t, s.AddLike(ctx, f1.ID, a.ID))
	require.NoError(t, s.AddLike(ctx, f2.ID, a.ID))

	require.NoError(t, s.DeleteFilm(ctx, f1.ID))

	_, err := s.FilmByID(ctx, f1.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	popular, err := s.PopularFilms(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []int64{f2.ID}, filmIDs(popular))
	require.Equal(t, 1, popular[0].LikeCount)

	// Genres outlive the films that used them.
	require.NoError(t, s.DeleteAllFilms(ctx))
	films, err := s.ListFilms(ctx)
	require.NoError(t, err)
	require.Empty(t, films)
	_, err = s.GenreByID(ctx, drama.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteGenre(ctx, drama.ID))
}

func testPopularRanking(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	f1 := mustFilm(t, s, "One", r.ID)
	f2 := mustFilm(t, s, "Two", r.ID)
	f3 := mustFilm(t, s, "Three", r.ID)
	f4 := mustFilm(t, s, "Four", r.ID)

	users := make([]domain.User, 5)
	for i := range users {
		users[i] = mustUser(t, s, fmt.Sprintf("u%d", i))
	}
	like := func(f domain.Film, n int) {
		for _, u := range users[:n] {
			require.NoError(t, s.AddLike(ctx, f.ID, u.ID))
		}
	}
	like(f2, 5)
	like(f1, 5)
	like(f3, 3)

	popular, err := s.PopularFilms(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []int64{f1.ID, f2.ID, f3.ID, f4.ID}, filmIDs(popular))
	require.Equal(t, []int{5, 5, 3, 0}, []int{
		popular[0].LikeCount, popular[1].LikeCount, popular[2].LikeCount, popular[3].LikeCount,
	})

	top2, err := s.PopularFilms(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{f1.ID, f2.ID}, filmIDs(top2))
}

func testPopularBadCount(t *testing.T, s domain.Store) {
	for _, count := range []int{0, -1} {
		_, err := s.PopularFilms(ctx, count)
		require.ErrorIs(t, err, domain.ErrBadArgument)
	}
	empty, err := s.PopularFilms(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func testGenreCRUD(t *testing.T, s domain.Store) {
	comedy := mustGenre(t, s, "Comedy")
	drama := mustGenre(t, s, "Drama")

	got, err := s.GenreByID(ctx, comedy.ID)
	require.NoError(t, err)
	require.Equal(t, comedy, got)

	renamed, err := s.UpdateGenre(ctx, domain.Genre{ID: drama.ID, Name: "Melodrama"})
	require.NoError(t, err)
	require.Equal(t, "Melodrama", renamed.Name)

	all, err := s.ListGenres(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Genre{comedy, renamed}, all)

	_, err = s.UpdateGenre(ctx, domain.Genre{ID: 99, Name: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GenreByID(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, s.DeleteGenre(ctx, 99), domain.ErrNotFound)

	require.NoError(t, s.DeleteAllGenres(ctx))
	all, err = s.ListGenres(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func testDeleteGenreCascades(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "G")
	drama := mustGenre(t, s, "Drama")
	comedy := mustGenre(t, s, "Comedy")
	f := mustFilm(t, s, "Mixed", r.ID, drama.ID, comedy.ID)

	require.NoError(t, s.DeleteGenre(ctx, drama.ID))

	got, err := s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.Genre{comedy}, got.Genres)

	require.NoError(t, s.DeleteAllGenres(ctx))
	got, err = s.FilmByID(ctx, f.ID)
	require.NoError(t, err)
	require.Empty(t, got.Genres)
}

func testRatingCRUD(t *testing.T, s domain.Store) {
	g := mustRating(t, s, "G")
	pg := mustRating(t, s, "PG")

	renamed, err := s.UpdateRating(ctx, domain.Rating{ID: pg.ID, Name: "PG-13"})
	require.NoError(t, err)

	all, err := s.ListRatings(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Rating{g, renamed}, all)

	_, err = s.UpdateRating(ctx, domain.Rating{ID: 99, Name: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.RatingByID(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, s.DeleteRating(ctx, 99), domain.ErrNotFound)

	require.NoError(t, s.DeleteRating(ctx, g.ID))
	_, err = s.RatingByID(ctx, g.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.DeleteAllRatings(ctx))
	all, err = s.ListRatings(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func testRatingInUse(t *testing.T, s domain.Store) {
	g := mustRating(t, s, "G")
	f := mustFilm(t, s, "Bambi", g.ID)

	require.ErrorIs(t, s.DeleteRating(ctx, g.ID), domain.ErrConflict)
	require.ErrorIs(t, s.DeleteAllRatings(ctx), domain.ErrConflict)

	got, err := s.RatingByID(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, g, got)

	require.NoError(t, s.DeleteFilm(ctx, f.ID))
	require.NoError(t, s.DeleteRating(ctx, g.ID))
}

func testIDsNotReused(t *testing.T, s domain.Store) {
	a := mustUser(t, s, "a")
	require.NoError(t, s.DeleteUser(ctx, a.ID))
	b := mustUser(t, s, "b")
	require.Greater(t, b.ID, a.ID)

	r := mustRating(t, s, "G")
	f := mustFilm(t, s, "One", r.ID)
	require.NoError(t, s.DeleteFilm(ctx, f.ID))
	f2 := mustFilm(t, s, "Two", r.ID)
	require.Greater(t, f2.ID, f.ID)
}

func testFilmsByIDs(t *testing.T, s domain.Store) {
	r := mustRating(t, s, "PG")
	g := mustGenre(t, s, "Drama")
	f1 := mustFilm(t, s, "One", r.ID, g.ID)
	f2 := mustFilm(t, s, "Two", r.ID)
	f3 := mustFilm(t, s, "Three", r.ID)
	u := mustUser(t, s, "fan")
	require.NoError(t, s.AddLike(ctx, f3.ID, u.ID))

	got, err := s.FilmsByIDs(ctx, []int64{f3.ID, 99, f1.ID, f2.ID})
	require.NoError(t, err)
	require.Equal(t, []int64{f3.ID, f1.ID, f2.ID}, filmIDs(got), "request order kept, unknown ids skipped")
	require.Equal(t, 1, got[0].LikeCount)
	require.Equal(t, []domain.Genre{{ID: g.ID, Name: "Drama"}}, got[1].Genres)
	require.Empty(t, got[2].Genres)
	require.Equal(t, "PG", got[2].Rating.Name)

	got, err = s.FilmsByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}
