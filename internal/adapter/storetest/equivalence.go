package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

// Snapshot is the observable state of a store after Script.
type Snapshot struct {
	Users   []domain.User
	Films   []domain.Film
	Genres  []domain.Genre
	Ratings []domain.Rating
	Popular []int64
	Friends map[int64][]int64
	Likers  map[int64][]int64
	Common  []int64
}

// Script drives s through a fixed sequence of writes touching every relation
// and cascade, then captures what a caller can observe.
func Script(t *testing.T, s domain.Store) Snapshot {
	t.Helper()

	g := mustRating(t, s, "G")
	pg := mustRating(t, s, "PG")
	comedy := mustGenre(t, s, "Comedy")
	drama := mustGenre(t, s, "Drama")
	thriller := mustGenre(t, s, "Thriller")

	u1 := mustUser(t, s, "u1")
	u2 := mustUser(t, s, "u2")
	u3 := mustUser(t, s, "u3")
	u4 := mustUser(t, s, "u4")

	f1 := mustFilm(t, s, "First", g.ID, drama.ID, comedy.ID, drama.ID)
	f2 := mustFilm(t, s, "Second", pg.ID)
	f3 := mustFilm(t, s, "Third", g.ID, thriller.ID)

	for _, like := range [][2]int64{
		{f2.ID, u1.ID}, {f2.ID, u2.ID}, {f2.ID, u3.ID},
		{f1.ID, u1.ID}, {f1.ID, u2.ID}, {f1.ID, u3.ID}, {f1.ID, u1.ID},
		{f3.ID, u4.ID},
	} {
		require.NoError(t, s.AddLike(ctx, like[0], like[1]))
	}
	require.NoError(t, s.RemoveLike(ctx, f3.ID, u4.ID))
	require.NoError(t, s.AddLike(ctx, f3.ID, u1.ID))

	for _, edge := range [][2]int64{
		{u1.ID, u2.ID}, {u1.ID, u3.ID}, {u1.ID, u4.ID},
		{u2.ID, u3.ID}, {u2.ID, u4.ID}, {u3.ID, u1.ID}, {u1.ID, u2.ID},
	} {
		require.NoError(t, s.AddFriend(ctx, edge[0], edge[1]))
	}

	require.NoError(t, s.DeleteGenre(ctx, comedy.ID))
	require.NoError(t, s.DeleteUser(ctx, u3.ID))

	f3.Genres = []domain.Genre{{ID: drama.ID}}
	f3.Rating = domain.Rating{ID: pg.ID}
	_, err := s.UpdateFilm(ctx, f3)
	require.NoError(t, err)

	var snap Snapshot
	snap.Users, err = s.ListUsers(ctx)
	require.NoError(t, err)
	snap.Films, err = s.ListFilms(ctx)
	require.NoError(t, err)
	snap.Genres, err = s.ListGenres(ctx)
	require.NoError(t, err)
	snap.Ratings, err = s.ListRatings(ctx)
	require.NoError(t, err)

	popular, err := s.PopularFilms(ctx, domain.DefaultPopularCount)
	require.NoError(t, err)
	snap.Popular = filmIDs(popular)

	snap.Friends = make(map[int64][]int64)
	for _, u := range snap.Users {
		friends, err := s.Friends(ctx, u.ID)
		require.NoError(t, err)
		snap.Friends[u.ID] = userIDs(friends)
	}
	snap.Likers = make(map[int64][]int64)
	for _, f := range snap.Films {
		likers, err := s.Likers(ctx, f.ID)
		require.NoError(t, err)
		snap.Likers[f.ID] = userIDs(likers)
	}
	common, err := s.CommonFriends(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	snap.Common = userIDs(common)
	return snap
}

// RequireEquivalent runs Script against a fresh store from each factory and
// requires identical snapshots.
func RequireEquivalent(t *testing.T, want, got Factory) {
	t.Helper()
	require.Equal(t, Script(t, want(t)), Script(t, got(t)))
}

// RequireScriptOutcome checks Script's snapshot against values derived by hand,
// so that a backend can be verified on its own.
func RequireScriptOutcome(t *testing.T, s domain.Store) {
	t.Helper()
	snap := Script(t, s)

	require.Equal(t, []int64{1, 2, 4}, userIDs(snap.Users))
	require.Equal(t, []int64{2, 3}, genreIDs(snap.Genres))
	require.Equal(t, []int64{1, 2, 3}, filmIDs(snap.Films))

	likes := make([]int, 0, len(snap.Films))
	for _, f := range snap.Films {
		likes = append(likes, f.LikeCount)
	}
	require.Equal(t, []int{2, 2, 1}, likes)
	require.Equal(t, []int64{2}, genreIDs(snap.Films[0].Genres))
	require.Equal(t, "PG", snap.Films[2].Rating.Name)
	require.Equal(t, []domain.Genre{{ID: 2, Name: "Drama"}}, snap.Films[2].Genres)

	require.Equal(t, []int64{1, 2, 3}, snap.Popular)
	require.Equal(t, []int64{2, 4}, snap.Friends[1])
	require.Equal(t, []int64{4}, snap.Friends[2])
	require.Empty(t, snap.Friends[4])
	require.Equal(t, []int64{1, 2}, snap.Likers[1])
	require.Equal(t, []int64{1}, snap.Likers[3])
	require.Equal(t, []int64{4}, snap.Common)
}
