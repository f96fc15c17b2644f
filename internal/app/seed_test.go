package app_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"filmorate/internal/adapter/memory"
	"filmorate/internal/app"
	"filmorate/internal/domain"
)

func TestSeed_FillsEmptyCatalogs(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, app.Seed(ctx, store, store, zerolog.Nop()))
	require.NoError(t, app.Seed(ctx, store, store, zerolog.Nop()))

	ratings, err := store.ListRatings(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, len(app.DefaultRatings))
	require.Equal(t, domain.Rating{ID: 1, Name: "G"}, ratings[0])
	require.Equal(t, "NC-17", ratings[4].Name)

	genres, err := store.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, len(app.DefaultGenres))
	require.Equal(t, "Comedy", genres[0].Name)
}

func TestSeed_KeepsExistingCatalog(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateRating(ctx, domain.Rating{Name: "U"})
	require.NoError(t, err)

	require.NoError(t, app.Seed(ctx, store, store, zerolog.Nop()))

	ratings, err := store.ListRatings(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Rating{{ID: 1, Name: "U"}}, ratings)

	genres, err := store.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, len(app.DefaultGenres))
}
