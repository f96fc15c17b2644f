package app_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"filmorate/internal/app"
	"filmorate/internal/domain"
)

func TestGenreCreate_Validation(t *testing.T) {
	svc := app.NewGenreService(&mockGenreRepo{}, zerolog.Nop())

	for _, name := range []string{"", "   ", "\t"} {
		_, err := svc.Create(context.Background(), domain.Genre{Name: name})
		require.ErrorIs(t, err, domain.ErrNameBlank)
		require.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestGenreCreate_IgnoresCallerID(t *testing.T) {
	repo := &mockGenreRepo{
		createFn: func(_ context.Context, g domain.Genre) (domain.Genre, error) {
			require.Zero(t, g.ID)
			g.ID = 3
			return g, nil
		},
	}
	svc := app.NewGenreService(repo, zerolog.Nop())

	got, err := svc.Create(context.Background(), domain.Genre{ID: 99, Name: "Noir"})
	require.NoError(t, err)
	require.Equal(t, domain.Genre{ID: 3, Name: "Noir"}, got)
}

func TestGenreUpdate_RequiresID(t *testing.T) {
	svc := app.NewGenreService(&mockGenreRepo{}, zerolog.Nop())

	_, err := svc.Update(context.Background(), domain.Genre{Name: "Noir"})
	require.ErrorIs(t, err, domain.ErrIDMissing)

	_, err = svc.Update(context.Background(), domain.Genre{ID: 1})
	require.ErrorIs(t, err, domain.ErrNameBlank)
}

func TestRatingCreate_Validation(t *testing.T) {
	svc := app.NewRatingService(&mockRatingRepo{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), domain.Rating{})
	require.ErrorIs(t, err, domain.ErrNameBlank)

	_, err = svc.Update(context.Background(), domain.Rating{Name: "PG"})
	require.ErrorIs(t, err, domain.ErrIDMissing)
}

func TestRatingDelete_Conflict(t *testing.T) {
	repo := &mockRatingRepo{
		deleteFn: func(_ context.Context, id int64) error {
			return domain.ErrConflict
		},
	}
	svc := app.NewRatingService(repo, zerolog.Nop())

	require.ErrorIs(t, svc.Delete(context.Background(), 1), domain.ErrConflict)
}
