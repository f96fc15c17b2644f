package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"filmorate/internal/domain"
)

var today = domain.Date(2024, time.June, 1)

func validUser() domain.User {
	return domain.User{
		Email:    "joe@example.com",
		Login:    "joe",
		Birthday: domain.Date(1990, time.May, 17),
	}
}

func validFilm() domain.Film {
	return domain.Film{
		Name:        "Nosferatu",
		Description: "A symphony of horror",
		ReleaseDate: domain.Date(1922, time.March, 4),
		Duration:    94,
		Rating:      domain.Rating{ID: 1},
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *domain.User)
		want   error
	}{
		{"valid", func(u *domain.User) {}, nil},
		{"blank email", func(u *domain.User) { u.Email = "  " }, domain.ErrEmailBlank},
		{"email without at", func(u *domain.User) { u.Email = "joe.example.com" }, domain.ErrEmailNoAt},
		{"blank login", func(u *domain.User) { u.Login = "" }, domain.ErrLoginBlank},
		{"login with space", func(u *domain.User) { u.Login = "jo e" }, domain.ErrLoginWhitespace},
		{"login with tab", func(u *domain.User) { u.Login = "jo\te" }, domain.ErrLoginWhitespace},
		{"missing birthday", func(u *domain.User) { u.Birthday = time.Time{} }, domain.ErrBirthdayMissing},
		{"future birthday", func(u *domain.User) { u.Birthday = today.AddDate(0, 0, 1) }, domain.ErrBirthdayInFuture},
		{"born today", func(u *domain.User) { u.Birthday = today }, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := validUser()
			tc.mutate(&u)
			err := u.Validate(today)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v; want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v; want %v", err, tc.want)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Validate() = %v; want ErrValidation kind", err)
			}
		})
	}
}

func TestUserValidationMessagesAreDistinct(t *testing.T) {
	msgs := map[string]bool{}
	for _, err := range []error{
		domain.ErrEmailBlank, domain.ErrEmailNoAt, domain.ErrLoginBlank,
		domain.ErrLoginWhitespace, domain.ErrBirthdayMissing, domain.ErrBirthdayInFuture,
	} {
		if msgs[err.Error()] {
			t.Fatalf("duplicate message %q", err.Error())
		}
		msgs[err.Error()] = true
	}
}

func TestUserNormalize(t *testing.T) {
	u := validUser()
	u.Name = " "
	u.Birthday = time.Date(1990, time.May, 17, 23, 30, 0, 0, time.UTC)
	got := u.Normalize()
	if got.Name != "joe" {
		t.Errorf("Name = %q; want %q", got.Name, "joe")
	}
	if !got.Birthday.Equal(domain.Date(1990, time.May, 17)) {
		t.Errorf("Birthday = %v; want day precision", got.Birthday)
	}

	u.Name = "Joe Doe"
	if got := u.Normalize(); got.Name != "Joe Doe" {
		t.Errorf("Name = %q; want explicit name kept", got.Name)
	}
}

func TestFilmValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *domain.Film)
		want   error
	}{
		{"valid", func(f *domain.Film) {}, nil},
		{"blank name", func(f *domain.Film) { f.Name = "" }, domain.ErrNameBlank},
		{"description 200", func(f *domain.Film) { f.Description = strings.Repeat("я", 200) }, nil},
		{"description 201", func(f *domain.Film) { f.Description = strings.Repeat("a", 201) }, domain.ErrDescriptionTooLong},
		{"missing release date", func(f *domain.Film) { f.ReleaseDate = time.Time{} }, domain.ErrReleaseDateMissing},
		{"cinema birthday", func(f *domain.Film) { f.ReleaseDate = domain.CinemaBirthday }, nil},
		{"before cinema", func(f *domain.Film) { f.ReleaseDate = domain.Date(1895, time.December, 27) }, domain.ErrReleaseDateTooEarly},
		{"zero duration", func(f *domain.Film) { f.Duration = 0 }, domain.ErrDurationNotPositive},
		{"negative duration", func(f *domain.Film) { f.Duration = -1 }, domain.ErrDurationNotPositive},
		{"missing rating", func(f *domain.Film) { f.Rating = domain.Rating{} }, domain.ErrRatingMissing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := validFilm()
			tc.mutate(&f)
			err := f.Validate()
			if tc.want == nil && err != nil {
				t.Fatalf("Validate() = %v; want nil", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestFilmNormalizeCollapsesGenres(t *testing.T) {
	f := validFilm()
	f.Genres = []domain.Genre{{ID: 3}, {ID: 1}, {ID: 3, Name: "Drama"}}
	f.LikeCount = 7

	got := f.Normalize()
	if len(got.Genres) != 2 || got.Genres[0].ID != 1 || got.Genres[1].ID != 3 {
		t.Fatalf("Genres = %v; want ids [1 3]", got.Genres)
	}
	if got.LikeCount != 0 {
		t.Fatalf("LikeCount = %d; want 0", got.LikeCount)
	}
}

func TestSortByPopularity(t *testing.T) {
	films := []domain.Film{
		{ID: 3, LikeCount: 3},
		{ID: 2, LikeCount: 5},
		{ID: 4, LikeCount: 0},
		{ID: 1, LikeCount: 5},
	}
	domain.SortByPopularity(films)
	want := []int64{1, 2, 3, 4}
	for i, f := range films {
		if f.ID != want[i] {
			t.Fatalf("position %d: id %d; want %d", i, f.ID, want[i])
		}
	}
}

func TestRankedByPopularity(t *testing.T) {
	tests := []struct {
		name  string
		films []domain.Film
		want  bool
	}{
		{"empty", nil, true},
		{"single", []domain.Film{{ID: 7}}, true},
		{"ranked", []domain.Film{{ID: 2, LikeCount: 5}, {ID: 1, LikeCount: 3}, {ID: 3, LikeCount: 3}}, true},
		{"likes out of order", []domain.Film{{ID: 1, LikeCount: 0}, {ID: 2, LikeCount: 1}}, false},
		{"tie out of order", []domain.Film{{ID: 3, LikeCount: 2}, {ID: 1, LikeCount: 2}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.RankedByPopularity(tc.films); got != tc.want {
				t.Fatalf("RankedByPopularity = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := domain.ValidateName("\t"); !errors.Is(err, domain.ErrNameBlank) {
		t.Fatalf("ValidateName(blank) = %v", err)
	}
	if err := domain.ValidateName("Comedy"); err != nil {
		t.Fatalf("ValidateName(Comedy) = %v", err)
	}
}
