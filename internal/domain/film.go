package domain

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxDescriptionLength is the longest allowed film description, in characters.
	MaxDescriptionLength = 200
	// DefaultPopularCount is the ranking size used when a caller gives none.
	DefaultPopularCount = 10
)

// CinemaBirthday is the earliest accepted release date.
var CinemaBirthday = Date(1895, time.December, 28)

// Film is a catalog entry. LikeCount is derived from the like edges of the
// film and is ignored on writes.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	Duration    int       `json:"duration"`
	Rating      Rating    `json:"mpa"`
	Genres      []Genre   `json:"genres"`
	LikeCount   int       `json:"likeCount"`
}

// Validate checks the film rules. The first violated rule is returned.
func (f Film) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameBlank
	}
	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if f.ReleaseDate.IsZero() {
		return ErrReleaseDateMissing
	}
	if DateOf(f.ReleaseDate).Before(CinemaBirthday) {
		return ErrReleaseDateTooEarly
	}
	if f.Duration <= 0 {
		return ErrDurationNotPositive
	}
	if f.Rating.ID == 0 {
		return ErrRatingMissing
	}
	return nil
}

// GenreIDs returns the distinct genre ids of the film in ascending order.
func (f Film) GenreIDs() []int64 {
	seen := make(map[int64]struct{}, len(f.Genres))
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Normalize truncates the release date to a day and collapses duplicate genres.
func (f Film) Normalize() Film {
	f.ReleaseDate = DateOf(f.ReleaseDate)
	ids := f.GenreIDs()
	genres := make([]Genre, 0, len(ids))
	for _, id := range ids {
		genres = append(genres, Genre{ID: id})
	}
	f.Genres = genres
	f.LikeCount = 0
	return f
}

func morePopular(a, b Film) bool {
	if a.LikeCount != b.LikeCount {
		return a.LikeCount > b.LikeCount
	}
	return a.ID < b.ID
}

// SortByPopularity orders films by like count descending, then id ascending.
func SortByPopularity(films []Film) {
	sort.SliceStable(films, func(i, j int) bool { return morePopular(films[i], films[j]) })
}

// RankedByPopularity reports whether films are already in SortByPopularity order.
func RankedByPopularity(films []Film) bool {
	for i := 1; i < len(films); i++ {
		if !morePopular(films[i-1], films[i]) {
			return false
		}
	}
	return true
}

// FilmRepository defines the port for film, genre association and like persistence.
//
// Reads resolve rating and genre names; Genres is sorted by id. Updates replace
// the genre association set atomically with the film row. Deleting a film
// removes its likes and genre associations. AddLike and RemoveLike are idempotent.
type FilmRepository interface {
	CreateFilm(ctx context.Context, f Film) (Film, error)
	UpdateFilm(ctx context.Context, f Film) (Film, error)
	FilmByID(ctx context.Context, id int64) (Film, error)
	// FilmsByIDs reads the films in one snapshot, in the order of ids.
	// Unknown ids are skipped.
	FilmsByIDs(ctx context.Context, ids []int64) ([]Film, error)
	ListFilms(ctx context.Context) ([]Film, error)
	DeleteFilm(ctx context.Context, id int64) error
	DeleteAllFilms(ctx context.Context) error

	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	Likers(ctx context.Context, filmID int64) ([]User, error)
	PopularFilms(ctx context.Context, count int) ([]Film, error)
}

// RankingCache caches popularity rankings as ordered film ids.
//
// Entries belong to a generation. InvalidatePopular starts a new generation,
// so a ranking read from storage before an invalidation and stored after it
// lands in a generation nobody reads any more.
type RankingCache interface {
	Generation(ctx context.Context) (uint64, error)
	// PopularIDs reports the ranking cached for count in gen; ok is false on a miss.
	PopularIDs(ctx context.Context, gen uint64, count int) (ids []int64, ok bool, err error)
	SetPopularIDs(ctx context.Context, gen uint64, count int, ids []int64) error
	InvalidatePopular(ctx context.Context) error
}
