// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// DB implements an in-memory database storage.
//
// A single RWMutex guards every map: writers hold it for the whole logical
// operation including cascades, readers share it. Returned values are copies.
type DB struct {
	mu sync.RWMutex

	users   map[int64]domain.User
	friends map[int64]map[int64]struct{} // user -> outgoing friend ids
	films   map[int64]domain.Film        // rating and genres hold ids only
	likes   map[int64]map[int64]struct{} // film -> user ids
	genres  map[int64]domain.Genre
	ratings map[int64]domain.Rating

	userIDCounter   int64
	filmIDCounter   int64
	genreIDCounter  int64
	ratingIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		users:   make(map[int64]domain.User),
		friends: make(map[int64]map[int64]struct{}),
		films:   make(map[int64]domain.Film),
		likes:   make(map[int64]map[int64]struct{}),
		genres:  make(map[int64]domain.Genre),
		ratings: make(map[int64]domain.Rating),
	}
}

// Ensure interfaces are met.
var _ domain.Store = (*DB)(nil)

// Ping always succeeds.
func (db *DB) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (db *DB) Close() error { return nil }

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedKeys[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// addEdge inserts to into the set of from, creating the set on demand.
func addEdge(edges map[int64]map[int64]struct{}, from, to int64) {
	set, ok := edges[from]
	if !ok {
		set = make(map[int64]struct{})
		edges[from] = set
	}
	set[to] = struct{}{}
}

// removeEndpoint drops id from every set in edges.
func removeEndpoint(edges map[int64]map[int64]struct{}, id int64) {
	for _, set := range edges {
		delete(set, id)
	}
}
