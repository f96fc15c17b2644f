package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	adapthttp "filmorate/internal/adapter/http"
	"filmorate/internal/adapter/memory"
	"filmorate/internal/adapter/redis"
	"filmorate/internal/adapter/sqlstore"
	"filmorate/internal/app"
	"filmorate/internal/config"
	"filmorate/internal/domain"
	"filmorate/internal/logger"
	"filmorate/internal/metrics"
)

const serviceName = "filmorate"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, ServiceName: serviceName})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

// services is the wired application layer.
type services struct {
	Users   *app.UserService
	Films   *app.FilmService
	Genres  *app.GenreService
	Ratings *app.RatingService
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	store, err := openStore(ctx, cfg.Storage, reg, m)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cache, closeCache, err := openCache(ctx, cfg.Redis, m)
	if err != nil {
		return err
	}
	defer closeCache()

	svc := newServices(store, cache, clock.New(), log)
	if cfg.Storage.SeedCatalogs {
		if err := app.Seed(ctx, store, store, log); err != nil {
			return fmt.Errorf("seed catalogs: %w", err)
		}
	}
	if err := logInventory(ctx, svc, log, cfg.Storage.Driver, cfg.Redis.Enabled()); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           adapthttp.New(store, reg, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("ops server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.StorageConfig, reg prometheus.Registerer, m *metrics.Metrics) (domain.Store, error) {
	if cfg.Driver == config.DriverMemory {
		return memory.New(), nil
	}
	db, err := sqlstore.Open(ctx, cfg.Driver, cfg.DatabaseURL, sqlstore.WithErrorCounter(m.StorageErrors))
	if err != nil {
		return nil, err
	}
	if err := metrics.RegisterDBStats(reg, db.Pool(), cfg.Driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("register db stats: %w", err)
	}
	return db, nil
}

// openCache returns a nil interface, not a typed nil, when no address is set.
func openCache(ctx context.Context, cfg config.RedisConfig, m *metrics.Metrics) (domain.RankingCache, func(), error) {
	if !cfg.Enabled() {
		return nil, func() {}, nil
	}
	client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB, TTL: cfg.TTL})
	if err != nil {
		return nil, nil, err
	}
	return redis.NewRankingCache(client, cfg.TTL, m.CacheRequests), func() { _ = client.Close() }, nil
}

func newServices(store domain.Store, cache domain.RankingCache, clk clock.Clock, log zerolog.Logger) services {
	return services{
		Users:   app.NewUserService(store, cache, clk, log),
		Films:   app.NewFilmService(store, store, store, store, cache, log),
		Genres:  app.NewGenreService(store, log),
		Ratings: app.NewRatingService(store, log),
	}
}

func logInventory(ctx context.Context, svc services, log zerolog.Logger, driver string, cached bool) error {
	genres, err := svc.Genres.List(ctx)
	if err != nil {
		return fmt.Errorf("list genres: %w", err)
	}
	ratings, err := svc.Ratings.List(ctx)
	if err != nil {
		return fmt.Errorf("list ratings: %w", err)
	}
	films, err := svc.Films.List(ctx)
	if err != nil {
		return fmt.Errorf("list films: %w", err)
	}
	users, err := svc.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	log.Info().
		Str("driver", driver).
		Bool("cache", cached).
		Int("genres", len(genres)).
		Int("ratings", len(ratings)).
		Int("films", len(films)).
		Int("users", len(users)).
		Msg("storage ready")
	return nil
}
