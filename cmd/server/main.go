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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/neubri/threads-clone/internal/auth"
	"github.com/neubri/threads-clone/internal/cache"
	"github.com/neubri/threads-clone/internal/config"
	"github.com/neubri/threads-clone/internal/database"
	"github.com/neubri/threads-clone/internal/logging"
	"github.com/neubri/threads-clone/internal/metrics"
	postgresrepo "github.com/neubri/threads-clone/internal/repository/postgres"
	"github.com/neubri/threads-clone/internal/service"
	"github.com/neubri/threads-clone/internal/transport/gql"
	"github.com/neubri/threads-clone/internal/transport/http/handlers"
	"github.com/neubri/threads-clone/internal/transport/http/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	logger := logging.New("threads-api", cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	if cfg.AutoMigrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Cache
	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rdb.Close()
	logger.Info("connected to redis")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tokens, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)
	followRepo := postgresrepo.NewFollowRepo(pool)

	// Services
	userService := service.NewUserService(userRepo, tokens)
	postService := service.NewPostService(postRepo, userRepo, cache.NewFeedCache(rdb), logger, m)
	followService := service.NewFollowService(followRepo, userRepo)

	schema, err := gql.NewSchema(gql.NewResolver(userService, postService, followService, logger))
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	// Handlers
	graphqlHandler := handlers.NewGraphQLHandler(schema, logger)
	redisPing := handlers.PingFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": pool,
		"redis":    redisPing,
	}, logger)

	// Routes
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS)

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(tokens))
		r.Get("/graphql", graphqlHandler.ServeHTTP)
		r.Post("/graphql", graphqlHandler.ServeHTTP)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
